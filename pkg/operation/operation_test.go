// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rewriterc/pkg/operation"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const gridSource = `import Grid from '@mui/material/Grid2';
export function Page() {
  return <Grid xs={12} md={5}>hi</Grid>;
}
`

// 🧪 createTestEnv creates a test environment
func createTestEnv(t *testing.T) (context.Context, string, *rewrite.RuleSet) {
	tmpDir := t.TempDir()

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	rules := rewrite.MustRuleSet(
		rewrite.Rule{
			Name:    "grid-xs-md",
			Pattern: `<Grid\s+xs=\{(\d+)\}\s+md=\{(\d+)\}>`,
			Replace: `<Grid sx={{ display: "grid", gridColumn: { xs: "span \1", md: "span \2" } }}>`,
		},
		rewrite.Rule{
			Name:    "drop-grid2-import",
			Pattern: `import Grid from '@mui/material/Grid2';?\n?`,
		},
	)

	return ctx, tmpDir, rules
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), perm), "writing %s", path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

func newEngine(t *testing.T, opts operation.Options) *operation.Engine {
	t.Helper()
	engine, err := operation.New(opts)
	require.NoError(t, err, "creating engine")
	return engine
}

func TestProcessFile_Modified(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	path := filepath.Join(dir, "Page.tsx")
	writeFile(t, path, gridSource, 0600)

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, path, rules)

	assert.Equal(t, status.StatusModified, res.Status)
	assert.NoError(t, res.Err)
	assert.Equal(t, 2, res.Replacements)
	assert.Equal(t, rewrite.ApplyRules(gridSource, rules), readFile(t, path), "file should hold exactly the transformed text")
	assert.Equal(t, `export function Page() {
  return <Grid sx={{ display: "grid", gridColumn: { xs: "span 12", md: "span 5" } }}>hi</Grid>;
}
`, readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "file mode should be preserved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestProcessFile_SymlinkTarget(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	realPath := filepath.Join(dir, "real.tsx")
	link := filepath.Join(dir, "Page.tsx")
	writeFile(t, realPath, gridSource, 0640)
	require.NoError(t, os.Symlink(realPath, link))

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, link, rules)

	assert.Equal(t, status.StatusModified, res.Status)
	assert.Equal(t, rewrite.ApplyRules(gridSource, rules), readFile(t, realPath), "the link target should be rewritten")

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSymlink, info.Mode()&os.ModeSymlink, "the link should survive the write")

	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, realPath, target)

	realInfo, err := os.Stat(realPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), realInfo.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files should be left behind")
}

func TestProcessFile_NotFound(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	path := filepath.Join(dir, "missing.tsx")

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, path, rules)

	assert.Equal(t, status.StatusNotFound, res.Status)
	assert.NoError(t, res.Err)
	assert.NoFileExists(t, path, "a missing file must never be created")
}

func TestProcessFile_DirectoryIsNotFound(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	sub := filepath.Join(dir, "pages")
	require.NoError(t, os.Mkdir(sub, 0755))

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, sub, rules)

	assert.Equal(t, status.StatusNotFound, res.Status)
}

func TestProcessFile_UnchangedLeavesFileAlone(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	path := filepath.Join(dir, "Plain.tsx")
	const content = "export const x = <Stack spacing={2} />;\n"
	writeFile(t, path, content, 0644)

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, path, rules)

	assert.Equal(t, status.StatusUnchanged, res.Status)
	assert.Equal(t, 0, res.Replacements)
	assert.Equal(t, content, readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "modification time should not change")
}

func TestProcessFile_DryRun(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	path := filepath.Join(dir, "Page.tsx")
	writeFile(t, path, gridSource, 0644)

	engine := newEngine(t, operation.Options{DryRun: true})
	res := engine.ProcessFile(ctx, path, rules)

	assert.True(t, engine.DryRun())
	assert.Equal(t, status.StatusModified, res.Status)
	assert.Equal(t, 2, res.Replacements)
	assert.Equal(t, gridSource, readFile(t, path), "dry run must not write")
}

func TestProcessFile_InvalidUTF8(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	path := filepath.Join(dir, "Binary.tsx")
	writeFile(t, path, "<Grid xs={12} md={5}>\xff\xfe", 0644)

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, path, rules)

	assert.Equal(t, status.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, operation.ErrInvalidUTF8)
	assert.Equal(t, "<Grid xs={12} md={5}>\xff\xfe", readFile(t, path), "file should be untouched")
}

func TestProcessFile_ScopedRulesSkipOtherFiles(t *testing.T) {
	ctx, dir, _ := createTestEnv(t)
	path := filepath.Join(dir, "Page.tsx")
	writeFile(t, path, gridSource, 0644)

	rules := rewrite.MustRuleSet(rewrite.Rule{
		Literal: true,
		Pattern: "Grid",
		Replace: "Box",
		Files:   []string{"*.md"},
	})

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, path, rules)

	assert.Equal(t, status.StatusUnchanged, res.Status)
	assert.Equal(t, gridSource, readFile(t, path))
}

func TestProcessFile_CancelledContext(t *testing.T) {
	ctx, dir, rules := createTestEnv(t)
	path := filepath.Join(dir, "Page.tsx")
	writeFile(t, path, gridSource, 0644)

	ctx, cancel := context.WithCancel(ctx)
	cancel()

	res := newEngine(t, operation.Options{}).ProcessFile(ctx, path, rules)

	assert.Equal(t, status.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, gridSource, readFile(t, path))
}

// faultyFS fails selected operations for selected paths
type faultyFS struct {
	operation.OSFileSystem
	failStat  map[string]bool
	failRead  map[string]bool
	failWrite map[string]bool
}

func (f faultyFS) Stat(path string) (fs.FileInfo, error) {
	if f.failStat[path] {
		return nil, fs.ErrPermission
	}
	return f.OSFileSystem.Stat(path)
}

func (f faultyFS) ReadFile(path string) ([]byte, error) {
	if f.failRead[path] {
		return nil, fs.ErrPermission
	}
	return f.OSFileSystem.ReadFile(path)
}

func (f faultyFS) WriteFileAtomic(path string, content []byte, perm fs.FileMode) error {
	if f.failWrite[path] {
		return errors.New("disk full")
	}
	return f.OSFileSystem.WriteFileAtomic(path, content, perm)
}

func TestProcessFile_IOFailures(t *testing.T) {
	tests := []struct {
		name        string
		fs          func(path string) faultyFS
		errContains string
	}{
		{
			name:        "stat_failure",
			fs:          func(path string) faultyFS { return faultyFS{failStat: map[string]bool{path: true}} },
			errContains: "checking file",
		},
		{
			name:        "read_failure",
			fs:          func(path string) faultyFS { return faultyFS{failRead: map[string]bool{path: true}} },
			errContains: "reading file",
		},
		{
			name:        "write_failure",
			fs:          func(path string) faultyFS { return faultyFS{failWrite: map[string]bool{path: true}} },
			errContains: "writing file: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dir, rules := createTestEnv(t)
			path := filepath.Join(dir, "Page.tsx")
			writeFile(t, path, gridSource, 0644)

			engine := newEngine(t, operation.Options{FileSystem: tt.fs(path)})
			res := engine.ProcessFile(ctx, path, rules)

			assert.Equal(t, status.StatusFailed, res.Status)
			require.Error(t, res.Err)
			assert.Contains(t, res.Reason(), tt.errContains)
			assert.Equal(t, gridSource, readFile(t, path), "failed file should keep its original bytes")
		})
	}
}

func TestNew_RejectsNegativeJobs(t *testing.T) {
	engine, err := operation.New(operation.Options{Jobs: -1})
	require.Error(t, err)
	assert.Nil(t, engine)
	assert.Contains(t, err.Error(), "jobs must not be negative")
}

func TestOSFileSystem_WriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsx")
	writeFile(t, path, "old", 0640)

	require.NoError(t, operation.OSFileSystem{}.WriteFileAtomic(path, []byte("new"), 0640))
	assert.Equal(t, "new", readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	err = operation.OSFileSystem{}.WriteFileAtomic(filepath.Join(dir, "nope", "out.tsx"), []byte("x"), 0644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temp file")
}
