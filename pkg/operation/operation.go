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

package operation

import (
	"context"
	"io/fs"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is reported for files that are not valid UTF-8 text
var ErrInvalidUTF8 = errors.Base("invalid UTF-8")

// 🔧 Options contains configuration for the engine
type Options struct {
	// FileSystem defaults to OSFileSystem
	FileSystem FileSystem
	// Jobs is the number of files processed at once; values below 1 mean 1
	Jobs int
	// DryRun computes results without writing anything
	DryRun bool
}

// 🎮 Engine applies rule sets to files on disk
type Engine struct {
	fs     FileSystem
	jobs   int
	dryRun bool
}

// 🏭 New creates a new engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Jobs < 0 {
		return nil, errors.Errorf("jobs must not be negative, got %d", opts.Jobs)
	}
	if opts.FileSystem == nil {
		opts.FileSystem = OSFileSystem{}
	}
	if opts.Jobs == 0 {
		opts.Jobs = 1
	}
	return &Engine{
		fs:     opts.FileSystem,
		jobs:   opts.Jobs,
		dryRun: opts.DryRun,
	}, nil
}

// DryRun reports whether the engine skips writes
func (e *Engine) DryRun() bool {
	return e.dryRun
}

// 📄 ProcessFile applies rules to a single path. It never returns an error:
// every failure is folded into the result.
func (e *Engine) ProcessFile(ctx context.Context, path string, rules *rewrite.RuleSet) status.FileResult {
	start := time.Now()
	res := e.processFile(ctx, path, rules)

	ev := zerolog.Ctx(ctx).Debug()
	if res.Status == status.StatusFailed {
		ev = zerolog.Ctx(ctx).Warn().Err(res.Err)
	}
	ev.Str("path", path).
		Str("status", res.Status.String()).
		Int("replacements", res.Replacements).
		Bool("dry_run", e.dryRun).
		Dur("took", time.Since(start)).
		Msg("processed file")

	return res
}

func (e *Engine) processFile(ctx context.Context, path string, rules *rewrite.RuleSet) status.FileResult {
	res := status.FileResult{Path: path}

	if err := ctx.Err(); err != nil {
		res.Status = status.StatusFailed
		res.Err = errors.Errorf("not started: %w", err)
		return res
	}

	info, err := e.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = status.StatusNotFound
			return res
		}
		res.Status = status.StatusFailed
		res.Err = errors.Errorf("checking file: %w", err)
		return res
	}
	if !info.Mode().IsRegular() {
		res.Status = status.StatusNotFound
		return res
	}

	content, err := e.fs.ReadFile(path)
	if err != nil {
		res.Status = status.StatusFailed
		res.Err = errors.Errorf("reading file: %w", err)
		return res
	}
	if !utf8.Valid(content) {
		res.Status = status.StatusFailed
		res.Err = errors.WithStack(ErrInvalidUTF8)
		return res
	}

	original := string(content)
	updated, count := rules.ForPath(path).Apply(original)
	res.Replacements = count

	if updated == original {
		res.Status = status.StatusUnchanged
		return res
	}

	if !e.dryRun {
		if err := e.fs.WriteFileAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
			res.Status = status.StatusFailed
			res.Err = errors.Errorf("writing file: %w", err)
			return res
		}
	}

	res.Status = status.StatusModified
	return res
}
