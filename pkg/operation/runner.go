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
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"github.com/walteh/rewriterc/pkg/status"
	"golang.org/x/sync/errgroup"
)

// 🏃 Run processes every path and returns a report with one result per path,
// in input order. A failure on one path never stops the others.
func (e *Engine) Run(ctx context.Context, paths []string, rules *rewrite.RuleSet) *status.Report {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	logger.Debug().
		Int("files", len(paths)).
		Int("rules", rules.Len()).
		Int("jobs", e.jobs).
		Bool("dry_run", e.dryRun).
		Msg("starting run")

	report := &status.Report{
		Results: make([]status.FileResult, len(paths)),
		DryRun:  e.dryRun,
	}

	if e.jobs <= 1 {
		e.runSync(ctx, paths, rules, report.Results)
	} else {
		e.runAsync(ctx, paths, rules, report.Results)
	}

	sum := report.Summary()
	logger.Debug().
		Int("modified", sum.Modified).
		Int("unchanged", sum.Unchanged).
		Int("not_found", sum.NotFound).
		Int("failed", sum.Failed).
		Dur("took", time.Since(start)).
		Msg("run complete")

	return report
}

// 🔄 runSync processes paths one after another
func (e *Engine) runSync(ctx context.Context, paths []string, rules *rewrite.RuleSet, out []status.FileResult) {
	for i, path := range paths {
		out[i] = e.ProcessFile(ctx, path, rules)
	}
}

// ⚡ runAsync processes up to e.jobs paths at once. Each worker writes only
// its own slots, so attribution does not depend on completion order. Repeated
// files are handled by one worker, in input order, so a file is never
// rewritten by two goroutines at once.
func (e *Engine) runAsync(ctx context.Context, paths []string, rules *rewrite.RuleSet, out []status.FileResult) {
	var g errgroup.Group
	g.SetLimit(e.jobs)

	for _, idxs := range groupByPath(paths) {
		g.Go(func() error {
			for _, i := range idxs {
				out[i] = e.ProcessFile(ctx, paths[i], rules)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// groupByPath returns input indexes grouped by the file they name, ordered by
// first occurrence. "a/../Page.tsx" and a symlink to Page.tsx land in the
// same group as "Page.tsx".
func groupByPath(paths []string) [][]int {
	seen := make(map[string]int, len(paths))
	groups := make([][]int, 0, len(paths))
	for i, path := range paths {
		key := fileKey(path)
		if g, ok := seen[key]; ok {
			groups[g] = append(groups[g], i)
			continue
		}
		seen[key] = len(groups)
		groups = append(groups, []int{i})
	}
	return groups
}

// fileKey identifies the file behind path: absolute, cleaned and, when the
// file exists, with symlinks resolved
func fileKey(path string) string {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(key); err == nil {
		key = resolved
	}
	return key
}
