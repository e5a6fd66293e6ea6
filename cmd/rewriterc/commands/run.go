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

package commands

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/operation"
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// runRewrite resolves rules and targets, runs the engine and prints the report
func runRewrite(ctx context.Context, o *opts.RootOpts, args []string, dryRun bool) (*status.Report, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	rules, err := o.Config.RuleSet(o.Presets...)
	if err != nil {
		return nil, errors.Errorf("building rule set: %w", err)
	}
	if rules.Len() == 0 {
		return nil, errors.New("no rules to apply: pass --preset or add rules to the config file")
	}

	files := args
	if len(files) == 0 {
		files, err = o.Config.TargetFiles(o.Presets...)
		if err != nil {
			return nil, errors.Errorf("resolving target files: %w", err)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no files to process: pass paths as arguments or list them in the config file")
	}

	jobs := o.Jobs
	if jobs == 0 {
		jobs = o.Config.Jobs
	}

	engine, err := operation.New(operation.Options{Jobs: jobs, DryRun: dryRun})
	if err != nil {
		return nil, errors.Errorf("creating engine: %w", err)
	}

	logger.Debug().
		Str("config", o.Config.Location()).
		Int("rules", rules.Len()).
		Int("files", len(files)).
		Int("jobs", jobs).
		Msg("resolved run")

	verb := "applying"
	if dryRun {
		verb = "checking"
	}
	console.Header(verb + " " + plural(rules.Len(), "rule") + " to " + plural(len(files), "file"))

	report := engine.Run(ctx, files, rules)
	console.LogReport(report)

	return report, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
