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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		dryRun        bool
		strictMissing bool
	)

	cmd := &cobra.Command{
		Use:   "apply [files...]",
		Short: "Rewrite files in place",
		Long: `Apply rewrites each target file with the selected rules.
It will:
1. Build the rule set (--preset flags, config presets, inline rules)
2. Read each file, apply every rule in order over its full text
3. Write changed files back atomically, leaving unchanged files alone
4. Print one line per file and a summary

Files come from the arguments, else the config's files list, else the
default targets of the selected presets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			report, err := runRewrite(ctx, opts, args, dryRun)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			sum := report.Summary()
			switch {
			case report.HasFailures():
				console.Errorf("%s failed", plural(sum.Failed, "file"))
				return &ExitError{Code: ExitFailed, Reason: "some files failed"}
			case strictMissing && report.HasNotFound():
				console.Warningf("%s not found (--strict-missing)", plural(sum.NotFound, "file"))
				return &ExitError{Code: ExitNotFound, Reason: "some files were not found"}
			case dryRun && report.HasChanges():
				console.Infof("dry run: %s would change, nothing was written", plural(sum.Modified, "file"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&strictMissing, "strict-missing", false, "exit non-zero when a target file does not exist")

	return cmd
}
