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

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report files that still need rewriting",
		Long: `Check runs the same rules as apply but never writes. It exits with
code 3 when any file would change, which makes it usable as a CI gate
after a migration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())

			report, err := runRewrite(ctx, opts, args, true)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			sum := report.Summary()
			switch {
			case report.HasFailures():
				console.Errorf("%s failed", plural(sum.Failed, "file"))
				return &ExitError{Code: ExitFailed, Reason: "some files failed"}
			case report.HasChanges():
				console.Warningf("%s would be rewritten", plural(sum.Modified, "file"))
				return &ExitError{Code: ExitPending, Reason: "some files would be rewritten"}
			}
			console.Successf("%s checked, nothing left to rewrite", plural(sum.Total, "file"))
			return nil
		},
	}

	return cmd
}
