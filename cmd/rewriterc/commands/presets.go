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
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewPresetsCmd creates a new presets command
func NewPresetsCmd() *cobra.Command {
	var showRules bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in rule presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.Presets()
			if err != nil {
				return errors.Errorf("loading presets: %w", err)
			}

			data := pterm.TableData{{"Preset", "Rules", "Targets", "Description"}}
			for _, p := range presets {
				data = append(data, []string{
					p.Name,
					strconv.Itoa(p.RuleSet().Len()),
					strconv.Itoa(len(p.Files)),
					p.Description,
				})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render(); err != nil {
				return errors.Errorf("rendering table: %w", err)
			}

			if !showRules {
				return nil
			}

			for _, p := range presets {
				rules := pterm.TableData{{"#", "Rule", "Pattern"}}
				for i, r := range p.RuleSet().Rules() {
					kind := ""
					if r.Literal {
						kind = " (literal)"
					}
					rules = append(rules, []string{strconv.Itoa(i + 1), r.Name, strings.TrimSpace(r.Pattern) + kind})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", pterm.Bold.Sprint(p.Name))
				if err := pterm.DefaultTable.WithHasHeader().WithData(rules).WithWriter(cmd.OutOrStdout()).Render(); err != nil {
					return errors.Errorf("rendering table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showRules, "rules", false, "also list each preset's rules in order")

	return cmd
}
