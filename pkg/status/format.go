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

package status

import (
	"fmt"
)

// FileFormatter defines how results and summaries should be formatted
type FileFormatter interface {
	// FormatResult formats the line for a single file
	FormatResult(res FileResult, dryRun bool) string

	// FormatSummary formats the closing line of a run
	FormatSummary(sum Summary, dryRun bool) string
}

// DefaultFileFormatter provides the plain "Fixed: <path>" style lines
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult formats a single file result
func (f *DefaultFileFormatter) FormatResult(res FileResult, dryRun bool) string {
	switch res.Status {
	case StatusModified:
		if dryRun {
			return fmt.Sprintf("Would fix: %s (%d replacements)", res.Path, res.Replacements)
		}
		return fmt.Sprintf("Fixed: %s (%d replacements)", res.Path, res.Replacements)
	case StatusUnchanged:
		return fmt.Sprintf("Unchanged: %s", res.Path)
	case StatusNotFound:
		return fmt.Sprintf("Not found: %s", res.Path)
	case StatusFailed:
		return fmt.Sprintf("Failed: %s: %s", res.Path, res.Reason())
	default:
		return fmt.Sprintf("Unknown: %s", res.Path)
	}
}

// FormatSummary formats the aggregate counts
func (f *DefaultFileFormatter) FormatSummary(sum Summary, dryRun bool) string {
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	return fmt.Sprintf("Done! %d files: %d %s, %d unchanged, %d not found, %d failed",
		sum.Total, sum.Modified, verb, sum.Unchanged, sum.NotFound, sum.Failed)
}
