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

package rewrite_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/walteh/rewriterc/pkg/rewrite"
)

var gridRules = rewrite.MustRuleSet(
	rewrite.Rule{
		Name:    "grid-xs-md",
		Pattern: `<Grid\s+xs=\{(\d+)\}\s+md=\{(\d+)\}>`,
		Replace: `<Grid sx={{ display: "grid", gridColumn: { xs: "span \1", md: "span \2" } }}>`,
	},
	rewrite.Rule{
		Name:    "grid-xs",
		Pattern: `<Grid\s+xs=\{(\d+)\}>`,
		Replace: `<Grid sx={{ gridColumn: "span \1" }}>`,
	},
	rewrite.Rule{
		Name:    "drop-grid2-import",
		Literal: true,
		Pattern: "import Grid from '@mui/material/Grid2';",
	},
)

// Alpha text never contains '<' or quotes, so no grid rule can match it.
func TestProperty_IdentityWhenNothingMatches(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ApplyRules returns the input untouched when no rule matches", prop.ForAll(
		func(text string) bool {
			return rewrite.ApplyRules(text, gridRules) == text
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_OneShotRulesAreIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("applying the grid rules twice equals applying them once", prop.ForAll(
		func(xs, md int, filler string, withImport bool) bool {
			var b strings.Builder
			if withImport {
				b.WriteString("import Grid from '@mui/material/Grid2';\n")
			}
			fmt.Fprintf(&b, "<Grid xs={%d} md={%d}>%s</Grid>\n", xs, md, filler)
			fmt.Fprintf(&b, "<Grid xs={%d}>%s</Grid>\n", xs, filler)

			once := rewrite.ApplyRules(b.String(), gridRules)
			twice := rewrite.ApplyRules(once, gridRules)
			return once == twice && once != b.String()
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 12),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ConcatMatchesSequentialApplication(t *testing.T) {
	first := rewrite.MustRuleSet(rewrite.Rule{Pattern: `[aeiou]`, Replace: `_`})
	second := rewrite.MustRuleSet(rewrite.Rule{Pattern: `_+`, Replace: `-`})

	properties := gopter.NewProperties(nil)

	properties.Property("Concat(a, b) behaves like applying a then b", prop.ForAll(
		func(text string) bool {
			joined := rewrite.ApplyRules(text, first.Concat(second))
			stepwise := rewrite.ApplyRules(rewrite.ApplyRules(text, first), second)
			return joined == stepwise
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
