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

/*
Package rewrite holds the pure half of rewriterc: rules, rule sets and the
text transform that applies them.

	+---------+     +-----------+     +-------------+
	|  Rule   | --> |  RuleSet  | --> | ApplyRules  |
	| (input) |     | (compiled)|     | text -> text|
	+---------+     +-----------+     +-------------+

🎯 Purpose:
  - Compile (pattern, replacement) pairs once, up front
  - Apply them in order over the full text of a file
  - Never touch the filesystem

🔄 Flow:
 1. Callers build a RuleSet with NewRuleSet (or load one via pkg/config)
 2. Sets are composed with Concat and narrowed to a file with ForPath
 3. ApplyRules runs every rule globally, each over the previous rule's output

📝 Matching is textual. A rule whose pattern does not match the exact shape
on disk does nothing, and that is not an error. Rule order is the only
conflict resolution there is.

🔍 Example:

	rules, err := rewrite.NewRuleSet(rewrite.Rule{
		Name:    "grid-xs",
		Pattern: `<Grid\s+xs=\{(\d+)\}>`,
		Replace: `<Grid sx={{ gridColumn: "span \1" }}>`,
	})
	if err != nil {
		return err
	}
	out := rewrite.ApplyRules(`<Grid xs={12}>`, rules)
*/
package rewrite
