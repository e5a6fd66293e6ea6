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
Package operation is the I/O half of the rewrite engine: it reads target
files, applies a rewrite.RuleSet and writes results back in place.

	            +-------------+
	            |   Engine    |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+           +------+-----+
	| ProcessFile|           |    Run     |
	| (one path) |           | (ordered,  |
	|            |           |  bounded)  |
	+-----+------+           +------------+
	      |
	+-----+------+
	| FileSystem |
	| (atomic)   |
	+------------+

🔄 Flow for a single file:
 1. Stat the path; missing or not a regular file gives StatusNotFound
 2. Read the full content and check it is UTF-8
 3. Apply the rules scoped to the path
 4. Identical output gives StatusUnchanged and nothing is written
 5. Otherwise write to a temp file in the same directory and rename it over
    the target, giving StatusModified

⚡ Errors never leave ProcessFile. They become StatusFailed results so one bad
file does not stop the batch.

🔍 Example:

	engine, err := operation.New(operation.Options{Jobs: 4})
	if err != nil {
		return err
	}
	report := engine.Run(ctx, []string{"src/pages/Home.tsx"}, rules)
	if report.HasFailures() {
		os.Exit(1)
	}
*/
package operation
