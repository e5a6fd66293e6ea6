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
Package status describes what happened to each file in a rewrite run.

	+-----------+      +------------+      +-----------+
	| FileResult| ---> |   Report   | ---> | Formatter |
	| (per path)|      | (in order) |      | (console) |
	+-----------+      +------------+      +-----------+

🎯 Purpose:
  - One terminal FileStatus per input path
  - Aggregate counts for the caller (Summary)
  - Plain, stable console lines ("Fixed: <path>", "Not found: <path>")

📝 A file moves exactly once, from unprocessed to one of Modified, Unchanged,
NotFound or Failed. There are no retries and no intermediate states.
*/
package status
