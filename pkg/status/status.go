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

// 📊 FileStatus is the terminal outcome of processing one file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Rules matched and the file was rewritten
	StatusUnchanged            // File exists but no rule changed it
	StatusNotFound             // Path does not exist or is not a regular file
	StatusFailed               // Read or write failed; see FileResult.Err
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the report entry for a single path
type FileResult struct {
	Path         string     // Path as given by the caller
	Status       FileStatus // Terminal outcome
	Replacements int        // Number of replacements applied
	Err          error      // Set when Status is StatusFailed
}

// Reason returns the failure reason, or "" for non-failed results
func (r FileResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// 🧮 Summary counts results by status
type Summary struct {
	Total     int
	Modified  int
	Unchanged int
	NotFound  int
	Failed    int
}

// 📋 Report is the aggregate outcome of a run. Results are in input order.
type Report struct {
	Results []FileResult
	DryRun  bool // Modified results were computed but not written
}

// Summary counts the results by status
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status {
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		case StatusNotFound:
			s.NotFound++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// HasFailures reports whether any file failed
func (r *Report) HasFailures() bool {
	return r.Summary().Failed > 0
}

// HasNotFound reports whether any path was missing
func (r *Report) HasNotFound() bool {
	return r.Summary().NotFound > 0
}

// HasChanges reports whether any file was (or in a dry run, would be) modified
func (r *Report) HasChanges() bool {
	return r.Summary().Modified > 0
}

// Get returns the first result recorded for path
func (r *Report) Get(path string) (FileResult, bool) {
	for _, res := range r.Results {
		if res.Path == path {
			return res, true
		}
	}
	return FileResult{}, false
}

// Failures returns the failed results, in order
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}
