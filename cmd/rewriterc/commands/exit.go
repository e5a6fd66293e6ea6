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
)

// Exit codes returned by rewriterc
const (
	ExitOK       = 0
	ExitFailed   = 1 // at least one file failed
	ExitNotFound = 2 // a path was missing and --strict-missing was set
	ExitPending  = 3 // check found files that would change
)

// 🚪 ExitError asks main to exit with Code. The report has already been
// printed by the time it is returned.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit %d)", e.Reason, e.Code)
}
