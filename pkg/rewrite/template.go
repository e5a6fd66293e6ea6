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

package rewrite

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 translateTemplate converts a positional replacement template into the
// form regexp.Expand understands.
//
//	\1 .. \99  -> ${1} .. ${99}
//	\0         -> ${0} (whole match)
//	\\         -> \
//	\n, \t     -> newline, tab
//	$          -> $$ (always literal)
//
// Any other escape is kept as written.
func translateTemplate(tmpl string, groups int) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl) + 8)

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '$':
			b.WriteString("$$")
		case c != '\\' || i+1 == len(tmpl):
			b.WriteByte(c)
		default:
			next := tmpl[i+1]
			switch {
			case isDigit(next):
				end := i + 2
				if end < len(tmpl) && isDigit(tmpl[end]) {
					end++
				}
				n, _ := strconv.Atoi(tmpl[i+1 : end])
				if n > groups {
					return "", errors.Errorf("group reference \\%d but pattern has %d groups", n, groups)
				}
				b.WriteString("${" + strconv.Itoa(n) + "}")
				i = end - 1
			case next == '\\':
				b.WriteByte('\\')
				i++
			case next == 'n':
				b.WriteByte('\n')
				i++
			case next == 't':
				b.WriteByte('\t')
				i++
			default:
				b.WriteByte(c)
			}
		}
	}

	return b.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
