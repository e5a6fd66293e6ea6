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
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single (pattern, replacement) pair
type Rule struct {
	Name    string   // Human readable name, used in logs and errors
	Pattern string   // RE2 pattern, or an exact substring when Literal is set
	Replace string   // Replacement template; \1 style group references
	Literal bool     // Treat Pattern and Replace as plain text
	Files   []string // Optional doublestar globs scoping the rule to paths
}

// 🏷️ label returns the rule name, or its position when unnamed
func (r Rule) label(i int) string {
	if r.Name != "" {
		return r.Name
	}
	return "#" + strconv.Itoa(i)
}

type compiledRule struct {
	Rule
	re     *regexp.Regexp
	expand string
}

// apply runs the rule over text once, returning the new text and the number
// of replacements made.
func (c *compiledRule) apply(text string) (string, int) {
	if c.Literal {
		n := strings.Count(text, c.Pattern)
		if n == 0 {
			return text, 0
		}
		return strings.ReplaceAll(text, c.Pattern, c.Replace), n
	}

	n := len(c.re.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, 0
	}
	return c.re.ReplaceAllString(text, c.expand), n
}

// matchesPath reports whether the rule is scoped to path
func (c *compiledRule) matchesPath(path string) bool {
	if len(c.Files) == 0 {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, glob := range c.Files {
		if ok, _ := doublestar.Match(glob, slashed); ok {
			return true
		}
	}
	return false
}

// 📚 RuleSet is an ordered, compiled, read-only list of rules. The zero value
// and nil are both valid empty sets. It is safe for concurrent use.
type RuleSet struct {
	rules []*compiledRule
}

// 🏭 NewRuleSet compiles rules in the order given
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]*compiledRule, 0, len(rules))}

	for i, r := range rules {
		c, err := compile(r)
		if err != nil {
			return nil, errors.Errorf("rule %s: %w", r.label(i), err)
		}
		rs.rules = append(rs.rules, c)
	}

	return rs, nil
}

// MustRuleSet is like NewRuleSet but panics on error. Meant for rules
// that are fixed at compile time.
func MustRuleSet(rules ...Rule) *RuleSet {
	rs, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

func compile(r Rule) (*compiledRule, error) {
	if r.Pattern == "" {
		return nil, errors.New("pattern is required")
	}

	for _, glob := range r.Files {
		if !doublestar.ValidatePattern(glob) {
			return nil, errors.Errorf("invalid file glob %q", glob)
		}
	}

	c := &compiledRule{Rule: r}
	c.Files = append([]string(nil), r.Files...)

	if r.Literal {
		return c, nil
	}

	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}
	expand, err := translateTemplate(r.Replace, re.NumSubexp())
	if err != nil {
		return nil, errors.Errorf("parsing replacement: %w", err)
	}

	c.re = re
	c.expand = expand
	return c, nil
}

// Len returns the number of rules in the set
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns a copy of the rules as they were given
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	for i, c := range rs.rules {
		out[i] = c.Rule
		out[i].Files = append([]string(nil), c.Files...)
	}
	return out
}

// 🔗 Concat returns a new set holding rs followed by others, in order
func (rs *RuleSet) Concat(others ...*RuleSet) *RuleSet {
	out := &RuleSet{rules: make([]*compiledRule, 0, rs.Len())}
	if rs != nil {
		out.rules = append(out.rules, rs.rules...)
	}
	for _, o := range others {
		if o != nil {
			out.rules = append(out.rules, o.rules...)
		}
	}
	return out
}

// 🎯 ForPath returns the subset of rules scoped to path, order preserved.
// Rules without file globs apply everywhere.
func (rs *RuleSet) ForPath(path string) *RuleSet {
	if rs == nil {
		return &RuleSet{}
	}
	out := &RuleSet{rules: make([]*compiledRule, 0, len(rs.rules))}
	for _, c := range rs.rules {
		if c.matchesPath(path) {
			out.rules = append(out.rules, c)
		}
	}
	return out
}

// 🔄 Apply runs every rule, in order, over the full text. Each rule replaces
// all non-overlapping matches in a single pass over the previous rule's
// output. Returns the new text and the total replacement count.
func (rs *RuleSet) Apply(text string) (string, int) {
	if rs == nil {
		return text, 0
	}
	total := 0
	for _, c := range rs.rules {
		var n int
		text, n = c.apply(text)
		total += n
	}
	return text, total
}

// ApplyRules is the pure transform: text in, text out
func ApplyRules(text string, rules *RuleSet) string {
	out, _ := rules.Apply(text)
	return out
}
