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

package config

import (
	"embed"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/walteh/rewriterc/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// 📦 Preset is a named, built-in rule set with its default target files
type Preset struct {
	Name        string       `yaml:"-"`
	Description string       `yaml:"description"`
	Files       []string     `yaml:"files,omitempty"`
	Rules       []RuleConfig `yaml:"rules"`

	rules *rewrite.RuleSet
}

// RuleSet returns the compiled rules of the preset
func (p *Preset) RuleSet() *rewrite.RuleSet {
	return p.rules
}

var (
	presetsOnce sync.Once
	presets     map[string]*Preset
	presetsErr  error
)

func loadPresets() (map[string]*Preset, error) {
	presetsOnce.Do(func() {
		entries, err := presetFS.ReadDir("presets")
		if err != nil {
			presetsErr = errors.Errorf("reading embedded presets: %w", err)
			return
		}

		out := make(map[string]*Preset, len(entries))
		for _, entry := range entries {
			name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
			p, err := parsePreset(name, "presets/"+entry.Name())
			if err != nil {
				presetsErr = err
				return
			}
			out[name] = p
		}
		presets = out
	})
	return presets, presetsErr
}

func parsePreset(name, file string) (*Preset, error) {
	data, err := presetFS.ReadFile(file)
	if err != nil {
		return nil, errors.Errorf("reading preset %s: %w", name, err)
	}

	p := &Preset{Name: name}
	if err := decodeYAML(data, p); err != nil {
		return nil, errors.Errorf("preset %s: %w", name, err)
	}

	rules := make([]rewrite.Rule, 0, len(p.Rules))
	for _, r := range p.Rules {
		rules = append(rules, r.Rule())
	}
	p.rules, err = rewrite.NewRuleSet(rules...)
	if err != nil {
		return nil, errors.Errorf("preset %s: %w", name, err)
	}

	return p, nil
}

// 🎯 LookupPreset returns the built-in preset with the given name
func LookupPreset(name string) (*Preset, error) {
	all, err := loadPresets()
	if err != nil {
		return nil, err
	}
	p, ok := all[name]
	if !ok {
		return nil, errors.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames returns the names of all built-in presets, sorted
func PresetNames() []string {
	all, _ := loadPresets()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns all built-in presets sorted by name
func Presets() ([]*Preset, error) {
	all, err := loadPresets()
	if err != nil {
		return nil, err
	}
	out := make([]*Preset, 0, len(all))
	for _, name := range PresetNames() {
		out = append(out, all[name])
	}
	return out, nil
}
