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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleConfig is a single rewrite rule as written in a config file
type RuleConfig struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,label"`
	Pattern string   `json:"pattern" yaml:"pattern" hcl:"pattern" validate:"required"`
	Replace string   `json:"replace" yaml:"replace" hcl:"replace,optional"`
	Literal bool     `json:"literal,omitempty" yaml:"literal,omitempty" hcl:"literal,optional"`
	Files   []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional" validate:"dive,required"`
}

// Rule converts the config entry to a rewrite.Rule
func (r RuleConfig) Rule() rewrite.Rule {
	return rewrite.Rule{
		Name:    r.Name,
		Pattern: r.Pattern,
		Replace: r.Replace,
		Literal: r.Literal,
		Files:   r.Files,
	}
}

// MaxJobs bounds the worker count from any source (config, flag or env)
const MaxJobs = 256

// 📚 Config represents the complete configuration
type Config struct {
	Presets []string     `json:"presets,omitempty" yaml:"presets,omitempty" hcl:"presets,optional" validate:"dive,required"`
	Jobs    int          `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional" validate:"gte=0,lte=256"`
	Files   []string     `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional" validate:"dive,required"`
	Rules   []RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rule,block" validate:"dive"`

	location string
}

// Location returns the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(ctx, path, data)
	if err != nil {
		return nil, err
	}
	cfg.location = path

	logger.Debug().
		Str("path", path).
		Strs("presets", cfg.Presets).
		Int("rules", len(cfg.Rules)).
		Int("files", len(cfg.Files)).
		Msg("configuration loaded")

	return cfg, nil
}

// Parse picks a parser from the filename and validates the result. A bare
// ".rewriterc" file is tried as YAML first, then as HCL.
func Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	var cfg *Config
	var err error

	if filepath.Base(filename) == ".rewriterc" || strings.EqualFold(filepath.Ext(filename), ".rewriterc") {
		cfg, err = (&YAMLParser{}).Parse(ctx, filename, data)
		if err != nil {
			yamlErr := err
			cfg, err = (&HCLParser{}).Parse(ctx, filename, data)
			if err != nil {
				return nil, errors.Errorf("parsing %s as YAML (%v) or HCL: %w", filename, yamlErr, err)
			}
		}
	} else {
		p := GetParser(filename)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", filename)
		}
		cfg, err = p.Parse(ctx, filename, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the config shape, that every preset exists, and that
// every inline rule compiles.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return errors.Errorf("%s", strings.Join(msgs, "; "))
		}
		return errors.Errorf("validating struct: %w", err)
	}

	for _, name := range cfg.Presets {
		if _, err := LookupPreset(name); err != nil {
			return err
		}
	}

	if _, err := cfg.inlineRules(); err != nil {
		return err
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	// Namespace looks like "Config.Rules[0].Pattern"
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

func (cfg *Config) inlineRules() (*rewrite.RuleSet, error) {
	rules := make([]rewrite.Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, r.Rule())
	}
	rs, err := rewrite.NewRuleSet(rules...)
	if err != nil {
		return nil, errors.Errorf("inline rules: %w", err)
	}
	return rs, nil
}

// presetNames returns extra followed by the config's presets. A preset named
// twice is applied twice.
func (cfg *Config) presetNames(extra []string) []string {
	names := make([]string, 0, len(extra)+len(cfg.Presets))
	names = append(names, extra...)
	return append(names, cfg.Presets...)
}

// 📚 RuleSet builds the rule set for a run: the extra presets in the order
// given, then the config's presets, then its inline rules.
func (cfg *Config) RuleSet(extraPresets ...string) (*rewrite.RuleSet, error) {
	var sets []*rewrite.RuleSet
	for _, name := range cfg.presetNames(extraPresets) {
		p, err := LookupPreset(name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, p.RuleSet())
	}

	inline, err := cfg.inlineRules()
	if err != nil {
		return nil, err
	}
	sets = append(sets, inline)

	return (&rewrite.RuleSet{}).Concat(sets...), nil
}

// 📂 TargetFiles returns the config's file list or, when it is empty, the
// default targets of the selected presets in order, without repeats.
func (cfg *Config) TargetFiles(extraPresets ...string) ([]string, error) {
	if len(cfg.Files) > 0 {
		return append([]string(nil), cfg.Files...), nil
	}

	seen := map[string]bool{}
	var files []string
	for _, name := range cfg.presetNames(extraPresets) {
		p, err := LookupPreset(name)
		if err != nil {
			return nil, err
		}
		for _, f := range p.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}
