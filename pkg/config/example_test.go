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

package config_test

import (
	"context"
	"fmt"

	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/rewrite"
)

func ExampleParse() {
	data := []byte(`
presets: [grid2-imports]
rules:
  - name: grid-xs
    pattern: '<Grid\s+xs=\{(\d+)\}>'
    replace: '<Grid sx={{ gridColumn: "span \1" }}>'
`)

	cfg, err := config.Parse(context.Background(), "rules.yaml", data)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	rules, err := cfg.RuleSet()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(rewrite.ApplyRules("import Grid from '@mui/material/Grid2';\n<Grid xs={4}>", rules))

	// Output:
	// <Grid sx={{ gridColumn: "span 4" }}>
}
