/*
Package config manages rule configuration for rewriterc.

	            +-------------+
	            |   Config    |
	            | (rules +    |
	            |  targets)   |
	            +------+------+
	                   |
	   +---------------+---------------+
	   |               |               |
	+--+---+       +---+---+       +---+---+
	| YAML |       | JSON  |       |  HCL  |
	+------+       +-------+       +-------+
	                   |
	            +------+------+
	            |   Presets   |
	            | (embedded)  |
	            +-------------+

🎯 Purpose:
  - Load rules and target files from .yaml, .yml, .json, .hcl or .rewriterc
  - Ship the canonical Grid migration rules as embedded presets
  - Compose presets and inline rules into one ordered rewrite.RuleSet

🔄 Flow:
 1. Reads configuration from file
 2. Parses format-specific syntax (unknown fields are errors)
 3. Validates shape, preset names and every inline rule
 4. Builds the RuleSet: CLI presets, config presets, inline rules

📝 Rule order is the whole conflict story. Nothing here reorders,
deduplicates or checks rules against each other. A preset named twice runs
twice, in both positions.

🔍 Example:

	cfg, err := config.Load(ctx, ".rewriterc.yaml")
	if err != nil {
		return err
	}
	rules, err := cfg.RuleSet("grid2-imports")
	if err != nil {
		return err
	}
	files, err := cfg.TargetFiles("grid2-imports")
*/
package config
