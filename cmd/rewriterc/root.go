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

package main

import (
	"context"
	"io"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/commands"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".rewriterc.yaml"

// skipConfigAnnotation marks commands that never read the config file
const skipConfigAnnotation = "rewriterc/skip-config"

// 🌱 envDefaults are flag defaults taken from the environment
type envDefaults struct {
	Config string `env:"REWRITERC_CONFIG"`
	Debug  bool   `env:"REWRITERC_DEBUG" envDefault:"false"`
	Jobs   int    `env:"REWRITERC_JOBS" envDefault:"0"`
}

// rootFlags holds the persistent flag values
type rootFlags struct {
	configFile string
	debug      bool
	presets    []string
	jobs       int
}

// NewRootCmd builds the command tree. Console output goes to stdout and
// structured logs to stderr.
func NewRootCmd(stdout, stderr io.Writer) (*cobra.Command, error) {
	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		return nil, errors.Errorf("parsing environment: %w", err)
	}

	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "rewriterc",
		Short: "Apply ordered regex rewrite rules to source files in place",
		Long: `rewriterc rewrites a fixed list of text files with an ordered set of
pattern/replacement rules. Rules come from built-in presets and from a
config file (.rewriterc.yaml, .json, .hcl). Each file is read once,
transformed in memory and written back atomically only if it changed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)
			ctx = log.NewContext(ctx, log.New(stdout, *zerolog.Ctx(ctx)))
			cmd.SetContext(ctx)

			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}

			explicit := cmd.Flags().Changed("config") || defaults.Config != ""
			return newRootOpts(ctx, rootOpts, flags, explicit)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addRootFlags(cmd, flags, defaults)

	presetsCmd := commands.NewPresetsCmd()
	presetsCmd.Annotations = map[string]string{skipConfigAnnotation: "true"}
	versionCmd := newVersionCmd()
	versionCmd.Annotations = map[string]string{skipConfigAnnotation: "true"}

	cmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		presetsCmd,
		versionCmd,
	)

	return cmd, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags, defaults envDefaults) {
	configFile := defaults.Config
	if configFile == "" {
		configFile = defaultConfigFile
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", configFile, "config file path (env REWRITERC_CONFIG)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", defaults.Debug, "enable debug logging (env REWRITERC_DEBUG)")
	cmd.PersistentFlags().StringSliceVarP(&flags.presets, "preset", "p", nil, "built-in preset to apply, repeatable and applied in order")
	cmd.PersistentFlags().IntVarP(&flags.jobs, "jobs", "j", defaults.Jobs, "files processed at once; 0 uses the config value (env REWRITERC_JOBS)")
}

// setupLogging attaches a zerolog logger, tagged with a run id, to ctx
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.ErrorLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()

	return logger.WithContext(ctx)
}

// newRootOpts loads the config and fills in the shared options
func newRootOpts(ctx context.Context, o *opts.RootOpts, flags *rootFlags, explicitConfig bool) error {
	if flags.jobs < 0 {
		return errors.Errorf("--jobs must not be negative, got %d", flags.jobs)
	}
	if flags.jobs > config.MaxJobs {
		return errors.Errorf("--jobs must be at most %d, got %d", config.MaxJobs, flags.jobs)
	}

	for _, name := range flags.presets {
		if _, err := config.LookupPreset(name); err != nil {
			return err
		}
	}

	cfg, err := config.Load(ctx, flags.configFile)
	switch {
	case err == nil:
	case !explicitConfig && errors.Is(err, os.ErrNotExist):
		zerolog.Ctx(ctx).Debug().Str("path", flags.configFile).Msg("no config file, using presets only")
		cfg = &config.Config{}
	default:
		return errors.Errorf("loading config: %w", err)
	}

	o.Config = cfg
	o.Presets = flags.presets
	o.Jobs = flags.jobs

	return nil
}
