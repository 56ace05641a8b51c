package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/actionsmith/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("only") {
		v, err := flags.GetStringArray("only")
		if err != nil {
			return values, fmt.Errorf("parse --only: %w", err)
		}
		values.Only = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("skip") {
		v, err := flags.GetStringArray("skip")
		if err != nil {
			return values, fmt.Errorf("parse --skip: %w", err)
		}
		values.Skip = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("job") {
		v, err := flags.GetStringArray("job")
		if err != nil {
			return values, fmt.Errorf("parse --job: %w", err)
		}
		values.Jobs = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("out") {
		v, err := flags.GetString("out")
		if err != nil {
			return values, fmt.Errorf("parse --out: %w", err)
		}
		values.OutputDir = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("strict") {
		v, err := flags.GetBool("strict")
		if err != nil {
			return values, fmt.Errorf("parse --strict: %w", err)
		}
		values.Strict = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("skip-validation") {
		v, err := flags.GetBool("skip-validation")
		if err != nil {
			return values, fmt.Errorf("parse --skip-validation: %w", err)
		}
		values.SkipValidation = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("fail-fast") {
		v, err := flags.GetBool("fail-fast")
		if err != nil {
			return values, fmt.Errorf("parse --fail-fast: %w", err)
		}
		values.FailFast = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("dry-run") {
		v, err := flags.GetBool("dry-run")
		if err != nil {
			return values, fmt.Errorf("parse --dry-run: %w", err)
		}
		values.DryRun = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
