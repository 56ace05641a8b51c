package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bgricker/actionsmith/internal/builder"
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "new (workflow|action)",
		Short:     "Scaffold a starter workflow or action file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"workflow", "action"},
		RunE:      runNew,
	}
	cmd.Flags().String("name", "", "display name for the generated document")
	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("parse --name: %w", err)
	}

	var content, defaultPath string
	switch args[0] {
	case "workflow":
		if name == "" {
			name = "CI"
		}
		content, err = scaffoldWorkflow(name)
		defaultPath = filepath.Join(".github", "workflows", "ci.yml")
	case "action":
		if name == "" {
			name = "My Action"
		}
		content, err = scaffoldAction(name)
		defaultPath = "action.yml"
	default:
		return fmt.Errorf("unknown template %q (want workflow or action)", args[0])
	}
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	target := defaultPath
	if cfg.OutputDir != "" {
		target = filepath.Join(cfg.OutputDir, filepath.Base(defaultPath))
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %q: %w", target, err)
	}
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%q already exists; remove it or use --out", target)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", target, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
	return nil
}

func scaffoldWorkflow(name string) (string, error) {
	return builder.NewWorkflow(name).
		On("push", "pull_request").
		Permission("contents", "read").
		Job(builder.NewJob("build").
			RunsOn("ubuntu-latest").
			Step(builder.NewStep("Checkout").Uses("actions/checkout@v4")).
			Step(builder.NewStep("Build").Run("make build")).
			Step(builder.NewStep("Test").Run("make test"))).
		YAML()
}

func scaffoldAction(name string) (string, error) {
	return builder.NewAction(name).
		Description("Describe what the action does").
		Input("input-name", "Describe the input", false, "").
		Composite().
		Step(builder.NewStep("Run").Run("echo \"${{ inputs.input-name }}\"").Shell("bash")).
		YAML()
}
