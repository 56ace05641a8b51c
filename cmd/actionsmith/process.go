package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgricker/actionsmith/internal/classify"
	"github.com/bgricker/actionsmith/internal/config"
	"github.com/bgricker/actionsmith/internal/handler"
	"github.com/bgricker/actionsmith/internal/output"
	"github.com/bgricker/actionsmith/internal/pipeline"
	"github.com/bgricker/actionsmith/internal/report"
)

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process [paths...]",
		Short: "Classify, validate and convert configuration files",
		RunE:  runProcess,
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := resolvePaths(root, cfg, args)
	if err != nil {
		return err
	}

	handlers, err := handler.NewSet()
	if err != nil {
		return err
	}
	pipe := pipeline.New(handlers, pipeline.Options{
		SkipValidation: cfg.SkipValidation,
		FailFast:       cfg.FailFast,
	})

	ctx := logContext(cmd, cfg)
	results, summary := pipe.ProcessAll(ctx, paths)

	if err := deliverOutputs(cmd, cfg, results); err != nil {
		return err
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderResults(results, summary); err != nil {
			return err
		}
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(output.Report{Results: results, Summary: &summary}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if summary.ExitCode != 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.TotalFiles)
	}
	return nil
}

// deliverOutputs writes or prints emitted output. With --dry-run the output
// is printed; with --out it is written into the directory; otherwise it
// only travels inside the JSON report.
func deliverOutputs(cmd *cobra.Command, cfg config.Config, results []report.FileResult) error {
	if cfg.DryRun {
		for _, res := range results {
			if res.Output == "" {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n%s\n", res.Path, res.Output)
		}
		return nil
	}
	if cfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %q: %w", cfg.OutputDir, err)
	}
	for _, res := range results {
		if res.Output == "" {
			continue
		}
		target := filepath.Join(cfg.OutputDir, outputName(res))
		if err := os.WriteFile(target, []byte(res.Output), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", target, err)
		}
	}
	return nil
}

// outputName derives the emitted file name: builder code for workflows and
// actions, normalized YAML for the config kinds.
func outputName(res report.FileResult) string {
	base := filepath.Base(res.Path)
	switch classify.Kind(res.Kind) {
	case classify.KindWorkflow, classify.KindAction:
		ext := filepath.Ext(base)
		return strings.TrimSuffix(base, ext) + ".go.txt"
	default:
		return base
	}
}
