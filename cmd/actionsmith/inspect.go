package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgricker/actionsmith/internal/config"
	"github.com/bgricker/actionsmith/internal/handler"
	"github.com/bgricker/actionsmith/internal/output"
	"github.com/bgricker/actionsmith/internal/pipeline"
	"github.com/bgricker/actionsmith/internal/report"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "Classify configuration files and report their kinds",
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
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
	pipe := pipeline.New(handlers, pipeline.Options{})

	ctx := logContext(cmd, cfg)
	results := make([]report.FileResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, pipe.Classify(ctx, path))
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderKinds(results); err != nil {
			return err
		}
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(output.Report{Results: results}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	return nil
}
