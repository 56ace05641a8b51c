package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bgricker/actionsmith/internal/config"
	"github.com/bgricker/actionsmith/internal/ctxlog"
	"github.com/bgricker/actionsmith/internal/discovery"
	"github.com/bgricker/actionsmith/internal/filter"
)

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}

// logContext wires a slog logger into the context: debug text on stderr
// when verbose, discarded otherwise.
func logContext(cmd *cobra.Command, cfg config.Config) context.Context {
	var handler slog.Handler
	if cfg.Verbose {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return ctxlog.WithLogger(cmd.Context(), slog.New(handler))
}

// resolvePaths combines config paths, command arguments and discovery, then
// applies only/skip filters.
func resolvePaths(root string, cfg config.Config, args []string) ([]string, error) {
	explicit := append(append([]string{}, cfg.Paths...), args...)
	paths, err := discovery.Files(root, explicit)
	if err != nil {
		if errors.Is(err, discovery.ErrNoFiles) {
			return nil, fmt.Errorf("no configuration files found; pass paths as arguments")
		}
		return nil, err
	}

	only, err := filter.Compile(cfg.Only)
	if err != nil {
		return nil, err
	}
	skip, err := filter.Compile(cfg.Skip)
	if err != nil {
		return nil, err
	}
	filtered := filter.Paths(paths, only, skip)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("all discovered files were filtered out")
	}
	return filtered, nil
}
