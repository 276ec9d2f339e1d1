package app

import (
	"context"
	"log/slog"

	"eventcli/internal/config"
	"eventcli/internal/errors"
	"eventcli/internal/exporter"
	"eventcli/internal/generator"
	"eventcli/internal/infrastructure"
	"eventcli/internal/validation"
)

// GenerateResult describes a finished generator run
type GenerateResult struct {
	Path    string
	Summary generator.Summary
}

// RunGenerator produces the synthetic registrations file
func RunGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*GenerateResult, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "generator")

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, err
	}

	if err := validation.NewFileValidator(logger).ValidateOutputFile(paths.InputFile); err != nil {
		return nil, err
	}

	catalog, err := generator.LoadCatalog(paths.CatalogFile)
	if err != nil {
		return nil, err
	}

	params := generator.ParamsFromConfig(cfg.Generator)
	logger.InfoContext(ctx, "Generating registrations",
		slog.Uint64("seed", params.Seed),
		slog.Int("events", len(catalog.Events)),
		slog.Int("channels", len(catalog.Channels)),
		slog.Int("target_rows", catalog.TotalRegistrations()))

	gen, err := generator.New(catalog, params, logger)
	if err != nil {
		return nil, err
	}
	rows, err := gen.Generate(ctx)
	if err != nil {
		return nil, err
	}

	if err := paths.EnsureInputDir(); err != nil {
		return nil, errors.NewStorageError("failed to create data directory", err)
	}
	if err := exporter.WriteRegistrations(ctx, paths.InputFile, rows, logger); err != nil {
		return nil, err
	}

	summary := generator.Summarize(rows)
	logger.InfoContext(ctx, "Registrations written",
		slog.String("path", paths.InputFile),
		slog.Int("rows", summary.Total))
	return &GenerateResult{Path: paths.InputFile, Summary: summary}, nil
}
