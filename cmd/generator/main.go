package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"eventcli/internal/app"
	"eventcli/internal/config"
	"eventcli/internal/infrastructure"
	"eventcli/pkg/contracts"
)

const toolName = "generator"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run parses args, generates the dataset and prints its summary. It returns
// the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	configFile := fs.String("config", "", "path to YAML config file")
	out := fs.String("out", "", "output CSV path (defaults to "+config.DefaultInputFile+")")
	seed := fs.Uint64("seed", 0, "random seed (defaults to the configured seed)")
	catalog := fs.String("catalog", "", "YAML event/channel catalog (defaults to the built-in catalog)")
	version := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString(toolName))
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Paths.InputFile = *out
		case "seed":
			cfg.Generator.Seed = *seed
		case "catalog":
			cfg.Paths.CatalogFile = *catalog
		}
	})
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Starting generator", slog.String("version", contracts.GetVersionString(toolName)))

	res, err := app.RunGenerator(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Generation failed", slog.String("error", err.Error()))
		return 1
	}

	fmt.Fprintf(stdout, "%s\nWritten to %s\n", res.Summary, res.Path)
	return 0
}
