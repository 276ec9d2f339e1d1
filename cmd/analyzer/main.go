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

const toolName = "analyzer"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run parses args, analyzes the registrations file and prints the summary.
// It returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	configFile := fs.String("config", "", "path to YAML config file")
	in := fs.String("in", "", "registrations CSV (defaults to "+config.DefaultInputFile+")")
	out := fs.String("out", "", "output directory for charts and reports (defaults to "+config.DefaultOutputDir+")")
	sequential := fs.Bool("sequential", false, "compute reports one after another")
	noWorkbook := fs.Bool("no-workbook", false, "skip the XLSX workbook")
	noMetrics := fs.Bool("no-metrics", false, "skip the Prometheus textfile")
	traces := fs.Bool("traces", false, "write spans to "+config.TracesFile)
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
	if *in != "" {
		cfg.Paths.InputFile = *in
	}
	if *out != "" {
		cfg.Paths.OutputDir = *out
	}
	if *sequential {
		cfg.Analyzer.Parallel = false
	}
	if *noWorkbook {
		cfg.Analyzer.WriteWorkbook = false
	}
	if *noMetrics {
		cfg.Analyzer.WriteMetrics = false
	}
	if *traces {
		cfg.Analyzer.WriteTraces = true
	}
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
	logger.InfoContext(ctx, "Starting analyzer", slog.String("version", contracts.GetVersionString(toolName)))

	res, err := app.RunAnalyzer(ctx, cfg, stdout, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis failed", slog.String("error", err.Error()))
		return 1
	}

	fmt.Fprintf(stdout, "\nArtifacts written to %s\n", res.OutputDir)
	return 0
}
