package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Default locations, relative to the working directory of the caller
const (
	DefaultInputFile = "data/event_registrations.csv"
	DefaultOutputDir = "dashboards"
)

// Artifact file names written by the analyzer
const (
	SummaryFile   = "summary.txt"
	WorkbookFile  = "event_analytics.xlsx"
	MetricsFile   = "event_analytics.prom"
	TracesFile    = "traces.json"
	KPIFile       = "kpis.csv"
	EventsFile    = "events.csv"
	ChannelsFile  = "channels.csv"
	FunnelFile    = "funnel.csv"
	TimingFile    = "timing.csv"
	JobTitlesFile = "job_titles.csv"
	IndustryFile  = "industries.csv"
)

// Paths contains the resolved paths for one run. Nothing is derived from the
// executable location; every path comes from the caller.
type Paths struct {
	InputFile   string
	OutputDir   string
	CatalogFile string
}

// NewPaths resolves the configured paths to absolute paths
func NewPaths(cfg PathsConfig) (*Paths, error) {
	input, err := filepath.Abs(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("resolve input file %q: %w", cfg.InputFile, err)
	}
	output, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir %q: %w", cfg.OutputDir, err)
	}

	paths := &Paths{
		InputFile: input,
		OutputDir: output,
	}
	if cfg.CatalogFile != "" {
		catalog, err := filepath.Abs(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("resolve catalog file %q: %w", cfg.CatalogFile, err)
		}
		paths.CatalogFile = catalog
	}
	return paths, nil
}

// GetArtifactPath returns the full path for an artifact in the output directory
func (p *Paths) GetArtifactPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (p *Paths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// EnsureInputDir creates the directory that will hold the input file
func (p *Paths) EnsureInputDir() error {
	dir := filepath.Dir(p.InputFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Path resolution",
		slog.String("input_file", p.InputFile),
		slog.String("output_dir", p.OutputDir),
		slog.String("catalog_file", p.CatalogFile))
}
