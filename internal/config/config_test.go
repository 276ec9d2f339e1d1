package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars or file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, DefaultInputFile, cfg.Paths.InputFile)
				assert.Equal(t, uint64(42), cfg.Generator.Seed)
				assert.Equal(t, 8, cfg.Analyzer.TopJobTitles)
				assert.True(t, cfg.Analyzer.Parallel)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
paths:
  output_dir: reports/out
generator:
  seed: 7
  survey_prob: 0.5
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "reports/out", cfg.Paths.OutputDir)
				assert.Equal(t, uint64(7), cfg.Generator.Seed)
				assert.Equal(t, 0.5, cfg.Generator.SurveyProb)
				// untouched fields keep defaults
				assert.Equal(t, 0.05, cfg.Generator.CancellationProb)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"EVENTCLI_GENERATOR_SEED":    "99",
				"EVENTCLI_ANALYZER_PARALLEL": "false",
				"EVENTCLI_LOGGING_LEVEL":     "debug",
			},
			fileContent: `
generator:
  seed: 7
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, uint64(99), cfg.Generator.Seed)
				assert.False(t, cfg.Analyzer.Parallel)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "probability out of range fails validation",
			env: map[string]string{
				"EVENTCLI_GENERATOR_CANCELLATION_PROB": "1.5",
			},
			wantErr: true,
		},
		{
			name: "inverted lead time range fails validation",
			fileContent: `
generator:
  min_lead_days: 30
  max_lead_days: 10
`,
			wantErr: true,
		},
		{
			name: "unknown log level fails validation",
			env: map[string]string{
				"EVENTCLI_LOGGING_LEVEL": "verbose",
			},
			wantErr: true,
		},
		{
			name:        "malformed yaml",
			fileContent: "generator: [unclosed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EVENTCLI_CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(t.TempDir(), "eventcli.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("charts:\n  width: 800\n"), 0644))
	t.Setenv("EVENTCLI_CONFIG_FILE", configFile)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Charts.Width)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestNewPaths(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewPaths(PathsConfig{
		InputFile:   filepath.Join(dir, "in", "regs.csv"),
		OutputDir:   filepath.Join(dir, "out"),
		CatalogFile: "catalog.yaml",
	})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.CatalogFile))
	assert.Equal(t, filepath.Join(dir, "out", SummaryFile), paths.GetArtifactPath(SummaryFile))

	require.NoError(t, paths.EnsureOutputDir())
	require.NoError(t, paths.EnsureInputDir())
	assert.DirExists(t, filepath.Join(dir, "out"))
	assert.DirExists(t, filepath.Join(dir, "in"))
}

func TestNewPaths_NoCatalog(t *testing.T) {
	paths, err := NewPaths(PathsConfig{InputFile: "a.csv", OutputDir: "out"})
	require.NoError(t, err)
	assert.Empty(t, paths.CatalogFile)
}
