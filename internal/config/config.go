package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "EVENTCLI"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Generator GeneratorConfig `yaml:"generator" envconfig:"GENERATOR"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer" envconfig:"ANALYZER"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputFile   string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	CatalogFile string `yaml:"catalog_file" envconfig:"CATALOG_FILE"`
}

// GeneratorConfig holds the stochastic parameters of the synthetic data generator
type GeneratorConfig struct {
	Seed              uint64  `yaml:"seed" envconfig:"SEED"`
	CancellationProb  float64 `yaml:"cancellation_prob" envconfig:"CANCELLATION_PROB" validate:"gte=0,lte=1"`
	VirtualPenalty    float64 `yaml:"virtual_penalty" envconfig:"VIRTUAL_PENALTY" validate:"gte=0,lte=1"`
	LatePenalty       float64 `yaml:"late_penalty" envconfig:"LATE_PENALTY" validate:"gte=0,lte=1"`
	LateThresholdDays int     `yaml:"late_threshold_days" envconfig:"LATE_THRESHOLD_DAYS" validate:"gte=0"`
	SurveyProb        float64 `yaml:"survey_prob" envconfig:"SURVEY_PROB" validate:"gte=0,lte=1"`
	MinLeadDays       int     `yaml:"min_lead_days" envconfig:"MIN_LEAD_DAYS" validate:"gte=0"`
	MaxLeadDays       int     `yaml:"max_lead_days" envconfig:"MAX_LEAD_DAYS" validate:"gtefield=MinLeadDays"`
}

// AnalyzerConfig toggles analyzer behaviour and optional artifacts
type AnalyzerConfig struct {
	Parallel      bool `yaml:"parallel" envconfig:"PARALLEL"`
	TopJobTitles  int  `yaml:"top_job_titles" envconfig:"TOP_JOB_TITLES" validate:"gte=1"`
	EngagedScore  int  `yaml:"engaged_score" envconfig:"ENGAGED_SCORE" validate:"gte=0,lte=10"`
	WriteWorkbook bool `yaml:"write_workbook" envconfig:"WRITE_WORKBOOK"`
	WriteMetrics  bool `yaml:"write_metrics" envconfig:"WRITE_METRICS"`
	WriteTraces   bool `yaml:"write_traces" envconfig:"WRITE_TRACES"`
}

// ChartsConfig contains chart canvas settings
type ChartsConfig struct {
	Width    int     `yaml:"width" envconfig:"WIDTH" validate:"gte=320"`
	Height   int     `yaml:"height" envconfig:"HEIGHT" validate:"gte=240"`
	FontSize float64 `yaml:"font_size" envconfig:"FONT_SIZE" validate:"gt=0"`
}

// Load builds the configuration in three layers: defaults, then the YAML file
// (if any), then EVENTCLI_* environment variables. An empty configFile falls
// back to EVENTCLI_CONFIG_FILE and then to well-known locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no default tags so unset variables leave file values intact
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct tags with the shared validator instance
func (c *Config) Validate() error {
	return Validator().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"eventcli.yaml",
		"configs/eventcli.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

var sharedValidator = validator.New(validator.WithRequiredStructEnabled())

// Validator returns the process-wide validator; it caches struct metadata
// and is safe for concurrent use.
func Validator() *validator.Validate {
	return sharedValidator
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/eventcli.log",
		},
		Paths: PathsConfig{
			InputFile: DefaultInputFile,
			OutputDir: DefaultOutputDir,
		},
		Generator: GeneratorConfig{
			Seed:              42,
			CancellationProb:  0.05,
			VirtualPenalty:    0.10,
			LatePenalty:       0.08,
			LateThresholdDays: 7,
			SurveyProb:        0.45,
			MinLeadDays:       2,
			MaxLeadDays:       60,
		},
		Analyzer: AnalyzerConfig{
			Parallel:      true,
			TopJobTitles:  8,
			EngagedScore:  6,
			WriteWorkbook: true,
			WriteMetrics:  true,
			WriteTraces:   false,
		},
		Charts: ChartsConfig{
			Width:    1500,
			Height:   750,
			FontSize: 18,
		},
	}
}
