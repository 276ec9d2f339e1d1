// Package config provides configuration management for the event analytics
// tools. It loads configuration from several sources, validates it, and
// resolves the file paths a run reads from and writes to.
//
// # Configuration Sources
//
// Configuration is layered in this order, later layers winning:
//
//	1. Default values (Default)
//	2. A YAML file (--config flag, EVENTCLI_CONFIG_FILE, or eventcli.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern EVENTCLI_<SECTION>_<FIELD>:
//
//	EVENTCLI_LOGGING_LEVEL=debug
//	EVENTCLI_PATHS_INPUT_FILE=data/event_registrations.csv
//	EVENTCLI_PATHS_OUTPUT_DIR=dashboards
//	EVENTCLI_GENERATOR_SEED=42
//	EVENTCLI_ANALYZER_PARALLEL=false
//
// # Path Management
//
// Paths are never derived from the executable location. NewPaths resolves the
// configured input file and output directory to absolute paths:
//
//	paths, err := config.NewPaths(cfg.Paths)
//	chart := paths.GetArtifactPath("04_conversion_funnel.png")
//
// # Validation
//
// Every struct carries go-playground/validator tags; Load fails when a value
// is out of range (probabilities outside [0,1], an inverted lead-time range,
// an unknown log level).
package config
