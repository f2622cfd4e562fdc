package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the journal's runtime configuration.
type Config struct {
	// TrainingAccountPrefix identifies simulated accounts by name prefix.
	// Empty disables training classification; every trade is live.
	TrainingAccountPrefix string `yaml:"training_account_prefix" json:"training_account_prefix" jsonschema:"title=Training Account Prefix,description=Account name prefix that marks simulated accounts"`
	// DataFolder holds the broker exports, one fills CSV per trading day.
	DataFolder string `yaml:"data_folder" json:"data_folder" jsonschema:"title=Data Folder,description=Folder containing broker fill exports"`
	// ResultsFolder receives run summaries and rendered output.
	ResultsFolder string `yaml:"results_folder" json:"results_folder" jsonschema:"title=Results Folder,description=Folder receiving run summaries"`
	// ChartsFolder holds chart screenshots as {date}/{SYMBOL}.png.
	ChartsFolder string `yaml:"charts_folder" json:"charts_folder" jsonschema:"title=Charts Folder,description=Folder containing per-day chart screenshots"`
	// DatabasePath is the journal DuckDB file.
	DatabasePath string `yaml:"database_path" json:"database_path" jsonschema:"title=Database Path,description=Path to the journal database file"`
	// ReconcileTolerance is the allowed P&L divergence, in currency units,
	// before a reconciliation warning is raised.
	ReconcileTolerance float64 `yaml:"reconcile_tolerance" json:"reconcile_tolerance" validate:"gte=0" jsonschema:"title=Reconcile Tolerance,description=Allowed divergence between computed and reported P&L,minimum=0"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		TrainingAccountPrefix: "TR",
		DataFolder:            "data",
		ResultsFolder:         "results",
		ChartsFolder:          "charts",
		DatabasePath:          "journal.db",
		ReconcileTolerance:    0.50,
	}
}

// UnmarshalYAML implements custom unmarshaling for Config so that omitted
// fields keep their defaults instead of collapsing to zero values.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawConfig struct {
		TrainingAccountPrefix *string  `yaml:"training_account_prefix"`
		DataFolder            *string  `yaml:"data_folder"`
		ResultsFolder         *string  `yaml:"results_folder"`
		ChartsFolder          *string  `yaml:"charts_folder"`
		DatabasePath          *string  `yaml:"database_path"`
		ReconcileTolerance    *float64 `yaml:"reconcile_tolerance"`
	}

	var raw rawConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*c = DefaultConfig()

	if raw.TrainingAccountPrefix != nil {
		c.TrainingAccountPrefix = *raw.TrainingAccountPrefix
	}

	if raw.DataFolder != nil {
		c.DataFolder = *raw.DataFolder
	}

	if raw.ResultsFolder != nil {
		c.ResultsFolder = *raw.ResultsFolder
	}

	if raw.ChartsFolder != nil {
		c.ChartsFolder = *raw.ChartsFolder
	}

	if raw.DatabasePath != nil {
		c.DatabasePath = *raw.DatabasePath
	}

	if raw.ReconcileTolerance != nil {
		c.ReconcileTolerance = *raw.ReconcileTolerance
	}

	return nil
}

// ParseConfig parses a YAML configuration document.
func ParseConfig(content []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and parses a YAML configuration file. A missing path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return ParseConfig(content)
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)

	schema.Title = "trade-journal-config"
	schema.Description = "Configuration schema for the trade journal"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates the JSON schema as a string.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema := c.GenerateSchema()

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal schema", err)
	}

	return string(data), nil
}
