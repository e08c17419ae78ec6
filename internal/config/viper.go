package config

import (
	"fmt"
	"strings"

	"fjacquet/fattura-csv/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FATTURA_LOG_LEVEL.
const EnvPrefix = "FATTURA"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Export struct {
		Format     string `mapstructure:"format" yaml:"format"`
		Encoding   string `mapstructure:"encoding" yaml:"encoding"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	} `mapstructure:"export" yaml:"export"`

	Customers struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"customers" yaml:"customers"`

	Reconciliation struct {
		Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
	} `mapstructure:"reconciliation" yaml:"reconciliation"`

	Documents struct {
		CreditNotePrefix string `mapstructure:"credit_note_prefix" yaml:"credit_note_prefix"`
	} `mapstructure:"documents" yaml:"documents"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AccessKey      string   `mapstructure:"access_key" yaml:"-"`
		AllowedDomains []string `mapstructure:"allowed_domains" yaml:"allowed_domains"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig builds the configuration. Precedence, lowest first:
// defaults, config file, environment. When configFile is empty the usual
// locations are searched and a missing file is not an error.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fattura-csv")
		v.AddConfigPath(".fattura-csv")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// comma separated env value for the domain allow-list
	if len(config.Server.AllowedDomains) == 1 && strings.Contains(config.Server.AllowedDomains[0], ",") {
		config.Server.AllowedDomains = strings.Split(config.Server.AllowedDomains[0], ",")
	}
	for i, d := range config.Server.AllowedDomains {
		config.Server.AllowedDomains[i] = strings.ToLower(strings.TrimSpace(d))
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("export.format", "csv")
	v.SetDefault("export.encoding", "utf-8")
	v.SetDefault("export.date_format", "02/01/2006")

	v.SetDefault("customers.file", "")

	v.SetDefault("reconciliation.tolerance", 1.00)

	v.SetDefault("documents.credit_note_prefix", "NC ")

	v.SetDefault("batch.workers", 4)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.access_key", "")
	v.SetDefault("server.allowed_domains", []string{})
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.Export.Format {
	case "csv", "tsv", "xlsx":
	default:
		return fmt.Errorf("invalid export format: %s (must be 'csv', 'tsv' or 'xlsx')", config.Export.Format)
	}

	switch strings.ToLower(config.Export.Encoding) {
	case "utf-8", "windows-1252":
	default:
		return fmt.Errorf("invalid export encoding: %s (must be 'utf-8' or 'windows-1252')", config.Export.Encoding)
	}

	if config.Reconciliation.Tolerance < 0 {
		return fmt.Errorf("reconciliation.tolerance must not be negative, got: %f", config.Reconciliation.Tolerance)
	}

	if config.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got: %d", config.Batch.Workers)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// Tolerance returns the reconciliation tolerance as a decimal, rounded to
// cents so float noise never leaks into amount comparisons.
func (c *Config) Tolerance() decimal.Decimal {
	return decimal.NewFromFloat(c.Reconciliation.Tolerance).Round(2)
}

// NewLogger builds the application logger from the log section.
func (c *Config) NewLogger() logging.Logger {
	return logging.NewLogrusAdapter(c.Log.Level, c.Log.Format)
}

// Default returns a configuration holding only the built-in defaults, with
// no file or environment lookup.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return &config
}
