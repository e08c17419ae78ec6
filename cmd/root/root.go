// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/fattura-csv/internal/config"
	"fjacquet/fattura-csv/internal/container"
	"fjacquet/fattura-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fattura-csv",
		Short: "A CLI tool to turn FatturaPA XML invoices into reconciled CSV and XLSX rows.",
		Long: `fattura-csv reads Italian FatturaPA electronic invoices, reconciles their
amounts (taxable base, VAT, pension fund contribution, total) and writes one row
per document, or one per installment, as CSV, TSV or XLSX.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			GetLogger().Info("Welcome to fattura-csv! Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					GetLogger().WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the flags common to all commands
	SharedFlags = CommonFlags{}

	// ConfigFile is an explicit configuration file
	ConfigFile string
	// LogLevel and LogFormat override the configured logging when set
	LogLevel  string
	LogFormat string

	// Workers overrides batch.workers when positive
	Workers int
	// Addr overrides server.addr when set
	Addr string

	// AppConfig is the configuration loaded before every command
	AppConfig *config.Config
	// AppContainer is the dependency container built from AppConfig
	AppContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.fattura-csv, .fattura-csv and .)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text or json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
}

func initialize(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	ApplyOverrides(cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	return nil
}

// ApplyOverrides copies command line overrides into cfg.
func ApplyOverrides(cfg *config.Config) {
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if LogFormat != "" {
		cfg.Log.Format = LogFormat
	}
	if SharedFlags.Format != "" {
		cfg.Export.Format = SharedFlags.Format
	}
	if Workers > 0 {
		cfg.Batch.Workers = Workers
	}
	if Addr != "" {
		cfg.Server.Addr = Addr
	}
}

// GetContainer returns the application container, nil before initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the container logger, or a default one before
// initialization.
func GetLogger() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.OrDefault(nil)
}
