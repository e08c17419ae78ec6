// Package store loads the customer alias table from YAML.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultAliasFile is looked up when no file is configured.
const DefaultAliasFile = "customers.yaml"

// AliasLoader provides the customer alias table.
type AliasLoader interface {
	LoadAliases() ([]models.CustomerAlias, error)
}

// AliasStore reads the customer alias table from a YAML file.
type AliasStore struct {
	AliasFile string
	logger    logging.Logger
}

// NewAliasStore creates a store for aliasFile. An empty name means
// DefaultAliasFile in the standard locations.
func NewAliasStore(aliasFile string, logger logging.Logger) *AliasStore {
	return &AliasStore{
		AliasFile: aliasFile,
		logger:    logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *AliasStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".fattura-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadAliases returns the aliases declared in the file. A missing default
// file yields no aliases and no error; a configured file that is missing is
// an error.
func (s *AliasStore) LoadAliases() ([]models.CustomerAlias, error) {
	filename := s.AliasFile
	if filename == "" {
		filename = DefaultAliasFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) && s.AliasFile == "" {
			s.logger.Debug("No customer alias file found, using built-in table")
			return nil, nil
		}
		return nil, fmt.Errorf("customer alias file not found: %s", filename)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading customer alias file: %w", err)
	}

	aliases, err := parseAliases(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing customer alias file %s: %w", filePath, err)
	}

	for i, alias := range aliases {
		if err := validateAlias(filePath, i, alias); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("Loaded customer aliases",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(aliases)))
	return aliases, nil
}

// parseAliases accepts either a top-level "customers" key or a bare list.
func parseAliases(data []byte) ([]models.CustomerAlias, error) {
	var cfg models.CustomerAliasesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Customers) > 0 {
		return cfg.Customers, nil
	}

	var aliases []models.CustomerAlias
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

func validateAlias(filePath string, index int, alias models.CustomerAlias) error {
	if strings.TrimSpace(alias.Canonical) == "" {
		return &parsererror.DataExtractionError{
			FilePath:  filePath,
			FieldName: "canonical",
			Reason:    fmt.Sprintf("entry %d has no canonical name", index+1),
		}
	}
	for _, p := range alias.Patterns {
		if strings.TrimSpace(p) != "" {
			return nil
		}
	}
	return &parsererror.DataExtractionError{
		FilePath:  filePath,
		FieldName: "patterns",
		Reason:    fmt.Sprintf("entry %d (%s) has no pattern", index+1, alias.Canonical),
	}
}
