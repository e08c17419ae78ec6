package store

import "fjacquet/fattura-csv/internal/models"

// MockAliasStore is an in-memory AliasLoader for tests.
type MockAliasStore struct {
	Aliases []models.CustomerAlias
	Err     error
}

// LoadAliases returns the configured aliases or error.
func (m *MockAliasStore) LoadAliases() ([]models.CustomerAlias, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Aliases, nil
}
