package container

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fattura-csv/internal/config"
	"fjacquet/fattura-csv/internal/export"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(*testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "defaults",
			config: func(*testing.T) *config.Config { return config.Default() },
		},
		{
			name: "custom alias file",
			config: func(t *testing.T) *config.Config {
				path := filepath.Join(t.TempDir(), "customers.yaml")
				require.NoError(t, os.WriteFile(path, []byte("customers:\n  - canonical: ACME\n    patterns: [ACME]\n"), 0o600))
				cfg := config.Default()
				cfg.Customers.File = path
				return cfg
			},
		},
		{
			name: "missing alias file",
			config: func(t *testing.T) *config.Config {
				cfg := config.Default()
				cfg.Customers.File = filepath.Join(t.TempDir(), "absent.yaml")
				return cfg
			},
			expectError: true,
			errorMsg:    "failed to load customer aliases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetProcessor())
			assert.NotNil(t, c.GetExporter())
			assert.NotNil(t, c.GetResults())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWith_UsesAliases(t *testing.T) {
	aliases := &store.MockAliasStore{Aliases: []models.CustomerAlias{
		{Canonical: "ACME", Patterns: []string{"acme"}},
	}}

	c, err := NewContainerWith(config.Default(), logging.NewMockLogger(), aliases)
	require.NoError(t, err)
	assert.Equal(t, "ACME", c.GetNormalizer().Normalize("Acme Spa"))
	assert.Equal(t, "Metania srl", c.GetNormalizer().Normalize("Metania srl"))
}

func TestNewContainerWith_AliasError(t *testing.T) {
	_, err := NewContainerWith(config.Default(), logging.NewMockLogger(), &store.MockAliasStore{Err: errors.New("boom")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDefaultFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Format = "xlsx"
	c, err := NewContainerWith(cfg, logging.NewMockLogger(), &store.MockAliasStore{})
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, c.DefaultFormat())
}

func TestNewRouter_AppliesAccessKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Server.AccessKey = "k"
	c, err := NewContainerWith(cfg, logging.NewMockLogger(), &store.MockAliasStore{})
	require.NoError(t, err)
	router := c.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	req.Header.Set("X-Access-Key", "k")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"count":0`))
}
