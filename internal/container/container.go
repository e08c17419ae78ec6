// Package container provides dependency injection for the fattura-csv
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/fattura-csv/internal/assembler"
	"fjacquet/fattura-csv/internal/batch"
	"fjacquet/fattura-csv/internal/config"
	"fjacquet/fattura-csv/internal/export"
	"fjacquet/fattura-csv/internal/fatturaparser"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/lookup"
	"fjacquet/fattura-csv/internal/reconcile"
	"fjacquet/fattura-csv/internal/server"
	"fjacquet/fattura-csv/internal/session"
	"fjacquet/fattura-csv/internal/store"

	"github.com/gin-gonic/gin"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.AliasLoader
	normalizer *lookup.Normalizer
	processor  *batch.Processor
	exporter   *export.Exporter
	results    *session.ResultSet
}

// NewContainer creates and wires all application dependencies, using the
// logger and customer alias file described by cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := cfg.NewLogger()
	return NewContainerWith(cfg, logger, store.NewAliasStore(cfg.Customers.File, logger))
}

// NewContainerWith wires the dependencies around an existing logger and
// alias source.
func NewContainerWith(cfg *config.Config, logger logging.Logger, aliases store.AliasLoader) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	table, err := aliases.LoadAliases()
	if err != nil {
		return nil, fmt.Errorf("failed to load customer aliases: %w", err)
	}
	normalizer := lookup.NewNormalizer(table)

	parser := fatturaparser.NewParser(normalizer, logger)
	asm := assembler.New(assembler.Options{CreditNotePrefix: cfg.Documents.CreditNotePrefix})
	processor := batch.NewProcessor(parser, asm, batch.Options{
		Reconcile: reconcile.Options{Tolerance: cfg.Tolerance()},
		Workers:   cfg.Batch.Workers,
	}, logger)

	exporter := export.NewExporter(export.Options{
		Delimiter:      cfg.Delimiter(),
		IncludeHeaders: cfg.CSV.IncludeHeaders,
		Encoding:       cfg.Export.Encoding,
		DateFormat:     cfg.Export.DateFormat,
	}, logger)

	logger.Debug("Container initialized",
		logging.F("custom_aliases", len(table)),
		logging.F(logging.FieldWorkers, cfg.Batch.Workers))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      aliases,
		normalizer: normalizer,
		processor:  processor,
		exporter:   exporter,
		results:    session.NewResultSet(),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the customer alias source.
func (c *Container) GetStore() store.AliasLoader {
	return c.store
}

// GetNormalizer returns the customer name normalizer.
func (c *Container) GetNormalizer() *lookup.Normalizer {
	return c.normalizer
}

// GetProcessor returns the document pipeline.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetExporter returns the configured exporter.
func (c *Container) GetExporter() *export.Exporter {
	return c.exporter
}

// GetResults returns the session result set.
func (c *Container) GetResults() *session.ResultSet {
	return c.results
}

// DefaultFormat returns the configured export format.
func (c *Container) DefaultFormat() export.Format {
	f, err := export.ParseFormat(c.config.Export.Format)
	if err != nil {
		return export.FormatCSV
	}
	return f
}

// NewRouter builds the HTTP router over the container's session.
func (c *Container) NewRouter() *gin.Engine {
	h := server.NewHandler(c.processor, c.results, c.exporter, c.DefaultFormat(), c.logger)
	return server.NewRouter(h, server.Options{
		Addr:           c.config.Server.Addr,
		AccessKey:      c.config.Server.AccessKey,
		AllowedDomains: c.config.Server.AllowedDomains,
	}, c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
