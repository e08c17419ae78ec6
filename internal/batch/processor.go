// Package batch runs documents through the extraction pipeline, one at a time
// or many in parallel, keeping a per-file outcome.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/fattura-csv/internal/assembler"
	"fjacquet/fattura-csv/internal/fatturaparser"
	"fjacquet/fattura-csv/internal/installments"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/parsererror"
	"fjacquet/fattura-csv/internal/reconcile"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds ProcessAll when no worker count is configured.
const DefaultWorkers = 4

// Options configures a Processor.
type Options struct {
	Reconcile reconcile.Options
	Workers   int
}

// Source is one named document to process.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource reads the document at path; its name is the base file name.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path) // #nosec G304 -- path is chosen by the user
		},
	}
}

// BytesSource serves an in-memory document, such as an upload.
func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Outcome is the result of one source. Err, when set, is a
// *parsererror.DocumentError naming the source.
type Outcome struct {
	Name string
	Rows []models.Row
	Err  error
}

// Processor is the document pipeline: extraction, reconciliation,
// installment splitting and row assembly.
type Processor struct {
	parser    *fatturaparser.Parser
	assembler *assembler.Assembler
	opts      Options
	logger    logging.Logger
}

// NewProcessor creates a Processor. Workers below 1 select DefaultWorkers.
func NewProcessor(parser *fatturaparser.Parser, asm *assembler.Assembler, opts Options, logger logging.Logger) *Processor {
	logger = logging.OrDefault(logger)
	if parser == nil {
		parser = fatturaparser.NewParser(nil, logger)
	}
	if asm == nil {
		asm = assembler.New(assembler.Options{CreditNotePrefix: assembler.DefaultCreditNotePrefix})
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	return &Processor{parser: parser, assembler: asm, opts: opts, logger: logger}
}

// ProcessInvoice turns one extracted invoice into its rows.
func (p *Processor) ProcessInvoice(inv *models.Invoice) []models.Row {
	totals := reconcile.Reconcile(reconcile.InputFromInvoice(inv), p.opts.Reconcile)
	if !totals.Balanced() {
		p.logger.Warn("Amounts do not reconcile with the declared total",
			logging.F(logging.FieldFile, inv.FileName),
			logging.F(logging.FieldDocument, inv.DocumentNumber),
			logging.F(logging.FieldDiscrepancy, totals.Discrepancy.StringFixed(2)))
	}

	rows := p.assembler.Assemble(inv, installments.Split(inv, totals))
	p.logger.Debug("Document assembled",
		logging.F(logging.FieldFile, inv.FileName),
		logging.F(logging.FieldGroupID, rows[0].GroupID),
		logging.F(logging.FieldCassaSource, totals.CassaSource.String()),
		logging.F(logging.FieldCount, len(rows)))
	return rows
}

// ProcessDocument parses r and returns the rows of every body, in document
// order. Failures are returned as *parsererror.DocumentError.
func (p *Processor) ProcessDocument(r io.Reader, name string) ([]models.Row, error) {
	invoices, err := p.parser.Parse(r, name)
	if err != nil {
		return nil, &parsererror.DocumentError{FileName: name, Err: err}
	}

	var rows []models.Row
	for i := range invoices {
		rows = append(rows, p.ProcessInvoice(&invoices[i])...)
	}
	return rows, nil
}

func (p *Processor) processSource(src Source) Outcome {
	rc, err := src.Open()
	if err != nil {
		return Outcome{Name: src.Name, Err: &parsererror.DocumentError{
			FileName: src.Name,
			Err:      fmt.Errorf("failed to open document: %w", err),
		}}
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			p.logger.WithError(cerr).Warn("Failed to close document", logging.F(logging.FieldFile, src.Name))
		}
	}()

	rows, err := p.ProcessDocument(rc, src.Name)
	return Outcome{Name: src.Name, Rows: rows, Err: err}
}

// ProcessAll processes sources in parallel, at most Workers at a time. The
// outcomes keep the order of sources and a failing document never affects
// its siblings. Cancelling ctx skips the sources not yet started; documents
// already in flight finish.
func (p *Processor) ProcessAll(ctx context.Context, sources []Source) []Outcome {
	outcomes := make([]Outcome, len(sources))

	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			outcomes[i] = Outcome{Name: src.Name, Err: &parsererror.DocumentError{FileName: src.Name, Err: err}}
			continue
		}
		g.Go(func() error {
			outcomes[i] = p.processSource(src)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			p.logger.WithError(o.Err).Warn("Document skipped", logging.F(logging.FieldFile, o.Name))
		}
	}
	p.logger.Info("Batch processed",
		logging.F(logging.FieldCount, len(sources)),
		logging.F(logging.FieldFailed, failed),
		logging.F(logging.FieldWorkers, p.opts.Workers))

	return outcomes
}

// Collect concatenates the rows of successful outcomes in order. When any
// outcome failed it also returns a *parsererror.BatchError listing them.
func Collect(outcomes []Outcome) ([]models.Row, error) {
	var rows []models.Row
	var failures []*parsererror.DocumentError

	for _, o := range outcomes {
		if o.Err == nil {
			rows = append(rows, o.Rows...)
			continue
		}
		docErr, ok := o.Err.(*parsererror.DocumentError)
		if !ok {
			docErr = &parsererror.DocumentError{FileName: o.Name, Err: o.Err}
		}
		failures = append(failures, docErr)
	}

	if len(failures) > 0 {
		return rows, &parsererror.BatchError{Failures: failures}
	}
	return rows, nil
}
