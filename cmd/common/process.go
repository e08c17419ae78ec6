// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/fattura-csv/internal/batch"
	"fjacquet/fattura-csv/internal/export"
	"fjacquet/fattura-csv/internal/fileutils"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
)

// ErrNoXMLFiles is returned when a batch directory holds no XML file.
var ErrNoXMLFiles = errors.New("no XML files")

// ResolveFormat picks the explicit format, else the one implied by the
// output extension, else def.
func ResolveFormat(explicit, output string, def export.Format) (export.Format, error) {
	if explicit != "" {
		return export.ParseFormat(explicit)
	}
	if output != "" {
		return export.FormatFromPath(output, def), nil
	}
	return def, nil
}

// ConvertFile processes a single document.
func ConvertFile(p *batch.Processor, inputFile string) ([]models.Row, error) {
	if !fileutils.FileExists(inputFile) {
		return nil, fmt.Errorf("input file does not exist: %s", inputFile)
	}
	outcomes := p.ProcessAll(context.Background(), []batch.Source{batch.FileSource(inputFile)})
	return outcomes[0].Rows, outcomes[0].Err
}

// ProcessDirectory processes every XML file of dir. Rows of the documents
// that succeeded are returned even when others failed; the failures come
// back as a *parsererror.BatchError.
func ProcessDirectory(ctx context.Context, p *batch.Processor, dir string, logger logging.Logger) ([]models.Row, error) {
	files, err := fileutils.ListXMLFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w found in %s", ErrNoXMLFiles, dir)
	}

	logger.Info("Found files for processing",
		logging.F(logging.FieldInputFile, dir),
		logging.F(logging.FieldCount, len(files)))

	sources := make([]batch.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, batch.FileSource(f))
	}
	return batch.Collect(p.ProcessAll(ctx, sources))
}

// WriteRows writes rows to output, or to stdout when output is empty. XLSX
// needs an output file.
func WriteRows(stdout io.Writer, exp *export.Exporter, rows []models.Row, output string, format export.Format) error {
	if output != "" {
		return exp.WriteFile(output, rows, format)
	}
	if format == export.FormatXLSX {
		return fmt.Errorf("xlsx output needs an output file (-o)")
	}
	return exp.Write(stdout, rows, format)
}
