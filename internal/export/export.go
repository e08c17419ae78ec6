// Package export writes result rows as CSV, TSV, clipboard text or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/fattura-csv/internal/fileutils"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Format is an output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// Output encodings for the text formats.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// ParseFormat accepts csv, tsv or xlsx, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// FormatFromPath picks the format from the file extension, falling back to
// def.
func FormatFromPath(path string, def Format) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX
	case strings.HasSuffix(lower, ".tsv"):
		return FormatTSV
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	}
	return def
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatTSV:
		return "text/tab-separated-values; charset=utf-8"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Options configures an Exporter.
type Options struct {
	Delimiter      rune
	IncludeHeaders bool
	Encoding       string
	DateFormat     string
}

// DefaultOptions writes comma separated UTF-8 with headers and Italian dates.
func DefaultOptions() Options {
	return Options{Delimiter: ',', IncludeHeaders: true, Encoding: EncodingUTF8}
}

// Exporter renders rows. It holds no state besides its options.
type Exporter struct {
	opts   Options
	logger logging.Logger
}

// NewExporter creates an Exporter.
func NewExporter(opts Options, logger logging.Logger) *Exporter {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Encoding == "" {
		opts.Encoding = EncodingUTF8
	}
	return &Exporter{opts: opts, logger: logging.OrDefault(logger)}
}

// Write renders rows to w in format f.
func (e *Exporter) Write(w io.Writer, rows []models.Row, f Format) error {
	switch f {
	case FormatCSV:
		return e.writeTable(w, rows, e.opts.Delimiter)
	case FormatTSV:
		return e.writeTable(w, rows, '\t')
	case FormatXLSX:
		return e.writeXLSX(w, rows)
	default:
		return fmt.Errorf("unsupported export format: %q", f)
	}
}

// WriteFile renders rows into path, creating parent directories.
func (e *Exporter) WriteFile(path string, rows []models.Row, f Format) (err error) {
	e.logger.Info("Writing export file",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, string(f)),
		logging.F(logging.FieldCount, len(rows)))

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	if err := e.Write(file, rows, f); err != nil {
		e.logger.WithError(err).Error("Failed to write export file", logging.F(logging.FieldOutputFile, path))
		return err
	}
	return nil
}

// Clipboard returns rows as tab separated text without headers, ready to be
// pasted into a spreadsheet. Quotes are kept verbatim.
func (e *Exporter) Clipboard(rows []models.Row) (string, error) {
	var sb strings.Builder
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(NewClipboardRecord(r, e.opts.DateFormat).Line())
	}
	return sb.String(), nil
}

func (e *Exporter) writeTable(w io.Writer, rows []models.Row, delimiter rune) error {
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, NewRecord(r, e.opts.DateFormat))
	}

	out, closeOut := e.encode(w)

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = delimiter
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	var err error
	if e.opts.IncludeHeaders {
		err = gocsv.MarshalCSV(&records, safe)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(&records, safe)
	}
	if err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("error encoding CSV data: %w", err)
	}
	return nil
}

// encode wraps w with the configured character encoding. Characters without
// a windows-1252 form are replaced rather than failing the export.
func (e *Exporter) encode(w io.Writer) (io.Writer, func() error) {
	if !strings.EqualFold(e.opts.Encoding, EncodingWindows1252) {
		return w, func() error { return nil }
	}
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	tw := transform.NewWriter(w, enc)
	return tw, tw.Close
}
