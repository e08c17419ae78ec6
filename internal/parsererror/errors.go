// Package parsererror defines the typed errors returned while reading invoice
// documents, so callers can tell malformed input apart from I/O failures.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError represents a field value that could not be parsed
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents input that is not a FatturaPA document: either
// not well-formed XML or XML without any invoice body.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents required data that could not be extracted
// from an otherwise readable file.
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s",
		e.FilePath, e.FieldName, e.Reason)
}

// DocumentError ties a failure to the source file that produced it.
type DocumentError struct {
	FileName string
	Err      error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.FileName, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// BatchError aggregates the failures of a batch run.
type BatchError struct {
	Failures []*DocumentError
}

func (e *BatchError) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, "  - "+f.Error())
	}
	return fmt.Sprintf("%d file(s) could not be processed:\n%s",
		len(e.Failures), strings.Join(lines, "\n"))
}

// Unwrap exposes every wrapped failure to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// FileNames lists the failing files in batch order.
func (e *BatchError) FileNames() []string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.FileName
	}
	return names
}
