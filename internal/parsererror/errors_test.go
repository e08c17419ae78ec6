package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "amount",
			err: &ParseError{
				Parser: "fatturapa",
				Field:  "ImponibileImporto",
				Value:  "1O0.00",
				Err:    errors.New("invalid decimal"),
			},
			expected: "fatturapa: failed to parse ImponibileImporto='1O0.00': invalid decimal",
		},
		{
			name: "empty value",
			err: &ParseError{
				Parser: "fatturapa",
				Field:  "Data",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "fatturapa: failed to parse Data='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	original := errors.New("original error")
	err := &ParseError{Parser: "fatturapa", Field: "Importo", Value: "x", Err: original}
	assert.True(t, errors.Is(err, original))
}

func TestInvalidFormatError(t *testing.T) {
	cause := errors.New("XML syntax error on line 3")
	err := &InvalidFormatError{
		FilePath:       "IT001.xml",
		ExpectedFormat: "FatturaPA XML",
		Msg:            "document is not well-formed",
		Err:            cause,
	}

	assert.Equal(t, "invalid format in file 'IT001.xml': document is not well-formed. Expected: FatturaPA XML: XML syntax error on line 3", err.Error())
	assert.True(t, errors.Is(err, cause))

	noCause := &InvalidFormatError{FilePath: "a.xml", ExpectedFormat: "FatturaPA XML", Msg: "no FatturaElettronicaBody"}
	assert.Equal(t, "invalid format in file 'a.xml': no FatturaElettronicaBody. Expected: FatturaPA XML", noCause.Error())
}

func TestDataExtractionError(t *testing.T) {
	err := &DataExtractionError{FilePath: "customers.yaml", FieldName: "canonical", Reason: "entry 2 has no canonical name"}
	assert.Equal(t, "data extraction failed in file 'customers.yaml' for field 'canonical': entry 2 has no canonical name", err.Error())
}

func TestDocumentError_As(t *testing.T) {
	inner := &InvalidFormatError{FilePath: "bad.xml", ExpectedFormat: "FatturaPA XML", Msg: "broken"}
	var wrapped error = &DocumentError{FileName: "bad.xml", Err: inner}

	var target *InvalidFormatError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "bad.xml", target.FilePath)
	assert.Contains(t, wrapped.Error(), "bad.xml: ")
}

func TestBatchError(t *testing.T) {
	sentinel := errors.New("boom")
	err := &BatchError{Failures: []*DocumentError{
		{FileName: "a.xml", Err: sentinel},
		{FileName: "b.xml", Err: errors.New("no body")},
	}}

	assert.Equal(t, []string{"a.xml", "b.xml"}, err.FileNames())
	assert.Equal(t, "2 file(s) could not be processed:\n  - a.xml: boom\n  - b.xml: no body", err.Error())
	assert.True(t, errors.Is(err, sentinel))

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, "a.xml", docErr.FileName)
}
