package xmlutils

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"sync"

	"fjacquet/fattura-csv/internal/parsererror"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// ExpectedFormat names the accepted input in format errors.
const ExpectedFormat = "FatturaPA XML"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a FatturaPA document into a tree. A leading UTF-8 byte order
// mark is skipped and non UTF-8 prologs such as ISO-8859-1 or windows-1252
// are decoded. Input that is not well-formed XML yields an
// *parsererror.InvalidFormatError naming the source.
func Parse(r io.Reader, name string) (*xmlpath.Node, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("failed to skip byte order mark: %w", err)
		}
	}

	decoder := xml.NewDecoder(br)
	decoder.CharsetReader = charset.NewReaderLabel

	root, err := xmlpath.ParseDecoder(decoder)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: ExpectedFormat,
			Msg:            "document is not well-formed",
			Err:            err,
		}
	}
	return root, nil
}

var compiled sync.Map

// Path returns the compiled form of expr, compiling it once per process.
// It panics on an invalid expression, as expressions are program constants.
func Path(expr string) *xmlpath.Path {
	if p, ok := compiled.Load(expr); ok {
		return p.(*xmlpath.Path)
	}
	p := xmlpath.MustCompile(expr)
	actual, _ := compiled.LoadOrStore(expr, p)
	return actual.(*xmlpath.Path)
}

// Nodes returns every node matching expr under node, in document order.
func Nodes(node *xmlpath.Node, expr string) []*xmlpath.Node {
	var nodes []*xmlpath.Node
	iter := Path(expr).Iter(node)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes
}

// Values returns the text of every node matching expr under node.
func Values(node *xmlpath.Node, expr string) []string {
	var values []string
	iter := Path(expr).Iter(node)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}
	return values
}

// Text returns the trimmed text of the first node matching expr, or "".
func Text(node *xmlpath.Node, expr string) string {
	if node == nil {
		return ""
	}
	value, ok := Path(expr).String(node)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// CleanText collapses runs of whitespace, tabs and newlines into single
// spaces and trims the result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
