// Package fatturaparser extracts invoice fields from FatturaPA documents.
// Each FatturaElettronicaBody yields one models.Invoice; header parties are
// shared by every body of the file.
package fatturaparser

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/fattura-csv/internal/currencyutils"
	"fjacquet/fattura-csv/internal/dateutils"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/lookup"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/parsererror"
	"fjacquet/fattura-csv/internal/xmlutils"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"
)

const parserName = "fatturapa"

// Parser extracts invoices from document trees. It holds no per-document
// state and is safe for concurrent use.
type Parser struct {
	paths      xmlutils.FatturaPA
	normalizer *lookup.Normalizer
	logger     logging.Logger
}

// NewParser creates a Parser. A nil normalizer selects the built-in customer
// alias table.
func NewParser(normalizer *lookup.Normalizer, logger logging.Logger) *Parser {
	if normalizer == nil {
		normalizer = lookup.NewNormalizer(nil)
	}
	return &Parser{
		paths:      xmlutils.DefaultFatturaPAPaths(),
		normalizer: normalizer,
		logger:     logging.OrDefault(logger),
	}
}

// Parse reads a document and extracts one invoice per body.
func (p *Parser) Parse(r io.Reader, name string) ([]models.Invoice, error) {
	root, err := xmlutils.Parse(r, name)
	if err != nil {
		return nil, err
	}
	return p.Extract(root, name)
}

// Extract returns one invoice per FatturaElettronicaBody of root. A tree
// without any body is an *parsererror.InvalidFormatError.
func (p *Parser) Extract(root *xmlpath.Node, name string) ([]models.Invoice, error) {
	bodies := xmlutils.Nodes(root, p.paths.Body)
	if len(bodies) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: xmlutils.ExpectedFormat,
			Msg:            "no FatturaElettronicaBody element",
		}
	}

	supplier := partyName(root, p.paths.Supplier.Denominazione, p.paths.Supplier.Nome, p.paths.Supplier.Cognome)
	customerRaw := partyName(root, p.paths.Customer.Denominazione, p.paths.Customer.Nome, p.paths.Customer.Cognome)
	customer := p.normalizer.Normalize(customerRaw)
	if supplier == "" {
		supplier = models.NotAvailable
	}

	invoices := make([]models.Invoice, 0, len(bodies))
	for i, body := range bodies {
		inv := p.extractBody(body, name, i)
		inv.SupplierName = supplier
		inv.CustomerNameRaw = customerRaw
		inv.CustomerName = customer
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (p *Parser) extractBody(body *xmlpath.Node, name string, index int) models.Invoice {
	log := p.logger.WithFields(logging.F(logging.FieldFile, name), logging.F(logging.FieldBody, index))

	inv := models.Invoice{
		FileName:         name,
		BodyIndex:        index,
		DocumentNumber:   xmlutils.Text(body, p.paths.Document.Number),
		DocumentDate:     dateutils.NormalizeISO(xmlutils.Text(body, p.paths.Document.Date)),
		DocumentTypeCode: xmlutils.Text(body, p.paths.Document.TypeCode),
		DescriptionParts: fragments(xmlutils.Values(body, p.paths.Lines.Description)),
		Causale:          fragments(xmlutils.Values(body, p.paths.Document.Causale)),
		TopLevelDueDate:  dateutils.NormalizeISO(xmlutils.Text(body, p.paths.Payment.DueDate)),
	}
	if inv.DocumentNumber == "" {
		inv.DocumentNumber = models.NotAvailable
	}

	if raw := xmlutils.Text(body, p.paths.Document.TotalAmount); raw != "" {
		total := p.amount(log, p.paths.Document.TotalAmount, raw)
		inv.DeclaredTotal = &total
	}

	for _, node := range xmlutils.Nodes(body, p.paths.Summary.Node) {
		inv.VATSummaries = append(inv.VATSummaries, models.VATSummary{
			Taxable: p.amountAt(log, node, p.paths.Summary.Taxable),
			Tax:     p.amountAt(log, node, p.paths.Summary.Tax),
			Rate:    p.amountAt(log, node, p.paths.Summary.Rate),
			Nature:  xmlutils.Text(node, p.paths.Summary.Nature),
		})
	}

	inv.Cassa = p.cassa(log, body)

	inv.Withholding = decimal.Zero
	for _, raw := range xmlutils.Values(body, p.paths.Document.Ritenuta) {
		inv.Withholding = inv.Withholding.Add(p.amount(log, p.paths.Document.Ritenuta, raw))
	}

	for _, node := range xmlutils.Nodes(body, p.paths.Payment.Detail) {
		detail := models.PaymentDetail{
			DueDate:    dateutils.NormalizeISO(xmlutils.Text(node, p.paths.PaymentDetail.DueDate)),
			MethodCode: xmlutils.Text(node, p.paths.PaymentDetail.Method),
		}
		if raw := xmlutils.Text(node, p.paths.PaymentDetail.Amount); raw != "" {
			amount := p.amount(log, p.paths.PaymentDetail.Amount, raw)
			detail.Amount = &amount
		}
		if inv.PaymentMethodCode == "" {
			inv.PaymentMethodCode = detail.MethodCode
		}
		inv.PaymentDetails = append(inv.PaymentDetails, detail)
	}

	return inv
}

// cassa sums every DatiCassaPrevidenziale block. The declared base is kept
// only when at least one block carries ImponibileCassa.
func (p *Parser) cassa(log logging.Logger, body *xmlpath.Node) *models.CassaBlock {
	nodes := xmlutils.Nodes(body, p.paths.Document.Cassa)
	if len(nodes) == 0 {
		return nil
	}

	block := &models.CassaBlock{Amount: decimal.Zero}
	for _, node := range nodes {
		block.Amount = block.Amount.Add(p.amountAt(log, node, p.paths.Cassa.Amount))
		if raw := xmlutils.Text(node, p.paths.Cassa.TaxableBase); raw != "" {
			base := p.amount(log, p.paths.Cassa.TaxableBase, raw)
			if block.TaxableBase != nil {
				base = base.Add(*block.TaxableBase)
			}
			block.TaxableBase = &base
		}
	}
	return block
}

func (p *Parser) amountAt(log logging.Logger, node *xmlpath.Node, expr string) decimal.Decimal {
	return p.amount(log, expr, xmlutils.Text(node, expr))
}

// amount parses raw; unparsable values count as zero.
func (p *Parser) amount(log logging.Logger, field, raw string) decimal.Decimal {
	value, err := currencyutils.ParseAmount(raw)
	if err != nil {
		log.WithError(&parsererror.ParseError{
			Parser: parserName,
			Field:  field,
			Value:  raw,
			Err:    err,
		}).Debug("Unparsable amount counted as zero")
		return decimal.Zero
	}
	return value
}

// partyName prefers Denominazione and falls back to "Nome Cognome".
func partyName(root *xmlpath.Node, denominazione, nome, cognome string) string {
	if name := xmlutils.CleanText(xmlutils.Text(root, denominazione)); name != "" {
		return name
	}
	return xmlutils.CleanText(fmt.Sprintf("%s %s", xmlutils.Text(root, nome), xmlutils.Text(root, cognome)))
}

func fragments(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
