// Package report summarizes a batch run for auditing: how many documents
// and rows were produced, their summed amounts and the files that failed.
package report

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amounts are summed over head and installment rows alike.
type Amounts struct {
	Taxable     decimal.Decimal `json:"taxable" xml:"Taxable"`
	VAT         decimal.Decimal `json:"vat" xml:"VAT"`
	Cassa       decimal.Decimal `json:"cassa" xml:"Cassa"`
	Withholding decimal.Decimal `json:"withholding" xml:"Withholding"`
	Total       decimal.Decimal `json:"total" xml:"Total"`
}

// Failure is a file that produced no rows.
type Failure struct {
	File  string `json:"file" xml:"File"`
	Error string `json:"error" xml:"Error"`
}

// BatchReport is the summary of one batch run.
type BatchReport struct {
	XMLName      xml.Name  `json:"-" xml:"BatchReport"`
	ReportID     string    `json:"report_id" xml:"ReportID"`
	GeneratedAt  time.Time `json:"generated_at" xml:"GeneratedAt"`
	Documents    int       `json:"documents" xml:"Documents"`
	Rows         int       `json:"rows" xml:"Rows"`
	CreditNotes  int       `json:"credit_notes" xml:"CreditNotes"`
	Installments int       `json:"installments" xml:"Installments"`
	Invoices     Amounts   `json:"invoices" xml:"Invoices"`
	Credits      Amounts   `json:"credit_note_amounts" xml:"CreditNoteAmounts"`
	Failures     []Failure `json:"failures,omitempty" xml:"Failures>Failure,omitempty"`
}

func zeroAmounts() Amounts {
	return Amounts{Taxable: decimal.Zero, VAT: decimal.Zero, Cassa: decimal.Zero, Withholding: decimal.Zero, Total: decimal.Zero}
}

func (a *Amounts) add(r models.Row) {
	a.Taxable = a.Taxable.Add(r.Taxable)
	a.VAT = a.VAT.Add(r.VAT)
	a.Cassa = a.Cassa.Add(r.Cassa)
	a.Withholding = a.Withholding.Add(r.Withholding)
	a.Total = a.Total.Add(r.Total)
}

// Summarize builds the report of rows. batchErr, when it is or wraps a
// *parsererror.BatchError, supplies the failures; any other error is listed
// as a single failure without file name.
func Summarize(rows []models.Row, batchErr error) *BatchReport {
	r := &BatchReport{
		ReportID:    uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Rows:        len(rows),
		Invoices:    zeroAmounts(),
		Credits:     zeroAmounts(),
	}

	groups := make(map[string]struct{})
	for _, row := range rows {
		if _, seen := groups[row.GroupID]; !seen {
			groups[row.GroupID] = struct{}{}
			if row.IsCreditNote {
				r.CreditNotes++
			}
		}
		if row.IsInstallment {
			r.Installments++
		}
		if row.IsCreditNote {
			r.Credits.add(row)
		} else {
			r.Invoices.add(row)
		}
	}
	r.Documents = len(groups)

	var be *parsererror.BatchError
	switch {
	case errors.As(batchErr, &be):
		for _, f := range be.Failures {
			r.Failures = append(r.Failures, Failure{File: f.FileName, Error: f.Err.Error()})
		}
	case batchErr != nil:
		r.Failures = append(r.Failures, Failure{Error: batchErr.Error()})
	}
	return r
}

// Generator renders reports.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logging.OrDefault(logger)}
}

// Generate renders report as "json" or "xml".
func (g *Generator) Generate(report *BatchReport, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(report)
	case "xml":
		return g.generateXML(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(report *BatchReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *Generator) generateXML(report *BatchReport) ([]byte, error) {
	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(data)), nil
}
