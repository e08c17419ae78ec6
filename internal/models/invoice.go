// Package models holds the invoice, totals and row types shared by the
// extraction pipeline and its presentation layers.
package models

import (
	"strings"

	"fjacquet/fattura-csv/internal/dateutils"

	"github.com/shopspring/decimal"
)

// VATSummary is one DatiRiepilogo block. Declared values are trusted.
type VATSummary struct {
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
	Rate    decimal.Decimal `json:"rate"`
	Nature  string          `json:"nature,omitempty"`
}

// CassaBlock is the pension-fund contribution declared by the document.
// TaxableBase is non-nil when ImponibileCassa was declared.
type CassaBlock struct {
	Amount      decimal.Decimal  `json:"amount"`
	TaxableBase *decimal.Decimal `json:"taxable_base,omitempty"`
}

// PaymentDetail is one DettaglioPagamento entry.
type PaymentDetail struct {
	DueDate    string           `json:"due_date,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	MethodCode string           `json:"method_code,omitempty"`
}

// Invoice holds the scalar fields extracted from one FatturaElettronicaBody.
// It is built once and never mutated afterwards.
type Invoice struct {
	FileName  string `json:"file_name"`
	BodyIndex int    `json:"body_index"`

	SupplierName    string `json:"supplier_name"`
	CustomerNameRaw string `json:"customer_name_raw"`
	CustomerName    string `json:"customer_name"`

	DocumentNumber   string           `json:"document_number"`
	DocumentDate     string           `json:"document_date"`
	DocumentTypeCode string           `json:"document_type_code"`
	DeclaredTotal    *decimal.Decimal `json:"declared_total,omitempty"`

	VATSummaries []VATSummary    `json:"vat_summaries"`
	Cassa        *CassaBlock     `json:"cassa,omitempty"`
	Withholding  decimal.Decimal `json:"withholding"`

	DescriptionParts []string `json:"description_parts,omitempty"`
	Causale          []string `json:"causale,omitempty"`

	PaymentMethodCode string          `json:"payment_method_code,omitempty"`
	TopLevelDueDate   string          `json:"top_level_due_date,omitempty"`
	PaymentDetails    []PaymentDetail `json:"payment_details,omitempty"`
}

// IsCreditNote reports whether the document type is a credit note.
func (i *Invoice) IsCreditNote() bool {
	return IsCreditNoteType(i.DocumentTypeCode)
}

// Description joins the line descriptions, falling back to the causale
// fragments when no line carries one.
func (i *Invoice) Description() string {
	if len(i.DescriptionParts) > 0 {
		return strings.Join(i.DescriptionParts, " ")
	}
	return strings.Join(i.Causale, " ")
}

// DueDate resolves the document due date: the explicit top-level date, else
// the first payment detail date, else the bank-transfer or document-date
// inference of InferDueDate.
func (i *Invoice) DueDate() string {
	if i.TopLevelDueDate != "" {
		return i.TopLevelDueDate
	}
	if len(i.PaymentDetails) > 0 && i.PaymentDetails[0].DueDate != "" {
		return i.PaymentDetails[0].DueDate
	}
	return InferDueDate("", i.PaymentMethodCode, i.DocumentDate)
}

// InferDueDate returns explicit when set. Otherwise a bank transfer falls due
// on the last day of the document month, and anything else on the document
// date itself.
func InferDueDate(explicit, methodCode, documentDate string) string {
	if explicit != "" {
		return explicit
	}
	if methodCode == PaymentBankTransfer && documentDate != "" {
		if eom, ok := dateutils.EndOfMonthISO(documentDate); ok {
			return eom
		}
	}
	return documentDate
}
