package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Row is one output record. A document produces one row, or one per
// installment; all rows of a document share GroupID.
type Row struct {
	GroupID     string `json:"group_id"`
	RowIndex    int    `json:"row_index"`
	IsGroupHead bool   `json:"is_group_head"`

	FileName       string `json:"file_name"`
	SupplierName   string `json:"supplier_name"`
	CustomerName   string `json:"customer_name"`
	DocumentNumber string `json:"document_number"`
	DocumentDate   string `json:"document_date"`
	DueDate        string `json:"due_date"`

	Taxable     decimal.Decimal `json:"taxable"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
	Cassa       decimal.Decimal `json:"cassa"`
	Withholding decimal.Decimal `json:"withholding"`

	Description   string `json:"description"`
	PaymentMethod string `json:"payment_method"`
	DocumentType  string `json:"document_type"`

	IsCreditNote  bool `json:"is_credit_note"`
	IsInstallment bool `json:"is_installment"`
}

// Key identifies the row within a result set.
func (r Row) Key() string {
	return r.GroupID + "#" + strconv.Itoa(r.RowIndex)
}
