// Package assembler zips an invoice and its allocations into output rows.
package assembler

import (
	"fjacquet/fattura-csv/internal/installments"
	"fjacquet/fattura-csv/internal/lookup"
	"fjacquet/fattura-csv/internal/models"

	"github.com/google/uuid"
)

// DefaultCreditNotePrefix marks credit-note document numbers.
const DefaultCreditNotePrefix = "NC "

// IDFunc returns a fresh group id.
type IDFunc func() string

// Options configures an Assembler.
type Options struct {
	CreditNotePrefix string
	NewID            IDFunc
}

// Assembler builds rows. It is safe for concurrent use as long as NewID is.
type Assembler struct {
	prefix string
	newID  IDFunc
}

// New creates an Assembler. A nil NewID generates random UUIDs.
func New(opts Options) *Assembler {
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	return &Assembler{prefix: opts.CreditNotePrefix, newID: newID}
}

// Assemble returns one row per allocation, all sharing a fresh group id.
func (a *Assembler) Assemble(inv *models.Invoice, allocations []installments.Allocation) []models.Row {
	groupID := a.newID()
	creditNote := inv.IsCreditNote()

	number := inv.DocumentNumber
	if creditNote {
		number = a.prefix + number
	}
	docType := lookup.DocumentTypeLabel(inv.DocumentTypeCode)
	description := inv.Description()

	rows := make([]models.Row, 0, len(allocations))
	for k, alloc := range allocations {
		rows = append(rows, models.Row{
			GroupID:        groupID,
			RowIndex:       k + 1,
			IsGroupHead:    alloc.IsHead,
			FileName:       inv.FileName,
			SupplierName:   inv.SupplierName,
			CustomerName:   inv.CustomerName,
			DocumentNumber: number,
			DocumentDate:   inv.DocumentDate,
			DueDate:        alloc.DueDate,
			Taxable:        alloc.Taxable,
			VAT:            alloc.VAT,
			Total:          alloc.Total,
			Cassa:          alloc.Cassa,
			Withholding:    alloc.Withholding,
			Description:    alloc.DescriptionPrefix + description,
			PaymentMethod:  lookup.PaymentMethodLabel(alloc.MethodCode),
			DocumentType:   docType,
			IsCreditNote:   creditNote,
			IsInstallment:  alloc.IsInstallment,
		})
	}
	return rows
}
