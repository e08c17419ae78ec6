package assembler

import (
	"fmt"
	"testing"

	"fjacquet/fattura-csv/internal/installments"
	"fjacquet/fattura-csv/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("g%d", n)
	}
}

func TestAssemble_SingleRow(t *testing.T) {
	inv := &models.Invoice{
		FileName:         "a.xml",
		SupplierName:     "Studio Bianchi",
		CustomerName:     "METANIA",
		DocumentNumber:   "12",
		DocumentDate:     "2024-03-15",
		DocumentTypeCode: "TD01",
		DescriptionParts: []string{"Consulenza", "marzo"},
	}
	alloc := []installments.Allocation{{
		Amounts:     installments.Amounts{Taxable: d("100"), VAT: d("22"), Cassa: d("0"), Total: d("122")},
		Count:       1,
		DueDate:     "2024-03-31",
		MethodCode:  "MP05",
		Withholding: d("20"),
		IsHead:      true,
	}}

	rows := New(Options{CreditNotePrefix: DefaultCreditNotePrefix, NewID: sequentialIDs()}).Assemble(inv, alloc)
	require.Len(t, rows, 1)
	r := rows[0]

	assert.Equal(t, "g1", r.GroupID)
	assert.Equal(t, 1, r.RowIndex)
	assert.Equal(t, "g1#1", r.Key())
	assert.True(t, r.IsGroupHead)
	assert.False(t, r.IsInstallment)
	assert.False(t, r.IsCreditNote)
	assert.Equal(t, "12", r.DocumentNumber)
	assert.Equal(t, "Consulenza marzo", r.Description)
	assert.Equal(t, "Bonifico", r.PaymentMethod)
	assert.Equal(t, "Fattura", r.DocumentType)
	assert.Equal(t, "2024-03-31", r.DueDate)
	assert.True(t, d("20").Equal(r.Withholding))
	assert.Equal(t, "a.xml", r.FileName)
	assert.Equal(t, "METANIA", r.CustomerName)
}

func TestAssemble_CreditNotePrefix(t *testing.T) {
	inv := &models.Invoice{DocumentNumber: "7", DocumentTypeCode: models.DocTypeCreditNote}
	alloc := []installments.Allocation{{IsHead: true, Count: 1}}

	rows := New(Options{CreditNotePrefix: "NC ", NewID: sequentialIDs()}).Assemble(inv, alloc)
	assert.Equal(t, "NC 7", rows[0].DocumentNumber)
	assert.True(t, rows[0].IsCreditNote)
	assert.Equal(t, "Nota di Credito", rows[0].DocumentType)
	assert.Equal(t, "N/A", rows[0].PaymentMethod)
}

func TestAssemble_Installments(t *testing.T) {
	inv := &models.Invoice{DocumentNumber: "9", DocumentTypeCode: "TD01", Causale: []string{"Lavori"}}
	alloc := []installments.Allocation{
		{Index: 0, Count: 2, IsHead: true, IsInstallment: true, DescriptionPrefix: "1/2 ", MethodCode: "MP12"},
		{Index: 1, Count: 2, IsInstallment: true, DescriptionPrefix: "2/2 ", MethodCode: "MP05"},
	}

	rows := New(Options{NewID: sequentialIDs()}).Assemble(inv, alloc)
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0].GroupID, rows[1].GroupID)
	assert.Equal(t, []int{1, 2}, []int{rows[0].RowIndex, rows[1].RowIndex})
	assert.Equal(t, "1/2 Lavori", rows[0].Description)
	assert.Equal(t, "2/2 Lavori", rows[1].Description)
	assert.Equal(t, "RIBA", rows[0].PaymentMethod)
	assert.Equal(t, "Bonifico", rows[1].PaymentMethod)
	assert.True(t, rows[0].IsGroupHead)
	assert.False(t, rows[1].IsGroupHead)
}

func TestAssemble_FreshGroupPerDocument(t *testing.T) {
	a := New(Options{})
	inv := &models.Invoice{DocumentNumber: "1"}
	alloc := []installments.Allocation{{IsHead: true, Count: 1}}

	first := a.Assemble(inv, alloc)[0].GroupID
	second := a.Assemble(inv, alloc)[0].GroupID
	assert.NotEqual(t, first, second)

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
}
