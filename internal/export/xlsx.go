package export

import (
	"fmt"
	"io"

	"fjacquet/fattura-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by the XLSX export.
const SheetName = "Fatture"

// Row fill colours.
const (
	CreditNoteFill  = "FFC7CE"
	InstallmentFill = "DDEBF7"
)

var tableHeaders = []interface{}{
	"Cliente", "Fornitore", "Numero", "Data", "Scadenza", "Descrizione",
	"Imponibile", "IVA", "Cassa", "Ritenuta", "Totale", "Pagamento", "Tipo",
}

// first amount column (Imponibile) and last (Totale), 1-based
const (
	firstAmountCol = 7
	lastAmountCol  = 11
)

type rowStyles struct {
	text   int
	amount int
}

func (e *Exporter) writeXLSX(w io.Writer, rows []models.Row) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("error naming worksheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	plain, err := newRowStyles(f, "")
	if err != nil {
		return err
	}
	credit, err := newRowStyles(f, CreditNoteFill)
	if err != nil {
		return err
	}
	installment, err := newRowStyles(f, InstallmentFill)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetName, "A1", &tableHeaders); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(tableHeaders))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", header); err != nil {
		return fmt.Errorf("error styling header row: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		rec := NewRecord(r, e.opts.DateFormat)
		values := []interface{}{
			rec.Customer, rec.Supplier, rec.Number, rec.Date, rec.DueDate, rec.Description,
			amountCell(r.Taxable), amountCell(r.VAT), amountCell(r.Cassa), amountCell(r.Withholding), amountCell(r.Total),
			rec.PaymentMethod, rec.DocumentType,
		}
		start, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(SheetName, start, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", line, err)
		}

		styles := plain
		switch {
		case r.IsCreditNote:
			styles = credit
		case r.IsInstallment:
			styles = installment
		}
		if err := styleRow(f, line, styles); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "F", "F", 60); err != nil {
		return fmt.Errorf("error sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// amountCell leaves zero amounts blank like the text exports do.
func amountCell(d decimal.Decimal) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.InexactFloat64()
}

func newRowStyles(f *excelize.File, fill string) (rowStyles, error) {
	base := excelize.Style{}
	if fill != "" {
		base.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}

	text, err := f.NewStyle(&base)
	if err != nil {
		return rowStyles{}, fmt.Errorf("error creating row style: %w", err)
	}
	// 4 is the built-in "#,##0.00" format
	base.NumFmt = 4
	amount, err := f.NewStyle(&base)
	if err != nil {
		return rowStyles{}, fmt.Errorf("error creating amount style: %w", err)
	}
	return rowStyles{text: text, amount: amount}, nil
}

func styleRow(f *excelize.File, line int, s rowStyles) error {
	cell := func(col int) string {
		name, _ := excelize.CoordinatesToCellName(col, line)
		return name
	}
	if err := f.SetCellStyle(SheetName, cell(1), cell(len(tableHeaders)), s.text); err != nil {
		return fmt.Errorf("error styling row %d: %w", line, err)
	}
	if err := f.SetCellStyle(SheetName, cell(firstAmountCol), cell(lastAmountCol), s.amount); err != nil {
		return fmt.Errorf("error styling row %d: %w", line, err)
	}
	return nil
}
