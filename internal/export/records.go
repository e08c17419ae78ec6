package export

import (
	"strings"

	"fjacquet/fattura-csv/internal/currencyutils"
	"fjacquet/fattura-csv/internal/dateutils"
	"fjacquet/fattura-csv/internal/models"
)

// Record is one line of the full table export.
type Record struct {
	Customer      string `csv:"Cliente"`
	Supplier      string `csv:"Fornitore"`
	Number        string `csv:"Numero"`
	Date          string `csv:"Data"`
	DueDate       string `csv:"Scadenza"`
	Description   string `csv:"Descrizione"`
	Taxable       string `csv:"Imponibile"`
	VAT           string `csv:"IVA"`
	Cassa         string `csv:"Cassa"`
	Withholding   string `csv:"Ritenuta"`
	Total         string `csv:"Totale"`
	PaymentMethod string `csv:"Pagamento"`
	DocumentType  string `csv:"Tipo"`
}

// ClipboardRecord is the reduced line pasted into spreadsheets: no total,
// payment method or document type.
type ClipboardRecord struct {
	Customer    string
	Supplier    string
	Number      string
	Date        string
	DueDate     string
	Description string
	Taxable     string
	VAT         string
	Cassa       string
	Withholding string
}

var tabs = strings.NewReplacer("\t", " ")

// Line joins the fields with tabs. Fields are never quoted; tabs inside a
// field become spaces.
func (r ClipboardRecord) Line() string {
	fields := []string{
		r.Customer, r.Supplier, r.Number, r.Date, r.DueDate,
		r.Description, r.Taxable, r.VAT, r.Cassa, r.Withholding,
	}
	for i, f := range fields {
		fields[i] = tabs.Replace(f)
	}
	return strings.Join(fields, "\t")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// SingleLine replaces line breaks with spaces.
func SingleLine(s string) string {
	return lineBreaks.Replace(s)
}

// formatDate renders an ISO date; "N/A" renders empty.
func formatDate(date, layout string) string {
	if date == models.NotAvailable {
		return ""
	}
	return dateutils.FormatDate(date, layout)
}

// NewRecord formats a row for the full table.
func NewRecord(r models.Row, dateLayout string) Record {
	return Record{
		Customer:      r.CustomerName,
		Supplier:      r.SupplierName,
		Number:        r.DocumentNumber,
		Date:          formatDate(r.DocumentDate, dateLayout),
		DueDate:       formatDate(r.DueDate, dateLayout),
		Description:   SingleLine(r.Description),
		Taxable:       currencyutils.FormatItalian(r.Taxable),
		VAT:           currencyutils.FormatItalian(r.VAT),
		Cassa:         currencyutils.FormatItalian(r.Cassa),
		Withholding:   currencyutils.FormatItalian(r.Withholding),
		Total:         currencyutils.FormatItalian(r.Total),
		PaymentMethod: r.PaymentMethod,
		DocumentType:  r.DocumentType,
	}
}

// NewClipboardRecord formats a row for the clipboard; the description is
// lowercased.
func NewClipboardRecord(r models.Row, dateLayout string) ClipboardRecord {
	return ClipboardRecord{
		Customer:    r.CustomerName,
		Supplier:    r.SupplierName,
		Number:      r.DocumentNumber,
		Date:        formatDate(r.DocumentDate, dateLayout),
		DueDate:     formatDate(r.DueDate, dateLayout),
		Description: strings.ToLower(SingleLine(r.Description)),
		Taxable:     currencyutils.FormatItalian(r.Taxable),
		VAT:         currencyutils.FormatItalian(r.VAT),
		Cassa:       currencyutils.FormatItalian(r.Cassa),
		Withholding: currencyutils.FormatItalian(r.Withholding),
	}
}
