package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []models.Row {
	return []models.Row{
		{
			GroupID: "g1", RowIndex: 1, IsGroupHead: true,
			CustomerName: "METANIA", SupplierName: "Studio Tecnico Verdi",
			DocumentNumber: "12", DocumentDate: "2024-03-15", DueDate: "2024-04-30",
			Description: "Consulenza\nTecnica MARZO",
			Taxable:     decimal.RequireFromString("1000"), VAT: decimal.RequireFromString("228.80"),
			Cassa: decimal.RequireFromString("40"), Withholding: decimal.RequireFromString("200"),
			Total: decimal.RequireFromString("1268.80"), PaymentMethod: "Bonifico", DocumentType: "Fattura",
		},
		{
			GroupID: "g2", RowIndex: 1, IsGroupHead: true,
			CustomerName: "SV", SupplierName: "Società Elettrica",
			DocumentNumber: "NC 3", DocumentDate: "2024-02-01", DueDate: models.NotAvailable,
			Description: "Storno",
			Taxable:     decimal.RequireFromString("200"), VAT: decimal.RequireFromString("44"),
			Cassa: decimal.Zero, Withholding: decimal.Zero,
			Total: decimal.RequireFromString("244"), PaymentMethod: "Bonifico", DocumentType: "Nota di Credito",
			IsCreditNote: true,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{" TSV ", FormatTSV, false},
		{"Xlsx", FormatXLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatXLSX, FormatFromPath("out/Fatture.XLSX", FormatCSV))
	assert.Equal(t, FormatTSV, FormatFromPath("a.tsv", FormatCSV))
	assert.Equal(t, FormatCSV, FormatFromPath("a.csv", FormatXLSX))
	assert.Equal(t, FormatXLSX, FormatFromPath("noext", FormatXLSX))
}

func TestNewRecord(t *testing.T) {
	rows := sampleRows()

	rec := NewRecord(rows[0], "")
	assert.Equal(t, "15/03/2024", rec.Date)
	assert.Equal(t, "30/04/2024", rec.DueDate)
	assert.Equal(t, "Consulenza Tecnica MARZO", rec.Description)
	assert.Equal(t, "1000,00", rec.Taxable)
	assert.Equal(t, "228,80", rec.VAT)
	assert.Equal(t, "1268,80", rec.Total)

	rec = NewRecord(rows[1], "")
	assert.Equal(t, "", rec.DueDate)
	assert.Equal(t, "", rec.Cassa)
	assert.Equal(t, "", rec.Withholding)
}

func TestClipboard(t *testing.T) {
	e := NewExporter(DefaultOptions(), logging.NewMockLogger())

	text, err := e.Clipboard(sampleRows())
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"METANIA\tStudio Tecnico Verdi\t12\t15/03/2024\t30/04/2024\tconsulenza tecnica marzo\t1000,00\t228,80\t40,00\t200,00",
		lines[0])
	assert.Equal(t, "SV\tSocietà Elettrica\tNC 3\t01/02/2024\t\tstorno\t200,00\t44,00\t\t", lines[1])
}

func TestClipboard_KeepsQuotesVerbatim(t *testing.T) {
	rows := sampleRows()[1:]
	rows[0].Description = "Fornitura \"Luce\tGas\""

	text, err := NewExporter(DefaultOptions(), nil).Clipboard(rows)
	require.NoError(t, err)
	assert.Equal(t, "SV\tSocietà Elettrica\tNC 3\t01/02/2024\t\tfornitura \"luce gas\"\t200,00\t44,00\t\t", text)
}

func TestClipboard_Empty(t *testing.T) {
	text, err := NewExporter(DefaultOptions(), nil).Clipboard(nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestWrite_CSV(t *testing.T) {
	opts := DefaultOptions()
	opts.Delimiter = ';'
	e := NewExporter(opts, logging.NewMockLogger())

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, sampleRows(), FormatCSV))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Cliente;Fornitore;Numero;Data;Scadenza;Descrizione;Imponibile;IVA;Cassa;Ritenuta;Totale;Pagamento;Tipo", lines[0])
	assert.Equal(t, "SV;Società Elettrica;NC 3;01/02/2024;;Storno;200,00;44,00;;;244,00;Bonifico;Nota di Credito", lines[2])
}

func TestWrite_TSVWithoutHeaders(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeHeaders = false
	e := NewExporter(opts, logging.NewMockLogger())

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, sampleRows()[:1], FormatTSV))

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	require.Len(t, fields, 13)
	assert.Equal(t, "METANIA", fields[0])
	assert.Equal(t, "Fattura", fields[12])
}

func TestWrite_Windows1252(t *testing.T) {
	opts := DefaultOptions()
	opts.Encoding = EncodingWindows1252
	e := NewExporter(opts, logging.NewMockLogger())

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, sampleRows()[1:], FormatCSV))

	assert.True(t, bytes.Contains(buf.Bytes(), []byte("Societ\xe0 Elettrica")))
	assert.False(t, bytes.Contains(buf.Bytes(), []byte("Società")))
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewExporter(DefaultOptions(), nil).Write(&buf, sampleRows(), Format("pdf")))
}

func TestWrite_XLSX(t *testing.T) {
	e := NewExporter(DefaultOptions(), logging.NewMockLogger())
	rows := sampleRows()
	rows = append(rows, models.Row{
		GroupID: "g3", RowIndex: 2, CustomerName: "DO", DocumentNumber: "7",
		Taxable: decimal.RequireFromString("50"), Total: decimal.RequireFromString("61"),
		IsInstallment: true,
	})

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, rows, FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, SheetName, f.GetSheetName(0))

	header, err := f.GetCellValue(SheetName, "G1")
	require.NoError(t, err)
	assert.Equal(t, "Imponibile", header)

	customer, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "SV", customer)

	cellType, err := f.GetCellType(SheetName, "G2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)

	raw, err := f.GetCellValue(SheetName, "G2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1000", raw)

	cassa, err := f.GetCellValue(SheetName, "I3")
	require.NoError(t, err)
	assert.Empty(t, cassa)

	plain := cellStyle(t, f, "A2")
	credit := cellStyle(t, f, "A3")
	installment := cellStyle(t, f, "B4")
	assert.NotEqual(t, plain, credit)
	assert.NotEqual(t, plain, installment)
	assert.NotEqual(t, credit, installment)
	assert.Equal(t, credit, cellStyle(t, f, "M3"))
	assert.NotEqual(t, credit, cellStyle(t, f, "K3"))
	assert.Equal(t, cellStyle(t, f, "G3"), cellStyle(t, f, "K3"))
}

func cellStyle(t *testing.T, f *excelize.File, cell string) int {
	t.Helper()
	id, err := f.GetCellStyle(SheetName, cell)
	require.NoError(t, err)
	return id
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	mock := logging.NewMockLogger()

	require.NoError(t, NewExporter(DefaultOptions(), mock).WriteFile(path, sampleRows(), FormatCSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Cliente,Fornitore"))
	assert.True(t, mock.HasEntry("INFO", "Writing export file"))
}

func TestContentType(t *testing.T) {
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Contains(t, FormatCSV.ContentType(), "text/csv")
	assert.Contains(t, FormatTSV.ContentType(), "tab-separated")
}
