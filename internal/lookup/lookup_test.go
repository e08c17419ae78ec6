package lookup

import (
	"sync"
	"testing"

	"fjacquet/fattura-csv/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"MP01", "Contanti"},
		{"MP05", "Bonifico"},
		{"MP12", "RIBA"},
		{"MP19", "SEPA"},
		{"MP20", "SEPA"},
		{"MP23", "PagoPA"},
		{"MP99", "MP99"},
		{" MP05 ", "Bonifico"},
		{"", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentMethodLabel(tt.code))
		})
	}
}

func TestDocumentTypeLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"TD01", "Fattura"},
		{"TD02", "Acconto/Anticipo"},
		{"TD04", "Nota di Credito"},
		{"TD06", "Parcella"},
		{"TD24", "Fattura"},
		{"TD17", "TD17"},
		{"", "Altro"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentTypeLabel(tt.code))
		})
	}
}

func TestNormalizer_DefaultTable(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"metania anywhere", "Società Agricola Metania S.r.l.", "METANIA"},
		{"cerada alias", "cerada srl", "METANIA"},
		{"valorizzazione", "Consorzio per la VALORIZZAZIONE del territorio", "VA"},
		{"doiola", "Azienda Doiola", "DO"},
		{"coste", "Le Coste snc", "Coste"},
		{"san vittore", "Parrocchia di San Vittore", "SV"},
		{"accent insensitive", "Cerâda S.p.A.", "METANIA"},
		{"first match wins", "Valorizzazione Metania", "VA"},
		{"unmatched keeps case", "  Mario Rossi  ", "Mario Rossi"},
		{"empty", "   ", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizer_CustomTable(t *testing.T) {
	n := NewNormalizer([]models.CustomerAlias{
		{Canonical: "ACME", Patterns: []string{"acme", ""}},
	})

	assert.Equal(t, "ACME", n.Normalize("Acme Italia"))
	assert.Equal(t, "Metania srl", n.Normalize("Metania srl"), "custom table replaces the default one")
}

func TestNormalizer_ConcurrentReads(t *testing.T) {
	n := NewNormalizer(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "SV", n.Normalize("san vittore"))
		}()
	}
	wg.Wait()
}

func TestDefaultAliasesIsACopy(t *testing.T) {
	a := DefaultAliases()
	a[0].Canonical = "changed"
	assert.Equal(t, "VA", DefaultAliases()[0].Canonical)
}

func TestModelsPlaceholders(t *testing.T) {
	assert.Equal(t, models.NotAvailable, PaymentMethodLabel(""))
	assert.Equal(t, models.OtherDocument, DocumentTypeLabel(""))
}
