// Package lookup maps FatturaPA codes to display labels and customer names
// to their canonical short form. All tables are read-only after construction
// and safe for concurrent use.
package lookup

import (
	"strings"

	"fjacquet/fattura-csv/internal/models"
)

var paymentMethods = map[string]string{
	"MP01": "Contanti",
	"MP02": "Assegno",
	"MP03": "Assegno circ.",
	"MP04": "Contanti Tesoreria",
	"MP05": "Bonifico",
	"MP08": "Carta credito",
	"MP12": "RIBA",
	"MP16": "Domiciliazione",
	"MP18": "Bollettino",
	"MP19": "SEPA",
	"MP20": "SEPA",
	"MP21": "SEPA",
	"MP23": "PagoPA",
}

var documentTypes = map[string]string{
	"TD01": "Fattura",
	"TD02": "Acconto/Anticipo",
	"TD03": "Acconto/Anticipo",
	"TD04": "Nota di Credito",
	"TD05": "Nota di Debito",
	"TD06": "Parcella",
	"TD08": "Nota di Credito",
	"TD24": "Fattura",
}

// PaymentMethodLabel returns the label of a ModalitaPagamento code. Unknown
// codes are their own label; an empty code is "N/A".
func PaymentMethodLabel(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := paymentMethods[code]; ok {
		return label
	}
	if code == "" {
		return models.NotAvailable
	}
	return code
}

// DocumentTypeLabel returns the label of a TipoDocumento code. Unknown codes
// are their own label; an empty code is "Altro".
func DocumentTypeLabel(code string) string {
	code = strings.TrimSpace(code)
	if label, ok := documentTypes[code]; ok {
		return label
	}
	if code == "" {
		return models.OtherDocument
	}
	return code
}
