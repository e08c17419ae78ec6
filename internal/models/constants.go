package models

// FatturaPA document type codes
const (
	DocTypeInvoice              = "TD01"
	DocTypeCreditNote           = "TD04"
	DocTypeSimplifiedCreditNote = "TD08"
)

// FatturaPA payment method codes
const (
	PaymentCash         = "MP01"
	PaymentBankTransfer = "MP05"
)

// Placeholders used when a field is absent
const (
	NotAvailable  = "N/A"
	OtherDocument = "Altro"
)

// File permissions
const (
	PermissionDirectory  = 0o750
	PermissionReportFile = 0o644
)

// IsCreditNoteType reports whether a document type code denotes a credit
// note, whose amounts are carried with inverted sign.
func IsCreditNoteType(code string) bool {
	return code == DocTypeCreditNote || code == DocTypeSimplifiedCreditNote
}
