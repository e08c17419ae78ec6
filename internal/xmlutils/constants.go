// Package xmlutils reads FatturaPA documents into navigable trees and holds
// the path expressions used to query them.
package xmlutils

// FatturaPA groups the path expressions of the FatturaPA vocabulary.
// Header and document-level paths are absolute; body paths are relative to a
// FatturaElettronicaBody node so that every body of a multi-body file can be
// queried on its own.
type FatturaPA struct {
	Body string

	Supplier struct {
		Denominazione string
		Nome          string
		Cognome       string
	}

	Customer struct {
		Denominazione string
		Nome          string
		Cognome       string
	}

	Document struct {
		TypeCode    string
		Number      string
		Date        string
		TotalAmount string
		Causale     string
		Ritenuta    string
		Cassa       string
	}

	Cassa struct {
		Amount      string
		TaxableBase string
	}

	Lines struct {
		Description string
	}

	Summary struct {
		Node    string
		Taxable string
		Tax     string
		Rate    string
		Nature  string
	}

	Payment struct {
		DueDate string
		Detail  string
	}

	PaymentDetail struct {
		DueDate string
		Amount  string
		Method  string
	}
}

// DefaultFatturaPAPaths returns the path expressions for FatturaPA 1.2.x.
func DefaultFatturaPAPaths() FatturaPA {
	f := FatturaPA{}

	f.Body = "//FatturaElettronicaBody"

	const supplier = "//FatturaElettronicaHeader/CedentePrestatore/DatiAnagrafici/Anagrafica/"
	f.Supplier.Denominazione = supplier + "Denominazione"
	f.Supplier.Nome = supplier + "Nome"
	f.Supplier.Cognome = supplier + "Cognome"

	const customer = "//FatturaElettronicaHeader/CessionarioCommittente/DatiAnagrafici/Anagrafica/"
	f.Customer.Denominazione = customer + "Denominazione"
	f.Customer.Nome = customer + "Nome"
	f.Customer.Cognome = customer + "Cognome"

	const doc = "DatiGenerali/DatiGeneraliDocumento/"
	f.Document.TypeCode = doc + "TipoDocumento"
	f.Document.Number = doc + "Numero"
	f.Document.Date = doc + "Data"
	f.Document.TotalAmount = doc + "ImportoTotaleDocumento"
	f.Document.Causale = doc + "Causale"
	f.Document.Ritenuta = doc + "DatiRitenuta/ImportoRitenuta"
	f.Document.Cassa = doc + "DatiCassaPrevidenziale"

	// relative to a DatiCassaPrevidenziale node
	f.Cassa.Amount = "ImportoContributoCassa"
	f.Cassa.TaxableBase = "ImponibileCassa"

	f.Lines.Description = "DatiBeniServizi/DettaglioLinee/Descrizione"

	f.Summary.Node = "DatiBeniServizi/DatiRiepilogo"
	f.Summary.Taxable = "ImponibileImporto"
	f.Summary.Tax = "Imposta"
	f.Summary.Rate = "AliquotaIVA"
	f.Summary.Nature = "Natura"

	f.Payment.DueDate = "DatiPagamento/DataScadenzaPagamento"
	f.Payment.Detail = "DatiPagamento/DettaglioPagamento"

	// relative to a DettaglioPagamento node
	f.PaymentDetail.DueDate = "DataScadenzaPagamento"
	f.PaymentDetail.Amount = "ImportoPagamento"
	f.PaymentDetail.Method = "ModalitaPagamento"

	return f
}
