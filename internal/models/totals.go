package models

import "github.com/shopspring/decimal"

// CassaSource records where the value of the cassa column came from.
type CassaSource int

const (
	// CassaNone means no contribution and no discount was routed to the column.
	CassaNone CassaSource = iota
	// CassaFromBlock means a declared pension-fund contribution.
	CassaFromBlock
	// CassaFromDiscount means a genuine negative taxable bucket.
	CassaFromDiscount
)

func (s CassaSource) String() string {
	switch s {
	case CassaFromBlock:
		return "cassa_block"
	case CassaFromDiscount:
		return "discount"
	default:
		return "none"
	}
}

// Totals is the reconciled amount set of one document, rounded to cents.
// Discrepancy is Total minus Taxable+VAT+Cassa left after balancing.
type Totals struct {
	Taxable     decimal.Decimal
	VAT         decimal.Decimal
	Cassa       decimal.Decimal
	Total       decimal.Decimal
	MainVATRate decimal.Decimal
	CassaSource CassaSource
	Discrepancy decimal.Decimal
}

// Balanced reports whether no discrepancy was left unresolved.
func (t Totals) Balanced() bool {
	return t.Discrepancy.IsZero()
}
