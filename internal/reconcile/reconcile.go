// Package reconcile turns the declared amounts of an invoice into one
// consistent set of totals: taxable base, VAT, cassa and document total.
//
// The cassa column carries either the declared pension-fund contribution or
// a genuine discount bucket (negative taxable summaries). Small negative
// buckets and small differences against the declared total are treated as
// rounding and absorbed into the taxable base; anything larger than
// Options.Tolerance is left visible in Totals.Discrepancy.
package reconcile

import (
	"fjacquet/fattura-csv/internal/currencyutils"
	"fjacquet/fattura-csv/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the largest amount treated as rounding noise.
var DefaultTolerance = decimal.NewFromInt(1)

// Input is the part of an invoice the engine looks at.
type Input struct {
	VATSummaries  []models.VATSummary
	Cassa         *models.CassaBlock
	DeclaredTotal *decimal.Decimal
	IsCreditNote  bool
}

// Options tunes the heuristics.
type Options struct {
	Tolerance decimal.Decimal
}

// DefaultOptions returns the options with DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// InputFromInvoice selects the engine input from an extracted invoice.
func InputFromInvoice(inv *models.Invoice) Input {
	return Input{
		VATSummaries:  inv.VATSummaries,
		Cassa:         inv.Cassa,
		DeclaredTotal: inv.DeclaredTotal,
		IsCreditNote:  inv.IsCreditNote(),
	}
}

type buckets struct {
	taxablePositive decimal.Decimal
	discount        decimal.Decimal
	vat             decimal.Decimal
	mainRate        decimal.Decimal
}

// partition splits the summaries into positive taxable, discount and VAT.
// Credit notes carry negated amounts, so every figure is taken absolute.
func partition(in Input) buckets {
	b := buckets{
		taxablePositive: decimal.Zero,
		discount:        decimal.Zero,
		vat:             decimal.Zero,
		mainRate:        decimal.Zero,
	}

	for _, s := range in.VATSummaries {
		if in.IsCreditNote {
			b.taxablePositive = b.taxablePositive.Add(s.Taxable.Abs())
			b.vat = b.vat.Add(s.Tax.Abs())
			if s.Rate.GreaterThan(b.mainRate) {
				b.mainRate = s.Rate
			}
			continue
		}

		if s.Taxable.IsNegative() {
			b.discount = b.discount.Add(s.Taxable)
		} else {
			b.taxablePositive = b.taxablePositive.Add(s.Taxable)
			if s.Rate.GreaterThan(b.mainRate) {
				b.mainRate = s.Rate
			}
		}
		b.vat = b.vat.Add(s.Tax)
	}
	return b
}

// Reconcile computes the totals of one document. It never fails; a mismatch
// larger than the tolerance is reported through Totals.Discrepancy.
func Reconcile(in Input, opts Options) models.Totals {
	tolerance := opts.Tolerance.Abs()
	b := partition(in)

	base := b.taxablePositive
	cassa := decimal.Zero
	source := models.CassaNone

	contribution := decimal.Zero
	if in.Cassa != nil {
		contribution = in.Cassa.Amount
		if in.IsCreditNote {
			contribution = contribution.Abs()
		}
	}

	genuineDiscount := b.discount.IsNegative() && b.discount.Abs().GreaterThan(tolerance)

	switch {
	case in.Cassa != nil && in.Cassa.TaxableBase != nil:
		base = *in.Cassa.TaxableBase
		if in.IsCreditNote {
			base = base.Abs()
		}
		cassa = contribution
		source = models.CassaFromBlock
	case contribution.IsPositive():
		base = b.taxablePositive.Sub(contribution)
		cassa = contribution
		source = models.CassaFromBlock
	case genuineDiscount:
		cassa = b.discount
		source = models.CassaFromDiscount
	}

	// A rounding residue always lands in the base, and so does a real
	// discount when the column is taken by the contribution.
	if b.discount.IsNegative() && (!genuineDiscount || source == models.CassaFromBlock) {
		base = base.Add(b.discount)
	}

	base = currencyutils.Round2(base)
	vat := currencyutils.Round2(b.vat)
	cassa = currencyutils.Round2(cassa)
	sum := base.Add(vat).Add(cassa)

	total := sum
	if in.DeclaredTotal != nil && !in.DeclaredTotal.IsZero() {
		total = currencyutils.Round2(*in.DeclaredTotal)
	}
	if in.IsCreditNote {
		total = total.Abs()
	}

	discrepancy := total.Sub(sum)
	if !discrepancy.IsZero() && discrepancy.Abs().LessThanOrEqual(tolerance) {
		base = base.Add(discrepancy)
		discrepancy = decimal.Zero
	}

	return models.Totals{
		Taxable:     base,
		VAT:         vat,
		Cassa:       cassa,
		Total:       total,
		MainVATRate: b.mainRate,
		CassaSource: source,
		Discrepancy: discrepancy,
	}
}
