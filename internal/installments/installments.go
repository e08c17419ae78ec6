// Package installments spreads the reconciled totals of a document over its
// payment schedule.
package installments

import (
	"fmt"

	"fjacquet/fattura-csv/internal/currencyutils"
	"fjacquet/fattura-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Amounts is the money carried by one allocation.
type Amounts struct {
	Taxable decimal.Decimal
	VAT     decimal.Decimal
	Cassa   decimal.Decimal
	Total   decimal.Decimal
}

// Allocation is the share of a document assigned to one output row.
type Allocation struct {
	Amounts

	Index             int
	Count             int
	DueDate           string
	MethodCode        string
	Withholding       decimal.Decimal
	DescriptionPrefix string
	IsHead            bool
	IsInstallment     bool
}

// Split returns one allocation for a credit note or a document with at most
// one payment entry, and one allocation per entry otherwise. Only the first
// allocation is the head; it alone carries the withholding.
// Without a main VAT rate the last allocation takes whatever the earlier,
// cent-rounded ones left of taxable, VAT and cassa.
func Split(inv *models.Invoice, totals models.Totals) []Allocation {
	withholding := inv.Withholding
	if inv.IsCreditNote() {
		withholding = withholding.Abs()
	}

	count := len(inv.PaymentDetails)
	if inv.IsCreditNote() || count <= 1 {
		return []Allocation{{
			Amounts: Amounts{
				Taxable: totals.Taxable,
				VAT:     totals.VAT,
				Cassa:   totals.Cassa,
				Total:   totals.Total,
			},
			Count:       1,
			DueDate:     inv.DueDate(),
			MethodCode:  inv.PaymentMethodCode,
			Withholding: withholding,
			IsHead:      true,
		}}
	}

	proportional := !totals.MainVATRate.IsPositive() && !totals.Total.IsZero()
	var assigned Amounts

	allocations := make([]Allocation, 0, count)
	for k, entry := range inv.PaymentDetails {
		gross := decimal.Zero
		if entry.Amount != nil {
			gross = *entry.Amount
		}

		amounts := Allocate(gross, totals)
		if k > 0 && totals.Total.IsZero() && !totals.MainVATRate.IsPositive() {
			amounts = Amounts{Taxable: decimal.Zero, VAT: decimal.Zero, Cassa: decimal.Zero, Total: gross}
		}
		if proportional && k == count-1 {
			// last entry absorbs the rounding leftovers
			amounts.Taxable = totals.Taxable.Sub(assigned.Taxable)
			amounts.VAT = totals.VAT.Sub(assigned.VAT)
			amounts.Cassa = totals.Cassa.Sub(assigned.Cassa)
		}
		assigned.Taxable = assigned.Taxable.Add(amounts.Taxable)
		assigned.VAT = assigned.VAT.Add(amounts.VAT)
		assigned.Cassa = assigned.Cassa.Add(amounts.Cassa)

		method := entry.MethodCode
		if method == "" {
			method = inv.PaymentMethodCode
		}

		a := Allocation{
			Amounts:           amounts,
			Index:             k,
			Count:             count,
			DueDate:           models.InferDueDate(entry.DueDate, method, inv.DocumentDate),
			MethodCode:        method,
			Withholding:       decimal.Zero,
			DescriptionPrefix: fmt.Sprintf("%d/%d ", k+1, count),
			IsHead:            k == 0,
			IsInstallment:     true,
		}
		if a.IsHead {
			a.Withholding = withholding
		}
		allocations = append(allocations, a)
	}
	return allocations
}

// Allocate computes the share of one installment of gross amount g. With a
// positive main VAT rate the taxable part is derived from g by scorporo and
// no cassa is assigned. Otherwise taxable, VAT and cassa are scaled by
// g / total; a zero total assigns the whole document to the installment.
// The allocation total is always g.
func Allocate(g decimal.Decimal, totals models.Totals) Amounts {
	if totals.MainVATRate.IsPositive() {
		taxable := currencyutils.AmountExcludingTax(g, totals.MainVATRate)
		return Amounts{
			Taxable: taxable,
			VAT:     g.Sub(taxable),
			Cassa:   decimal.Zero,
			Total:   g,
		}
	}

	if totals.Total.IsZero() {
		return Amounts{
			Taxable: totals.Taxable,
			VAT:     totals.VAT,
			Cassa:   totals.Cassa,
			Total:   g,
		}
	}

	scale := func(v decimal.Decimal) decimal.Decimal {
		return currencyutils.Round2(v.Mul(g).Div(totals.Total))
	}
	return Amounts{
		Taxable: scale(totals.Taxable),
		VAT:     scale(totals.VAT),
		Cassa:   scale(totals.Cassa),
		Total:   g,
	}
}
