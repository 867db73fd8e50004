package domain

import "github.com/shopspring/decimal"

// SplitTolerance is the maximum allowed gap between a guarantor split total
// and the loan balance it covers, in currency units.
var SplitTolerance = decimal.New(1, -2) // 0.01

// Cents rounds an amount to two decimal places, the resolution of every
// monetary value in the ledger.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether a and b differ by at most SplitTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(SplitTolerance)
}
