package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance functions are pure: they derive every balance from the entity's
// transaction history and are the only source of truth for it. Stored
// balance-like fields are display projections, never inputs.

// LoanBalance returns loan amount minus all linked repayments. Payments
// allocated to a guarantor debt settle that debt, not the loan, so a
// transferred loan stays frozen at its transfer value.
func LoanBalance(loan *Loan, payments []*Payment) decimal.Decimal {
	b := loan.Amount
	for _, p := range payments {
		if p.LoanID == loan.ID && p.Type == PaymentTypeRepayment && p.GuarantorDebtID == 0 {
			b = b.Sub(p.Amount)
		}
	}
	return Cents(b)
}

// LoanBalanceAsOf returns the balance right after the given payment was
// applied: all repayments dated before it count, and repayments on the same
// date count when their insertion id is not greater. Supports historical
// receipts.
func LoanBalanceAsOf(loan *Loan, payments []*Payment, at *Payment) decimal.Decimal {
	b := loan.Amount
	for _, p := range payments {
		if p.LoanID != loan.ID || p.Type != PaymentTypeRepayment || p.GuarantorDebtID != 0 {
			continue
		}
		if p.Date.Before(at.Date) || (p.Date.Equal(at.Date) && p.ID <= at.ID) {
			b = b.Sub(p.Amount)
		}
	}
	return Cents(b)
}

// ValidateRepayment rejects non-positive amounts and amounts that would
// drive the balance negative.
func ValidateRepayment(amount, balance decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(balance) {
		return ErrAmountExceedsBalance
	}
	return nil
}

// DepositBalance returns deposit amount minus all linked withdrawals.
// Recurring templates never carry a balance.
func DepositBalance(dep *Deposit, withdrawals []*Withdrawal) decimal.Decimal {
	if dep.IsRecurring {
		return decimal.Zero
	}
	b := dep.Amount
	for _, w := range withdrawals {
		if w.DepositID == dep.ID {
			b = b.Sub(w.Amount)
		}
	}
	return Cents(b)
}

// DebtBalance returns the guarantor debt's fixed amount minus all payments
// linked to it.
func DebtBalance(debt *GuarantorDebt, payments []*Payment) decimal.Decimal {
	b := debt.Amount
	for _, p := range payments {
		if p.GuarantorDebtID == debt.ID {
			b = b.Sub(p.Amount)
		}
	}
	return Cents(b)
}

// GuarantorExposure sums the live (non-paid) debt balances carried by one
// guarantor and counts them. Feeds the guarantor's derived fields.
func GuarantorExposure(guarantorID int64, debts []*GuarantorDebt, payments []*Payment) (count int, total decimal.Decimal) {
	total = decimal.Zero
	for _, d := range debts {
		if d.GuarantorID != guarantorID || d.Status == DebtStatusPaid {
			continue
		}
		count++
		total = total.Add(DebtBalance(d, payments))
	}
	return count, Cents(total)
}

// Today truncates a time to its calendar date in the local zone. All ledger
// date comparisons go through date-only values.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
