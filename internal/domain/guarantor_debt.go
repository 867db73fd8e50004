package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DebtPaymentType string

const (
	DebtPaymentSingle       DebtPaymentType = "single"
	DebtPaymentInstallments DebtPaymentType = "installments"
)

type DebtStatus string

const (
	DebtStatusActive  DebtStatus = "active"
	DebtStatusPaid    DebtStatus = "paid"
	DebtStatusOverdue DebtStatus = "overdue"
)

// Installment is one scheduled slice of a guarantor debt.
type Installment struct {
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"dueDate"`
}

// GuarantorDebt is created only by the transfer protocol. Amount is fixed at
// creation; only payments linked to the debt change its balance.
type GuarantorDebt struct {
	ID                 int64           `json:"id"`
	OriginalLoanID     int64           `json:"originalLoanId"`
	GuarantorID        int64           `json:"guarantorId"`
	OriginalBorrowerID int64           `json:"originalBorrowerId"`
	Amount             decimal.Decimal `json:"amount"`
	TransferDate       time.Time       `json:"transferDate"`
	PaymentType        DebtPaymentType `json:"paymentType"`
	Installments       []Installment   `json:"installments,omitempty"`
	DueDate            *time.Time      `json:"dueDate,omitempty"`
	Status             DebtStatus      `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// OverdueOn reports whether the debt should be flagged by the overdue
// scanner as of today, given its remaining balance.
func (d *GuarantorDebt) OverdueOn(today time.Time, balance decimal.Decimal) bool {
	if d.Status == DebtStatusPaid {
		return false
	}
	switch d.PaymentType {
	case DebtPaymentSingle:
		return d.DueDate != nil && d.DueDate.Before(today)
	case DebtPaymentInstallments:
		if balance.LessThanOrEqual(decimal.Zero) {
			return false
		}
		for _, inst := range d.Installments {
			if inst.DueDate.Before(today) {
				return true
			}
		}
	}
	return false
}
