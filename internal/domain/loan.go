package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanType string

const (
	LoanTypeFixed    LoanType = "fixed"
	LoanTypeFlexible LoanType = "flexible"
)

type LoanStatus string

const (
	LoanStatusActive       LoanStatus = "active"
	LoanStatusCompleted    LoanStatus = "completed"
	LoanStatusOverdue      LoanStatus = "overdue"
	LoanStatusReminderSent LoanStatus = "reminder_sent"
)

// RecurringLoanPlan marks a loan as one instance of a monthly series. The
// series is identified by (borrower, amount, day of month); Months is the
// planned number of instances.
type RecurringLoanPlan struct {
	DayOfMonth int `json:"dayOfMonth"`
	Months     int `json:"months"`
}

// AutoPayment holds the standing-order template used when building
// clearing files: the amount charged on DayOfMonth every month.
type AutoPayment struct {
	Amount     decimal.Decimal `json:"amount"`
	DayOfMonth int             `json:"dayOfMonth"`
}

// TransferInfo is recorded once when a loan's balance is moved onto its
// guarantors. The loan itself is frozen from that point on.
type TransferInfo struct {
	Date  time.Time `json:"date"`
	Actor string    `json:"actor"`
	Notes string    `json:"notes,omitempty"`
}

type Loan struct {
	ID         int64           `json:"id"`
	BorrowerID int64           `json:"borrowerId"`
	Amount     decimal.Decimal `json:"amount"`
	LoanDate   time.Time       `json:"loanDate"`
	ReturnDate time.Time       `json:"returnDate"`
	Type       LoanType        `json:"type"`

	Recurring *RecurringLoanPlan `json:"recurring,omitempty"`
	AutoPay   *AutoPayment       `json:"autoPay,omitempty"`

	Status LoanStatus `json:"status"`

	TransferredToGuarantors bool          `json:"transferredToGuarantors"`
	Transfer                *TransferInfo `json:"transfer,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Loan) Validate() error {
	if l.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if l.LoanDate.IsZero() {
		return ErrInvalidDate
	}
	if l.Type != LoanTypeFixed && l.Type != LoanTypeFlexible {
		return ErrInvalidLoanType
	}
	if l.Recurring != nil {
		if l.Recurring.DayOfMonth < 1 || l.Recurring.DayOfMonth > 31 {
			return ErrInvalidDueDay
		}
		if l.Recurring.Months < 1 {
			return ErrInvalidRecurringMonths
		}
	}
	if l.AutoPay != nil {
		if l.AutoPay.Amount.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidAmount
		}
		if l.AutoPay.DayOfMonth < 1 || l.AutoPay.DayOfMonth > 31 {
			return ErrInvalidDueDay
		}
	}
	return nil
}

// IsFuture reports whether the loan is dated after today and not yet payable.
func (l *Loan) IsFuture(today time.Time) bool {
	return l.Status == LoanStatusActive && l.LoanDate.After(today)
}

// IsPayable reports whether repayments may be applied to the loan.
func (l *Loan) IsPayable(today time.Time) bool {
	return l.Status == LoanStatusActive && !l.LoanDate.After(today)
}

// IsLive reports whether the loan still counts against its borrower: any
// status other than completed, unless the balance moved to guarantors.
func (l *Loan) IsLive() bool {
	return l.Status != LoanStatusCompleted && !l.TransferredToGuarantors
}
