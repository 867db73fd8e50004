package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Depositor struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	NationalID string       `json:"nationalId,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Bank       *BankDetails `json:"bank,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func (d *Depositor) Validate(requireNationalID bool) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if len(strings.TrimSpace(d.Name)) > MaxNameLength {
		return ErrNameTooLong
	}
	if requireNationalID && d.NationalID != "" && !ValidNationalID(d.NationalID) {
		return ErrInvalidNationalID
	}
	return nil
}

type DepositStatus string

const (
	DepositStatusActive    DepositStatus = "active"
	DepositStatusWithdrawn DepositStatus = "withdrawn"
)

// Deposit is either a recurring template (IsRecurring set, never carries a
// balance) or a concrete instance materialized from one. Instances keep the
// series fields so the generator can find the latest instance date.
type Deposit struct {
	ID           int64           `json:"id"`
	DepositorID  int64           `json:"depositorId"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	PeriodMonths int             `json:"periodMonths,omitempty"`
	Method       PaymentMethod   `json:"method"`
	Status       DepositStatus   `json:"status"`

	IsRecurring       bool       `json:"isRecurring"`
	RecurringDay      int        `json:"recurringDay,omitempty"`
	LastRecurringDate *time.Time `json:"lastRecurringDate,omitempty"`
	RecurringEndDate  *time.Time `json:"recurringEndDate,omitempty"`
	// Instances point back at the template that produced them.
	TemplateID int64 `json:"templateId,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Deposit) Validate() error {
	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	if d.IsRecurring {
		if d.RecurringDay < 1 || d.RecurringDay > 31 {
			return ErrInvalidDueDay
		}
	}
	return d.Method.Validate()
}

// Withdrawal belongs to exactly one concrete deposit and never exceeds its
// remaining amount (enforced by the deposit service, not here).
type Withdrawal struct {
	ID        int64           `json:"id"`
	DepositID int64           `json:"depositId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    PaymentMethod   `json:"method"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (w *Withdrawal) Validate() error {
	if w.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if w.Date.IsZero() {
		return ErrInvalidDate
	}
	return w.Method.Validate()
}
