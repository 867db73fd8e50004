package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Donation struct {
	ID        int64           `json:"id"`
	DonorName string          `json:"donorName"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    PaymentMethod   `json:"method"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (d *Donation) Validate() error {
	if strings.TrimSpace(d.DonorName) == "" {
		return ErrNameRequired
	}
	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	return d.Method.Validate()
}
