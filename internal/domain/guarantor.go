package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type GuarantorStatus string

const (
	GuarantorStatusActive      GuarantorStatus = "active"
	GuarantorStatusAtRisk      GuarantorStatus = "at_risk"
	GuarantorStatusBlacklisted GuarantorStatus = "blacklisted"
)

type Guarantor struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	NationalID string          `json:"nationalId,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Status     GuarantorStatus `json:"status"`

	// Derived from live guarantor debts, recomputed after every mutation
	// that touches them. Never edited directly.
	ActiveGuarantees int             `json:"activeGuarantees"`
	TotalRisk        decimal.Decimal `json:"totalRisk"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Guarantor) Validate(requireNationalID bool) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrNameRequired
	}
	if len(strings.TrimSpace(g.Name)) > MaxNameLength {
		return ErrNameTooLong
	}
	if requireNationalID && g.NationalID != "" && !ValidNationalID(g.NationalID) {
		return ErrInvalidNationalID
	}
	return nil
}
