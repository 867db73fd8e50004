package domain

import (
	"strings"
	"time"
)

const MaxNameLength = 100

// BankDetails identifies an account at an Israeli bank for clearing-file
// charges. Optional on a borrower until auto-payment is enabled.
type BankDetails struct {
	BankCode   string `json:"bankCode"`
	BranchCode string `json:"branchCode"`
	Account    string `json:"account"`
}

func (b BankDetails) Empty() bool {
	return b.BankCode == "" && b.BranchCode == "" && b.Account == ""
}

type Borrower struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	NationalID string       `json:"nationalId"`
	Phone      string       `json:"phone,omitempty"`
	Bank       *BankDetails `json:"bank,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Validate checks the borrower's own fields. requireNationalID comes from
// the settings flags and is passed explicitly by the caller.
func (b *Borrower) Validate(requireNationalID bool) error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if b.NationalID == "" {
		if requireNationalID {
			return ErrInvalidNationalID
		}
		return nil
	}
	if requireNationalID && !ValidNationalID(b.NationalID) {
		return ErrInvalidNationalID
	}
	return nil
}
