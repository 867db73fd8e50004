package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// NewStore opens a store backed by a file in the test's temp dir.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gemach.json")
	st, err := store.Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

// Date builds a calendar date without time-of-day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Amount parses a decimal literal, failing the test on a typo.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return d
}

// AddBorrower registers a borrower directly on the store.
func AddBorrower(t *testing.T, st *store.Store, name string) *domain.Borrower {
	t.Helper()
	b := st.AddBorrower(&domain.Borrower{Name: name, NationalID: "123456782"})
	if err := st.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	return b
}

// AddLoan issues a loan with its disbursement payment, bypassing the
// service layer, for tests that exercise something downstream of it.
func AddLoan(t *testing.T, st *store.Store, borrowerID int64, amount string, loanDate time.Time) *domain.Loan {
	t.Helper()
	l := st.AddLoan(&domain.Loan{
		BorrowerID: borrowerID,
		Amount:     Amount(t, amount),
		LoanDate:   loanDate,
		ReturnDate: loanDate.AddDate(1, 0, 0),
		Type:       domain.LoanTypeFixed,
		Status:     domain.LoanStatusActive,
	})
	st.AddPayment(&domain.Payment{
		LoanID: l.ID,
		Amount: l.Amount,
		Date:   loanDate,
		Type:   domain.PaymentTypeDisbursement,
		Method: domain.CashPayment(),
	})
	if err := st.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	return l
}

// AddGuarantor registers a guarantor directly on the store.
func AddGuarantor(t *testing.T, st *store.Store, name string) *domain.Guarantor {
	t.Helper()
	g := st.AddGuarantor(&domain.Guarantor{
		Name:   name,
		Status: domain.GuarantorStatusActive,
	})
	if err := st.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	return g
}
