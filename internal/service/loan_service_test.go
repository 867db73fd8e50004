package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/testutil"
)

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }
}

func TestCreateLoan_RecordsDisbursement(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	svc := NewLoanService(st, zerolog.Nop())

	loan, err := svc.CreateLoan(CreateLoanInput{
		BorrowerID: b.ID,
		Amount:     testutil.Amount(t, "10000"),
		LoanDate:   testutil.Date(2024, 1, 1),
		ReturnDate: testutil.Date(2025, 1, 1),
		Type:       domain.LoanTypeFixed,
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}

	payments := st.Snapshot().PaymentsByLoan(loan.ID)
	if len(payments) != 1 {
		t.Fatalf("expected 1 disbursement payment, got %d", len(payments))
	}
	if payments[0].Type != domain.PaymentTypeDisbursement {
		t.Errorf("payment type = %q", payments[0].Type)
	}

	balance, err := svc.Balance(loan.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Equal(testutil.Amount(t, "10000")) {
		t.Errorf("balance = %s, want 10000 (disbursement does not reduce it)", balance)
	}
}

func TestCreateLoan_RejectsBlacklistedBorrower(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	st.AddBlacklistEntry(&domain.BlacklistEntry{
		Type: domain.BlacklistBorrower, PersonID: b.ID, Active: true, BlockedAt: time.Now(),
	})
	svc := NewLoanService(st, zerolog.Nop())

	_, err := svc.CreateLoan(CreateLoanInput{
		BorrowerID: b.ID,
		Amount:     testutil.Amount(t, "100"),
		LoanDate:   testutil.Date(2024, 1, 1),
		ReturnDate: testutil.Date(2025, 1, 1),
		Type:       domain.LoanTypeFixed,
	})
	if !errors.Is(err, domain.ErrState) {
		t.Errorf("got %v, want state error", err)
	}
}

func TestAddRepayment_ExactBalanceCompletesLoan(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	loan := testutil.AddLoan(t, st, b.ID, "1000", testutil.Date(2024, 1, 1))
	svc := NewLoanService(st, zerolog.Nop())
	svc.now = fixedNow(2024, 6, 1)

	_, err := svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: testutil.Amount(t, "400"),
		Date:   testutil.Date(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("partial repayment: %v", err)
	}
	if loan.Status != domain.LoanStatusActive {
		t.Errorf("status after partial = %q, want active", loan.Status)
	}

	_, err = svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: testutil.Amount(t, "600"),
		Date:   testutil.Date(2024, 4, 1),
	})
	if err != nil {
		t.Fatalf("final repayment: %v", err)
	}

	balance, _ := svc.Balance(loan.ID)
	if !balance.IsZero() {
		t.Errorf("balance = %s, want 0", balance)
	}
	if loan.Status != domain.LoanStatusCompleted {
		t.Errorf("status = %q, want completed", loan.Status)
	}
}

func TestAddRepayment_RejectsOverpayment(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	loan := testutil.AddLoan(t, st, b.ID, "1000", testutil.Date(2024, 1, 1))
	svc := NewLoanService(st, zerolog.Nop())
	svc.now = fixedNow(2024, 6, 1)

	_, err := svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: testutil.Amount(t, "1000.01"),
		Date:   testutil.Date(2024, 3, 1),
	})
	if !errors.Is(err, domain.ErrAmountExceedsBalance) {
		t.Errorf("got %v, want ErrAmountExceedsBalance", err)
	}
	if n := len(st.Snapshot().PaymentsByLoan(loan.ID)); n != 1 {
		t.Errorf("payment count = %d, want 1 (no partial state on rejection)", n)
	}

	_, err = svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: decimal.Zero,
		Date:   testutil.Date(2024, 3, 1),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero amount: got %v, want validation error", err)
	}
}

func TestAddRepayment_FutureLoanNotPayable(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	loan := testutil.AddLoan(t, st, b.ID, "1000", testutil.Date(2030, 1, 1))
	svc := NewLoanService(st, zerolog.Nop())
	svc.now = fixedNow(2024, 6, 1)

	_, err := svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: testutil.Amount(t, "100"),
		Date:   testutil.Date(2024, 6, 1),
	})
	if !errors.Is(err, domain.ErrState) {
		t.Errorf("got %v, want state error", err)
	}
}

func TestBalanceAsOf_HistoricalReceipt(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	loan := testutil.AddLoan(t, st, b.ID, "1000", testutil.Date(2024, 1, 1))
	svc := NewLoanService(st, zerolog.Nop())
	svc.now = fixedNow(2024, 6, 1)

	first, err := svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: testutil.Amount(t, "100"),
		Date:   testutil.Date(2024, 2, 1),
	})
	if err != nil {
		t.Fatalf("first repayment: %v", err)
	}
	second, err := svc.AddRepayment(loan.ID, AddRepaymentInput{
		Amount: testutil.Amount(t, "200"),
		Date:   testutil.Date(2024, 2, 1),
	})
	if err != nil {
		t.Fatalf("second repayment: %v", err)
	}

	got, err := svc.BalanceAsOf(first.ID)
	if err != nil {
		t.Fatalf("balance as of first: %v", err)
	}
	if !got.Equal(testutil.Amount(t, "900")) {
		t.Errorf("as of first same-date payment = %s, want 900", got)
	}
	got, _ = svc.BalanceAsOf(second.ID)
	if !got.Equal(testutil.Amount(t, "700")) {
		t.Errorf("as of second same-date payment = %s, want 700", got)
	}
}

func TestDeleteBorrower_BlockedByLiveLoan(t *testing.T) {
	st := testutil.NewStore(t)
	b := testutil.AddBorrower(t, st, "Levi")
	testutil.AddLoan(t, st, b.ID, "1000", testutil.Date(2024, 1, 1))
	svc := NewBorrowerService(st, zerolog.Nop())

	if err := svc.DeleteBorrower(b.ID); !errors.Is(err, domain.ErrBorrowerHasActiveLoans) {
		t.Errorf("got %v, want ErrBorrowerHasActiveLoans", err)
	}
}
