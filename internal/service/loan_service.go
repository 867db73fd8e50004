package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// LoanService handles loan lifecycle and the repayment ledger.
type LoanService struct {
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewLoanService(st *store.Store, log zerolog.Logger) *LoanService {
	return &LoanService{store: st, log: log, now: time.Now}
}

// CreateLoanInput contains input for issuing a loan.
type CreateLoanInput struct {
	BorrowerID int64
	Amount     decimal.Decimal
	LoanDate   time.Time
	ReturnDate time.Time
	Type       domain.LoanType
	Recurring  *domain.RecurringLoanPlan
	AutoPay    *domain.AutoPayment
	Method     domain.PaymentMethod
	Notes      string
}

// CreateLoan issues a loan and records its disbursement in the loan's
// payment ledger. Blacklisted borrowers are refused.
func (s *LoanService) CreateLoan(input CreateLoanInput) (*domain.Loan, error) {
	snap := s.store.Snapshot()
	if snap.BorrowerByID(input.BorrowerID) == nil {
		return nil, domain.ErrBorrowerNotFound
	}
	if snap.ActiveBlacklistEntry(domain.BlacklistBorrower, input.BorrowerID) != nil {
		return nil, fmt.Errorf("%w: borrower is blacklisted", domain.ErrState)
	}

	loan := &domain.Loan{
		BorrowerID: input.BorrowerID,
		Amount:     domain.Cents(input.Amount),
		LoanDate:   domain.Today(input.LoanDate),
		ReturnDate: input.ReturnDate,
		Type:       input.Type,
		Recurring:  input.Recurring,
		AutoPay:    input.AutoPay,
		Status:     domain.LoanStatusActive,
		Notes:      input.Notes,
	}
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	method := input.Method
	if method.Kind == "" {
		method = domain.CashPayment()
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}

	s.store.AddLoan(loan)
	s.store.AddPayment(&domain.Payment{
		LoanID: loan.ID,
		Amount: loan.Amount,
		Date:   loan.LoanDate,
		Type:   domain.PaymentTypeDisbursement,
		Method: method,
	})
	if err := s.store.Save(); err != nil {
		return loan, fmt.Errorf("persist loan: %w", err)
	}
	s.log.Info().
		Int64("loan", loan.ID).
		Int64("borrower", loan.BorrowerID).
		Str("amount", loan.Amount.String()).
		Msg("loan created")
	return loan, nil
}

// UpdateLoanInput carries the editable fields of a loan.
type UpdateLoanInput struct {
	ReturnDate time.Time
	Status     domain.LoanStatus
	AutoPay    *domain.AutoPayment
	Notes      string
}

// UpdateLoan edits non-ledger fields. Amount and dates that anchor the
// payment history are immutable; transferred loans are frozen entirely.
func (s *LoanService) UpdateLoan(id int64, input UpdateLoanInput) (*domain.Loan, error) {
	loan := s.store.Snapshot().LoanByID(id)
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	if loan.TransferredToGuarantors {
		return nil, domain.ErrLoanAlreadyTransferred
	}
	switch input.Status {
	case domain.LoanStatusActive, domain.LoanStatusCompleted, domain.LoanStatusOverdue, domain.LoanStatusReminderSent:
	default:
		return nil, fmt.Errorf("%w: unknown loan status %q", domain.ErrValidation, input.Status)
	}
	if input.AutoPay != nil {
		if input.AutoPay.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		if input.AutoPay.DayOfMonth < 1 || input.AutoPay.DayOfMonth > 31 {
			return nil, domain.ErrInvalidDueDay
		}
	}

	loan.ReturnDate = input.ReturnDate
	loan.Status = input.Status
	loan.AutoPay = input.AutoPay
	loan.Notes = input.Notes
	s.store.UpdateLoan(loan)
	if err := s.store.Save(); err != nil {
		return loan, fmt.Errorf("persist loan: %w", err)
	}
	return loan, nil
}

// DeleteLoan removes a loan and its payment ledger. Transferred loans stay:
// their guarantor debts reference them.
func (s *LoanService) DeleteLoan(id int64) error {
	loan := s.store.Snapshot().LoanByID(id)
	if loan == nil {
		return domain.ErrLoanNotFound
	}
	if loan.TransferredToGuarantors {
		return domain.ErrLoanAlreadyTransferred
	}
	s.store.DeleteLoan(id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist loan delete: %w", err)
	}
	s.log.Info().Int64("loan", id).Msg("loan deleted")
	return nil
}

// Balance returns the loan's current balance from its payment history.
func (s *LoanService) Balance(id int64) (decimal.Decimal, error) {
	snap := s.store.Snapshot()
	loan := snap.LoanByID(id)
	if loan == nil {
		return decimal.Decimal{}, domain.ErrLoanNotFound
	}
	return domain.LoanBalance(loan, snap.Payments), nil
}

// AddRepaymentInput contains input for recording a repayment.
type AddRepaymentInput struct {
	Amount decimal.Decimal
	Date   time.Time
	Method domain.PaymentMethod
}

// AddRepayment records a repayment against a payable loan. Paying the exact
// remaining balance completes the loan.
func (s *LoanService) AddRepayment(loanID int64, input AddRepaymentInput) (*domain.Payment, error) {
	snap := s.store.Snapshot()
	loan := snap.LoanByID(loanID)
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	if loan.TransferredToGuarantors {
		return nil, domain.ErrLoanAlreadyTransferred
	}
	if !loan.IsPayable(domain.Today(s.now())) && loan.Status != domain.LoanStatusOverdue && loan.Status != domain.LoanStatusReminderSent {
		return nil, fmt.Errorf("%w: loan is not payable", domain.ErrState)
	}

	amount := domain.Cents(input.Amount)
	balance := domain.LoanBalance(loan, snap.Payments)
	if err := domain.ValidateRepayment(amount, balance); err != nil {
		return nil, err
	}
	method := input.Method
	if method.Kind == "" {
		method = domain.CashPayment()
	}
	payment := &domain.Payment{
		LoanID: loanID,
		Amount: amount,
		Date:   domain.Today(input.Date),
		Type:   domain.PaymentTypeRepayment,
		Method: method,
		PaidBy: domain.PayerBorrower,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	s.store.AddPayment(payment)
	if balance.Sub(amount).IsZero() {
		loan.Status = domain.LoanStatusCompleted
		s.store.UpdateLoan(loan)
	}
	if err := s.store.Save(); err != nil {
		return payment, fmt.Errorf("persist repayment: %w", err)
	}
	s.log.Info().
		Int64("loan", loanID).
		Str("amount", amount.String()).
		Str("balance", balance.Sub(amount).String()).
		Msg("repayment recorded")
	return payment, nil
}

// BalanceAsOf returns the loan balance right after the given payment, for
// historical receipts.
func (s *LoanService) BalanceAsOf(paymentID int64) (decimal.Decimal, error) {
	snap := s.store.Snapshot()
	var at *domain.Payment
	for _, p := range snap.Payments {
		if p.ID == paymentID {
			at = p
			break
		}
	}
	if at == nil {
		return decimal.Decimal{}, domain.ErrPaymentNotFound
	}
	loan := snap.LoanByID(at.LoanID)
	if loan == nil {
		return decimal.Decimal{}, domain.ErrLoanNotFound
	}
	return domain.LoanBalanceAsOf(loan, snap.Payments, at), nil
}
