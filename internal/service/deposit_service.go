package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// DepositService handles depositors, deposits and withdrawals.
type DepositService struct {
	store *store.Store
	log   zerolog.Logger
}

func NewDepositService(st *store.Store, log zerolog.Logger) *DepositService {
	return &DepositService{store: st, log: log}
}

// CreateDepositorInput contains input for registering a depositor.
type CreateDepositorInput struct {
	Name       string
	NationalID string
	Phone      string
	Bank       *domain.BankDetails
	Notes      string
}

func (s *DepositService) CreateDepositor(settings config.Settings, input CreateDepositorInput) (*domain.Depositor, error) {
	d := &domain.Depositor{
		Name:       strings.TrimSpace(input.Name),
		NationalID: input.NationalID,
		Phone:      input.Phone,
		Bank:       input.Bank,
		Notes:      input.Notes,
	}
	if err := d.Validate(settings.RequireNationalID); err != nil {
		return nil, err
	}
	for _, other := range s.store.Snapshot().Depositors {
		if strings.EqualFold(other.Name, d.Name) {
			return nil, domain.ErrDuplicateName
		}
	}

	s.store.AddDepositor(d)
	if err := s.store.Save(); err != nil {
		return d, fmt.Errorf("persist depositor: %w", err)
	}
	s.log.Info().Int64("depositor", d.ID).Str("name", d.Name).Msg("depositor created")
	return d, nil
}

func (s *DepositService) UpdateDepositor(settings config.Settings, id int64, input CreateDepositorInput) (*domain.Depositor, error) {
	d := s.store.Snapshot().DepositorByID(id)
	if d == nil {
		return nil, domain.ErrDepositorNotFound
	}
	updated := *d
	updated.Name = strings.TrimSpace(input.Name)
	updated.NationalID = input.NationalID
	updated.Phone = input.Phone
	updated.Bank = input.Bank
	updated.Notes = input.Notes
	if err := updated.Validate(settings.RequireNationalID); err != nil {
		return nil, err
	}

	*d = updated
	s.store.UpdateDepositor(d)
	if err := s.store.Save(); err != nil {
		return d, fmt.Errorf("persist depositor: %w", err)
	}
	return d, nil
}

// DeleteDepositor removes a depositor with no deposits still holding funds.
func (s *DepositService) DeleteDepositor(id int64) error {
	snap := s.store.Snapshot()
	if snap.DepositorByID(id) == nil {
		return domain.ErrDepositorNotFound
	}
	for _, dep := range snap.Deposits {
		if dep.DepositorID != id || dep.IsRecurring {
			continue
		}
		if domain.DepositBalance(dep, snap.Withdrawals).IsPositive() {
			return fmt.Errorf("%w: depositor still holds funds", domain.ErrState)
		}
	}
	s.store.DeleteDepositor(id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist depositor delete: %w", err)
	}
	return nil
}

// CreateDepositInput contains input for a concrete deposit or a recurring
// template.
type CreateDepositInput struct {
	DepositorID  int64
	Amount       decimal.Decimal
	Date         time.Time
	PeriodMonths int
	Method       domain.PaymentMethod

	IsRecurring      bool
	RecurringDay     int
	RecurringEndDate *time.Time

	Notes string
}

func (s *DepositService) CreateDeposit(input CreateDepositInput) (*domain.Deposit, error) {
	if s.store.Snapshot().DepositorByID(input.DepositorID) == nil {
		return nil, domain.ErrDepositorNotFound
	}
	method := input.Method
	if method.Kind == "" {
		method = domain.CashPayment()
	}
	d := &domain.Deposit{
		DepositorID:      input.DepositorID,
		Amount:           domain.Cents(input.Amount),
		Date:             domain.Today(input.Date),
		PeriodMonths:     input.PeriodMonths,
		Method:           method,
		Status:           domain.DepositStatusActive,
		IsRecurring:      input.IsRecurring,
		RecurringDay:     input.RecurringDay,
		RecurringEndDate: input.RecurringEndDate,
		Notes:            input.Notes,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.store.AddDeposit(d)
	if err := s.store.Save(); err != nil {
		return d, fmt.Errorf("persist deposit: %w", err)
	}
	s.log.Info().
		Int64("deposit", d.ID).
		Int64("depositor", d.DepositorID).
		Bool("recurring", d.IsRecurring).
		Msg("deposit created")
	return d, nil
}

// DeleteDeposit removes a deposit and its withdrawals. Templates can always
// be removed; instances only while untouched.
func (s *DepositService) DeleteDeposit(id int64) error {
	snap := s.store.Snapshot()
	d := snap.DepositByID(id)
	if d == nil {
		return domain.ErrDepositNotFound
	}
	if !d.IsRecurring && len(snap.WithdrawalsByDeposit(id)) > 0 {
		return fmt.Errorf("%w: deposit has withdrawals", domain.ErrState)
	}
	s.store.DeleteDeposit(id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist deposit delete: %w", err)
	}
	return nil
}

// WithdrawInput contains input for withdrawing from a concrete deposit.
type WithdrawInput struct {
	Amount decimal.Decimal
	Date   time.Time
	Method domain.PaymentMethod
	Notes  string
}

// Withdraw takes funds out of a deposit, never more than remain in it.
// Withdrawing the exact remainder closes the deposit.
func (s *DepositService) Withdraw(depositID int64, input WithdrawInput) (*domain.Withdrawal, error) {
	snap := s.store.Snapshot()
	d := snap.DepositByID(depositID)
	if d == nil {
		return nil, domain.ErrDepositNotFound
	}
	if d.IsRecurring {
		return nil, domain.ErrRecurringTemplate
	}
	if d.Status == domain.DepositStatusWithdrawn {
		return nil, domain.ErrDepositWithdrawn
	}

	amount := domain.Cents(input.Amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	remaining := domain.DepositBalance(d, snap.Withdrawals)
	if amount.GreaterThan(remaining) {
		return nil, domain.ErrAmountExceedsBalance
	}
	method := input.Method
	if method.Kind == "" {
		method = domain.CashPayment()
	}
	w := &domain.Withdrawal{
		DepositID: depositID,
		Amount:    amount,
		Date:      domain.Today(input.Date),
		Method:    method,
		Notes:     input.Notes,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	s.store.AddWithdrawal(w)
	if remaining.Sub(amount).IsZero() {
		d.Status = domain.DepositStatusWithdrawn
		s.store.UpdateDeposit(d)
	}
	if err := s.store.Save(); err != nil {
		return w, fmt.Errorf("persist withdrawal: %w", err)
	}
	s.log.Info().
		Int64("deposit", depositID).
		Str("amount", amount.String()).
		Msg("withdrawal recorded")
	return w, nil
}

// Balance returns the deposit's remaining amount.
func (s *DepositService) Balance(depositID int64) (decimal.Decimal, error) {
	snap := s.store.Snapshot()
	d := snap.DepositByID(depositID)
	if d == nil {
		return decimal.Decimal{}, domain.ErrDepositNotFound
	}
	if d.IsRecurring {
		return decimal.Decimal{}, domain.ErrRecurringTemplate
	}
	return domain.DepositBalance(d, snap.Withdrawals), nil
}
