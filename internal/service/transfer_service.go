package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// TransferService moves an unpaid loan's balance onto its guarantors and
// reconciles borrower payments that arrive after the transfer.
type TransferService struct {
	store      *store.Store
	guarantors *GuarantorService
	log        zerolog.Logger
	now        func() time.Time
}

func NewTransferService(st *store.Store, guarantors *GuarantorService, log zerolog.Logger) *TransferService {
	return &TransferService{store: st, guarantors: guarantors, log: log, now: time.Now}
}

// TransferInput describes how the loan balance is split and collected.
type TransferInput struct {
	// Split maps guarantor id to the slice of the balance that guarantor
	// covers. The slices must sum to the loan balance within 0.01.
	Split map[int64]decimal.Decimal

	PaymentType domain.DebtPaymentType
	// DueDate applies to single-payment debts.
	DueDate *time.Time
	// InstallmentDueDates applies to installment debts; the per-debt
	// installment amount is the debt amount divided evenly across them.
	InstallmentDueDates []time.Time

	Actor string
	Notes string
}

// Transfer runs the guarantor-debt transfer protocol: validate the split,
// create one debt per guarantor, freeze the loan, and blacklist the
// borrower. The loan's own ledger stops moving from here on; collection
// happens through the debts.
func (s *TransferService) Transfer(loanID int64, input TransferInput) ([]*domain.GuarantorDebt, error) {
	snap := s.store.Snapshot()
	loan := snap.LoanByID(loanID)
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	if loan.TransferredToGuarantors {
		return nil, domain.ErrLoanAlreadyTransferred
	}
	if len(input.Split) == 0 {
		return nil, domain.ErrEmptySplit
	}
	if input.PaymentType != domain.DebtPaymentSingle && input.PaymentType != domain.DebtPaymentInstallments {
		return nil, fmt.Errorf("%w: unknown payment type %q", domain.ErrValidation, input.PaymentType)
	}

	today := domain.Today(s.now())
	if input.PaymentType == domain.DebtPaymentInstallments {
		if len(input.InstallmentDueDates) == 0 {
			return nil, fmt.Errorf("%w: installment schedule is empty", domain.ErrIntegrity)
		}
		for _, due := range input.InstallmentDueDates {
			if domain.Today(due).Before(today) {
				return nil, domain.ErrDueDateInPast
			}
		}
	}

	// Deterministic debt order regardless of map iteration.
	guarantorIDs := make([]int64, 0, len(input.Split))
	for id := range input.Split {
		guarantorIDs = append(guarantorIDs, id)
	}
	sort.Slice(guarantorIDs, func(i, j int) bool { return guarantorIDs[i] < guarantorIDs[j] })

	total := decimal.Zero
	for _, id := range guarantorIDs {
		g := snap.GuarantorByID(id)
		if g == nil {
			return nil, domain.ErrGuarantorNotFound
		}
		if g.Status == domain.GuarantorStatusBlacklisted || snap.ActiveBlacklistEntry(domain.BlacklistGuarantor, id) != nil {
			return nil, domain.ErrGuarantorBlacklisted
		}
		amount := input.Split[id]
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		total = total.Add(amount)
	}

	balance := domain.LoanBalance(loan, snap.Payments)
	if !domain.WithinTolerance(total, balance) {
		return nil, fmt.Errorf("%w: split total %s vs balance %s", domain.ErrSplitMismatch, total, balance)
	}

	// Validation done; apply everything, then persist once.
	debts := make([]*domain.GuarantorDebt, 0, len(guarantorIDs))
	for _, id := range guarantorIDs {
		debt := &domain.GuarantorDebt{
			OriginalLoanID:     loanID,
			GuarantorID:        id,
			OriginalBorrowerID: loan.BorrowerID,
			Amount:             domain.Cents(input.Split[id]),
			TransferDate:       today,
			PaymentType:        input.PaymentType,
			DueDate:            input.DueDate,
			Status:             domain.DebtStatusActive,
		}
		if input.PaymentType == domain.DebtPaymentInstallments {
			debt.Installments = buildInstallments(debt.Amount, input.InstallmentDueDates)
		}
		s.store.AddGuarantorDebt(debt)
		debts = append(debts, debt)

		if g := snap.GuarantorByID(id); g.Status == domain.GuarantorStatusActive {
			g.Status = domain.GuarantorStatusAtRisk
			s.store.UpdateGuarantor(g)
		}
	}

	loan.TransferredToGuarantors = true
	loan.Transfer = &domain.TransferInfo{Date: today, Actor: input.Actor, Notes: input.Notes}
	s.store.UpdateLoan(loan)

	// A borrower with an earlier transfer already carries an active entry.
	if snap.ActiveBlacklistEntry(domain.BlacklistBorrower, loan.BorrowerID) == nil {
		s.guarantors.addBlacklistEntry(domain.BlacklistBorrower, loan.BorrowerID,
			fmt.Sprintf("loan %d transferred to guarantors", loanID))
	}
	s.guarantors.RefreshDerivedFields()

	if err := s.store.Save(); err != nil {
		return debts, fmt.Errorf("persist transfer: %w", err)
	}
	s.log.Warn().
		Int64("loan", loanID).
		Int("guarantors", len(debts)).
		Str("balance", balance.String()).
		Msg("loan transferred to guarantors")
	return debts, nil
}

// buildInstallments divides a debt amount evenly across the due dates; the
// last installment absorbs the rounding remainder so the schedule sums to
// the debt exactly.
func buildInstallments(amount decimal.Decimal, dueDates []time.Time) []domain.Installment {
	n := len(dueDates)
	per := domain.Cents(amount.Div(decimal.NewFromInt(int64(n))))
	out := make([]domain.Installment, n)
	allocated := decimal.Zero
	for i, due := range dueDates {
		a := per
		if i == n-1 {
			a = amount.Sub(allocated)
		}
		out[i] = domain.Installment{Number: i + 1, Amount: a, DueDate: domain.Today(due)}
		allocated = allocated.Add(a)
	}
	return out
}

// HandlePaymentAfterTransfer reconciles a borrower payment made after the
// loan moved to guarantors. The amount is applied to the loan's debts:
// full payoff when it covers everything, an even division when the split
// was equal, otherwise proportional to each debt's original amount. The
// per-debt share is capped at that debt's remaining balance; a capped
// remainder is not redistributed.
func (s *TransferService) HandlePaymentAfterTransfer(loanID int64, amount decimal.Decimal) error {
	snap := s.store.Snapshot()
	loan := snap.LoanByID(loanID)
	if loan == nil {
		return domain.ErrLoanNotFound
	}
	if !loan.TransferredToGuarantors {
		return fmt.Errorf("%w: loan was not transferred", domain.ErrState)
	}
	amount = domain.Cents(amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	debts := snap.DebtsByLoan(loanID)
	if len(debts) == 0 {
		return domain.ErrDebtNotFound
	}

	balances := make(map[int64]decimal.Decimal, len(debts))
	totalBalance := decimal.Zero
	for _, d := range debts {
		b := domain.DebtBalance(d, snap.Payments)
		balances[d.ID] = b
		totalBalance = totalBalance.Add(b)
	}

	today := domain.Today(s.now())
	pay := func(debt *domain.GuarantorDebt, share decimal.Decimal) {
		if share.LessThanOrEqual(decimal.Zero) {
			return
		}
		s.store.AddPayment(&domain.Payment{
			LoanID:          loanID,
			Amount:          share,
			Date:            today,
			Type:            domain.PaymentTypeRepayment,
			Method:          domain.CashPayment(),
			GuarantorDebtID: debt.ID,
			PaidBy:          domain.PayerBorrower,
		})
		if balances[debt.ID].Sub(share).IsZero() {
			debt.Status = domain.DebtStatusPaid
			s.store.UpdateGuarantorDebt(debt)
		}
	}

	switch {
	case amount.GreaterThanOrEqual(totalBalance):
		// Covers everything: zero each debt with its exact balance.
		for _, d := range debts {
			pay(d, balances[d.ID])
		}

	case equalOriginalAmounts(debts):
		// Even shares; the last debt takes the rounding remainder only.
		// A share capped by a low balance is not redistributed.
		n := int64(len(debts))
		share := domain.Cents(amount.Div(decimal.NewFromInt(n)))
		for i, d := range debts {
			a := share
			if int64(i) == n-1 {
				a = amount.Sub(share.Mul(decimal.NewFromInt(n - 1)))
			}
			if a.GreaterThan(balances[d.ID]) {
				a = balances[d.ID]
			}
			pay(d, a)
		}

	default:
		// Proportional to the ORIGINAL amounts, not remaining balances.
		originalTotal := decimal.Zero
		for _, d := range debts {
			originalTotal = originalTotal.Add(d.Amount)
		}
		for _, d := range debts {
			share := domain.Cents(amount.Mul(d.Amount).Div(originalTotal))
			if share.GreaterThan(balances[d.ID]) {
				share = balances[d.ID]
			}
			pay(d, share)
		}
	}

	s.guarantors.RefreshDerivedFields()
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist reconciliation: %w", err)
	}
	s.log.Info().
		Int64("loan", loanID).
		Str("amount", amount.String()).
		Msg("post-transfer borrower payment reconciled")
	return nil
}

// AddDebtPayment records a guarantor paying down their own debt. The debt
// reaching zero is marked paid and the guarantor's exposure is recomputed.
func (s *TransferService) AddDebtPayment(debtID int64, amount decimal.Decimal, method domain.PaymentMethod) (*domain.Payment, error) {
	snap := s.store.Snapshot()
	debt := snap.DebtByID(debtID)
	if debt == nil {
		return nil, domain.ErrDebtNotFound
	}
	if debt.Status == domain.DebtStatusPaid {
		return nil, fmt.Errorf("%w: debt is already paid", domain.ErrState)
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	amount = domain.Cents(amount)
	balance := domain.DebtBalance(debt, snap.Payments)
	if err := domain.ValidateRepayment(amount, balance); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		LoanID:          debt.OriginalLoanID,
		Amount:          amount,
		Date:            domain.Today(s.now()),
		Type:            domain.PaymentTypeRepayment,
		Method:          method,
		GuarantorDebtID: debt.ID,
		PaidBy:          domain.PayerGuarantor,
	}
	s.store.AddPayment(p)
	if balance.Sub(amount).IsZero() {
		debt.Status = domain.DebtStatusPaid
		s.store.UpdateGuarantorDebt(debt)
	}
	s.guarantors.RefreshDerivedFields()
	if err := s.store.Save(); err != nil {
		return p, fmt.Errorf("persist debt payment: %w", err)
	}
	s.log.Info().
		Int64("debt", debtID).
		Int64("guarantor", debt.GuarantorID).
		Str("amount", amount.String()).
		Msg("guarantor debt payment recorded")
	return p, nil
}

func equalOriginalAmounts(debts []*domain.GuarantorDebt) bool {
	for _, d := range debts[1:] {
		if !d.Amount.Equal(debts[0].Amount) {
			return false
		}
	}
	return true
}
