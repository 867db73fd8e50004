package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/masav"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// ClearingService builds bank clearing files from a caller-selected set of
// loans and keeps the generated-file history.
type ClearingService struct {
	store *store.Store
	masav config.Masav
	log   zerolog.Logger
	now   func() time.Time
}

func NewClearingService(st *store.Store, masavCfg config.Masav, log zerolog.Logger) *ClearingService {
	return &ClearingService{store: st, masav: masavCfg, log: log, now: time.Now}
}

// BuildFile encodes one charge per selected loan, using the loan's
// auto-payment amount capped at its remaining balance. Any bad record
// aborts the whole build; nothing is stored on failure.
func (s *ClearingService) BuildFile(settings config.Settings, chargeDate time.Time, serial int, loanIDs []int64) (*domain.ClearingFile, error) {
	if !settings.EnableClearing {
		return nil, fmt.Errorf("%w: clearing-file generation is disabled", domain.ErrState)
	}
	snap := s.store.Snapshot()

	var charges []masav.Charge
	total := decimal.Zero
	for _, id := range loanIDs {
		loan := snap.LoanByID(id)
		if loan == nil {
			return nil, domain.ErrLoanNotFound
		}
		borrower := snap.BorrowerByID(loan.BorrowerID)
		if borrower == nil {
			return nil, domain.ErrBorrowerNotFound
		}
		if borrower.Bank == nil || borrower.Bank.Empty() {
			return nil, fmt.Errorf("%w: borrower %d has no bank details", domain.ErrValidation, borrower.ID)
		}
		if loan.AutoPay == nil {
			return nil, fmt.Errorf("%w: loan %d has no auto-payment template", domain.ErrValidation, id)
		}

		amount := loan.AutoPay.Amount
		if balance := domain.LoanBalance(loan, snap.Payments); amount.GreaterThan(balance) {
			amount = balance
		}
		charges = append(charges, masav.Charge{
			BankCode:   borrower.Bank.BankCode,
			BranchCode: borrower.Bank.BranchCode,
			Account:    borrower.Bank.Account,
			NationalID: borrower.NationalID,
			PayeeName:  borrower.Name,
			Amount:     amount,
			Reference:  strconv.FormatInt(loan.ID, 10),
		})
		total = total.Add(amount)
	}

	content, err := masav.Encode(masav.Params{
		InstitutionCode: s.masav.InstitutionCode,
		SenderCode:      s.masav.SenderCode,
		InstitutionName: s.masav.InstitutionName,
		ChargeDate:      domain.Today(chargeDate),
		CreationDate:    domain.Today(s.now()),
		Serial:          serial,
		TypeCode:        masav.TypeDebit,
	}, charges)
	if err != nil {
		return nil, err
	}

	file := &domain.ClearingFile{
		ID:          uuid.NewString(),
		ChargeDate:  domain.Today(chargeDate),
		FileName:    masav.FileName(chargeDate, serial),
		Content:     content,
		RecordCount: len(charges),
		TotalAmount: domain.Cents(total),
		Status:      domain.ClearingStatusPending,
		CreatedAt:   s.now(),
	}
	s.store.AddClearingFile(file)
	if err := s.store.Save(); err != nil {
		return file, fmt.Errorf("persist clearing file: %w", err)
	}
	s.log.Info().
		Str("file", file.FileName).
		Int("records", file.RecordCount).
		Str("total", file.TotalAmount.String()).
		Msg("clearing file built")
	return file, nil
}

// UpdateStatus moves a stored file between pending, confirmed and
// cancelled. Content is immutable history.
func (s *ClearingService) UpdateStatus(id string, status domain.ClearingFileStatus) (*domain.ClearingFile, error) {
	switch status {
	case domain.ClearingStatusPending, domain.ClearingStatusConfirmed, domain.ClearingStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown clearing status %q", domain.ErrValidation, status)
	}
	for _, f := range s.store.Snapshot().ClearingFiles {
		if f.ID == id {
			f.Status = status
			if err := s.store.Save(); err != nil {
				return f, fmt.Errorf("persist clearing status: %w", err)
			}
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: clearing file", domain.ErrNotFound)
}
