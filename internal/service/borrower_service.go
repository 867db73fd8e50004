package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// BorrowerService handles borrower registration and identity rules.
type BorrowerService struct {
	store *store.Store
	log   zerolog.Logger
}

func NewBorrowerService(st *store.Store, log zerolog.Logger) *BorrowerService {
	return &BorrowerService{store: st, log: log}
}

// CreateBorrowerInput contains input for registering a borrower.
type CreateBorrowerInput struct {
	Name       string
	NationalID string
	Phone      string
	Bank       *domain.BankDetails
	Notes      string
}

// CreateBorrower registers a borrower. The national-id requirement comes
// from settings and is passed explicitly per call.
func (s *BorrowerService) CreateBorrower(settings config.Settings, input CreateBorrowerInput) (*domain.Borrower, error) {
	b := &domain.Borrower{
		Name:       strings.TrimSpace(input.Name),
		NationalID: input.NationalID,
		Phone:      input.Phone,
		Bank:       input.Bank,
		Notes:      input.Notes,
	}
	if err := b.Validate(settings.RequireNationalID); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(b.Name, b.NationalID, 0); err != nil {
		return nil, err
	}

	s.store.AddBorrower(b)
	if err := s.store.Save(); err != nil {
		return b, fmt.Errorf("persist borrower: %w", err)
	}
	s.log.Info().Int64("borrower", b.ID).Str("name", b.Name).Msg("borrower created")
	return b, nil
}

// UpdateBorrower replaces the borrower's editable fields.
func (s *BorrowerService) UpdateBorrower(settings config.Settings, id int64, input CreateBorrowerInput) (*domain.Borrower, error) {
	b := s.store.Snapshot().BorrowerByID(id)
	if b == nil {
		return nil, domain.ErrBorrowerNotFound
	}
	updated := *b
	updated.Name = strings.TrimSpace(input.Name)
	updated.NationalID = input.NationalID
	updated.Phone = input.Phone
	updated.Bank = input.Bank
	updated.Notes = input.Notes
	if err := updated.Validate(settings.RequireNationalID); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(updated.Name, updated.NationalID, id); err != nil {
		return nil, err
	}

	*b = updated
	s.store.UpdateBorrower(b)
	if err := s.store.Save(); err != nil {
		return b, fmt.Errorf("persist borrower: %w", err)
	}
	return b, nil
}

// DeleteBorrower removes a borrower that has no live loans.
func (s *BorrowerService) DeleteBorrower(id int64) error {
	snap := s.store.Snapshot()
	if snap.BorrowerByID(id) == nil {
		return domain.ErrBorrowerNotFound
	}
	for _, l := range snap.LoansByBorrower(id) {
		if l.IsLive() {
			return domain.ErrBorrowerHasActiveLoans
		}
	}
	s.store.DeleteBorrower(id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist borrower delete: %w", err)
	}
	s.log.Info().Int64("borrower", id).Msg("borrower deleted")
	return nil
}

// checkConflicts rejects a duplicate name or national id. excludeID skips
// the borrower being updated.
func (s *BorrowerService) checkConflicts(name, nationalID string, excludeID int64) error {
	for _, other := range s.store.Snapshot().Borrowers {
		if other.ID == excludeID {
			continue
		}
		if strings.EqualFold(other.Name, name) {
			return domain.ErrDuplicateName
		}
		if nationalID != "" && other.NationalID == nationalID {
			return domain.ErrDuplicateNationalID
		}
	}
	return nil
}
