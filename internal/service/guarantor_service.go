package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// GuarantorService manages guarantors, their derived exposure fields and
// the blacklist.
type GuarantorService struct {
	store *store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewGuarantorService(st *store.Store, log zerolog.Logger) *GuarantorService {
	return &GuarantorService{store: st, log: log, now: time.Now}
}

type GuarantorInput struct {
	Name       string
	NationalID string
	Phone      string
	Notes      string
}

func (s *GuarantorService) CreateGuarantor(settings config.Settings, input GuarantorInput) (*domain.Guarantor, error) {
	g := &domain.Guarantor{
		Name:       strings.TrimSpace(input.Name),
		NationalID: input.NationalID,
		Phone:      input.Phone,
		Status:     domain.GuarantorStatusActive,
		Notes:      input.Notes,
	}
	if err := g.Validate(settings.RequireNationalID); err != nil {
		return nil, err
	}
	for _, other := range s.store.Snapshot().Guarantors {
		if strings.EqualFold(other.Name, g.Name) {
			return nil, domain.ErrDuplicateName
		}
		if g.NationalID != "" && other.NationalID == g.NationalID {
			return nil, domain.ErrDuplicateNationalID
		}
	}

	s.store.AddGuarantor(g)
	if err := s.store.Save(); err != nil {
		return g, fmt.Errorf("persist guarantor: %w", err)
	}
	s.log.Info().Int64("guarantor", g.ID).Str("name", g.Name).Msg("guarantor created")
	return g, nil
}

func (s *GuarantorService) UpdateGuarantor(settings config.Settings, id int64, input GuarantorInput) (*domain.Guarantor, error) {
	g := s.store.Snapshot().GuarantorByID(id)
	if g == nil {
		return nil, domain.ErrGuarantorNotFound
	}
	updated := *g
	updated.Name = strings.TrimSpace(input.Name)
	updated.NationalID = input.NationalID
	updated.Phone = input.Phone
	updated.Notes = input.Notes
	if err := updated.Validate(settings.RequireNationalID); err != nil {
		return nil, err
	}

	*g = updated
	s.store.UpdateGuarantor(g)
	if err := s.store.Save(); err != nil {
		return g, fmt.Errorf("persist guarantor: %w", err)
	}
	return g, nil
}

// DeleteGuarantor removes a guarantor that carries no live debt.
func (s *GuarantorService) DeleteGuarantor(id int64) error {
	snap := s.store.Snapshot()
	if snap.GuarantorByID(id) == nil {
		return domain.ErrGuarantorNotFound
	}
	count, _ := domain.GuarantorExposure(id, snap.GuarantorDebts, snap.Payments)
	if count > 0 {
		return fmt.Errorf("%w: guarantor carries live debts", domain.ErrState)
	}
	s.store.DeleteGuarantor(id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist guarantor delete: %w", err)
	}
	return nil
}

// RefreshDerivedFields recomputes every guarantor's active-guarantee count
// and total risk from the live debts. Called after any mutation touching
// guarantor debts; callers persist afterwards.
func (s *GuarantorService) RefreshDerivedFields() {
	snap := s.store.Snapshot()
	for _, g := range snap.Guarantors {
		count, total := domain.GuarantorExposure(g.ID, snap.GuarantorDebts, snap.Payments)
		g.ActiveGuarantees = count
		g.TotalRisk = total
	}
}

// Blacklist adds an active blacklist entry for a person. A second active
// entry for the same person is a conflict.
func (s *GuarantorService) Blacklist(t domain.BlacklistType, personID int64, reason string) (*domain.BlacklistEntry, error) {
	snap := s.store.Snapshot()
	switch t {
	case domain.BlacklistBorrower:
		if snap.BorrowerByID(personID) == nil {
			return nil, domain.ErrBorrowerNotFound
		}
	case domain.BlacklistGuarantor:
		if snap.GuarantorByID(personID) == nil {
			return nil, domain.ErrGuarantorNotFound
		}
	default:
		return nil, fmt.Errorf("%w: unknown blacklist type %q", domain.ErrValidation, t)
	}
	if snap.ActiveBlacklistEntry(t, personID) != nil {
		return nil, domain.ErrAlreadyBlocked
	}

	entry := s.addBlacklistEntry(t, personID, reason)
	if err := s.store.Save(); err != nil {
		return entry, fmt.Errorf("persist blacklist entry: %w", err)
	}
	s.log.Warn().
		Str("type", string(t)).
		Int64("person", personID).
		Str("reason", reason).
		Msg("person blacklisted")
	return entry, nil
}

// addBlacklistEntry applies the blacklist mutation without persisting; the
// transfer protocol reuses it inside its own save.
func (s *GuarantorService) addBlacklistEntry(t domain.BlacklistType, personID int64, reason string) *domain.BlacklistEntry {
	entry := &domain.BlacklistEntry{
		Type:      t,
		PersonID:  personID,
		Reason:    reason,
		BlockedAt: s.now(),
		Active:    true,
	}
	s.store.AddBlacklistEntry(entry)
	if t == domain.BlacklistGuarantor {
		if g := s.store.Snapshot().GuarantorByID(personID); g != nil {
			g.Status = domain.GuarantorStatusBlacklisted
			s.store.UpdateGuarantor(g)
		}
	}
	return entry
}

// Unblock deactivates the person's active blacklist entry.
func (s *GuarantorService) Unblock(t domain.BlacklistType, personID int64) error {
	snap := s.store.Snapshot()
	entry := snap.ActiveBlacklistEntry(t, personID)
	if entry == nil {
		return fmt.Errorf("%w: no active blacklist entry", domain.ErrNotFound)
	}
	now := s.now()
	entry.Active = false
	entry.UnblockedAt = &now
	if t == domain.BlacklistGuarantor {
		if g := snap.GuarantorByID(personID); g != nil {
			g.Status = domain.GuarantorStatusActive
			s.store.UpdateGuarantor(g)
		}
	}
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist unblock: %w", err)
	}
	s.log.Info().Str("type", string(t)).Int64("person", personID).Msg("person unblocked")
	return nil
}
