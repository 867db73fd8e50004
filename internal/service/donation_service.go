package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

// DonationService records donations to the fund.
type DonationService struct {
	store *store.Store
	log   zerolog.Logger
}

func NewDonationService(st *store.Store, log zerolog.Logger) *DonationService {
	return &DonationService{store: st, log: log}
}

type DonationInput struct {
	DonorName string
	Amount    decimal.Decimal
	Date      time.Time
	Method    domain.PaymentMethod
	Notes     string
}

func (s *DonationService) CreateDonation(input DonationInput) (*domain.Donation, error) {
	method := input.Method
	if method.Kind == "" {
		method = domain.CashPayment()
	}
	d := &domain.Donation{
		DonorName: strings.TrimSpace(input.DonorName),
		Amount:    domain.Cents(input.Amount),
		Date:      domain.Today(input.Date),
		Method:    method,
		Notes:     input.Notes,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.store.AddDonation(d)
	if err := s.store.Save(); err != nil {
		return d, fmt.Errorf("persist donation: %w", err)
	}
	s.log.Info().Int64("donation", d.ID).Str("amount", d.Amount.String()).Msg("donation recorded")
	return d, nil
}

func (s *DonationService) UpdateDonation(id int64, input DonationInput) (*domain.Donation, error) {
	d := s.store.Snapshot().DonationByID(id)
	if d == nil {
		return nil, domain.ErrDonationNotFound
	}
	updated := *d
	updated.DonorName = strings.TrimSpace(input.DonorName)
	updated.Amount = domain.Cents(input.Amount)
	updated.Date = domain.Today(input.Date)
	if input.Method.Kind != "" {
		updated.Method = input.Method
	}
	updated.Notes = input.Notes
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	*d = updated
	s.store.UpdateDonation(d)
	if err := s.store.Save(); err != nil {
		return d, fmt.Errorf("persist donation: %w", err)
	}
	return d, nil
}

func (s *DonationService) DeleteDonation(id int64) error {
	if s.store.Snapshot().DonationByID(id) == nil {
		return domain.ErrDonationNotFound
	}
	s.store.DeleteDonation(id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("persist donation delete: %w", err)
	}
	return nil
}
