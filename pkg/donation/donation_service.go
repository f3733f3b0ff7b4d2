package donation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mindthegap/mindthegap/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrDonationNotFound = errors.New("donation not found")

type DonationService interface {
	List(ctx context.Context, householdID string) ([]Donation, error)
	// Create stores a new donation and returns the household's full donation list.
	Create(ctx context.Context, householdID string, fields Fields) ([]Donation, error)
	// Update rewrites a donation and returns the household's full donation list.
	Update(ctx context.Context, donationID string, householdID string, fields Fields) ([]Donation, error)
	Delete(ctx context.Context, householdID string, donationID string) (bool, error)
}

type DonationServiceImpl struct {
	repo  DonationRepo
	clock utils.Clock
}

func NewDonationService(repo DonationRepo, clock utils.Clock) *DonationServiceImpl {
	return &DonationServiceImpl{repo: repo, clock: clock}
}

func (s *DonationServiceImpl) List(ctx context.Context, householdID string) ([]Donation, error) {
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *DonationServiceImpl) Create(ctx context.Context, householdID string, fields Fields) ([]Donation, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	d := Donation{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		CharityName: fields.CharityName,
		Amount:      fields.Amount,
		Frequency:   fields.Frequency,
		// The annual amount is derived here, never taken from the client.
		AnnualAmount: Annualize(fields.Amount, fields.Frequency),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Store(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to store donation: %w", err)
	}
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *DonationServiceImpl) Update(ctx context.Context, donationID string, householdID string, fields Fields) ([]Donation, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	d := Donation{
		ID:           donationID,
		HouseholdID:  householdID,
		CharityName:  fields.CharityName,
		Amount:       fields.Amount,
		Frequency:    fields.Frequency,
		AnnualAmount: Annualize(fields.Amount, fields.Frequency),
	}
	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}
	if !updated {
		log.Warnf("donation not updated, probably because it does not exist (%s) or belongs to another household (%s)", donationID, householdID)
		return nil, ErrDonationNotFound
	}
	return s.repo.ListByHousehold(ctx, householdID)
}

func (s *DonationServiceImpl) Delete(ctx context.Context, householdID string, donationID string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, householdID, donationID)
	if err != nil {
		return false, fmt.Errorf("failed to delete donation: %w", err)
	}
	if !deleted {
		log.Warnf("donation not deleted, probably because it does not exist (%s) or belongs to another household (%s)", donationID, householdID)
	}
	return deleted, nil
}
