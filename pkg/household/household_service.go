package household

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
)

var ErrHouseholdNotFound = errors.New("household not found")

// Payload is the full record a client works with: the household and its donations.
type Payload struct {
	Household Household
	Donations []donation.Donation
}

type HouseholdService interface {
	// Get fetches a household with its donation list. Returns ErrHouseholdNotFound
	// for an unknown identifier.
	Get(ctx context.Context, id string) (Payload, error)
	Create(ctx context.Context, alias string, annualIncome int) (Payload, error)
	// UpdateIncome stores a new income figure and returns the canonical payload.
	UpdateIncome(ctx context.Context, id string, annualIncome int) (Payload, error)
}

type HouseholdServiceImpl struct {
	repo         HouseholdRepo
	donationRepo donation.DonationRepo
	clock        utils.Clock
}

func NewHouseholdService(repo HouseholdRepo, donationRepo donation.DonationRepo, clock utils.Clock) *HouseholdServiceImpl {
	return &HouseholdServiceImpl{repo: repo, donationRepo: donationRepo, clock: clock}
}

func (s *HouseholdServiceImpl) Get(ctx context.Context, id string) (Payload, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to fetch household: %w", err)
	}
	if h == nil {
		return Payload{}, ErrHouseholdNotFound
	}
	donations, err := s.donationRepo.ListByHousehold(ctx, id)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to fetch donations: %w", err)
	}
	return Payload{Household: *h, Donations: donations}, nil
}

func (s *HouseholdServiceImpl) Create(ctx context.Context, alias string, annualIncome int) (Payload, error) {
	if annualIncome < 0 {
		annualIncome = 0
	}
	now := s.clock.Now()
	h := Household{
		ID:           uuid.NewString(),
		Alias:        alias,
		AnnualIncome: annualIncome,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Store(ctx, h); err != nil {
		return Payload{}, fmt.Errorf("failed to store household: %w", err)
	}
	return Payload{Household: h, Donations: []donation.Donation{}}, nil
}

func (s *HouseholdServiceImpl) UpdateIncome(ctx context.Context, id string, annualIncome int) (Payload, error) {
	updated, err := s.repo.UpdateIncome(ctx, id, annualIncome, s.clock.Now())
	if err != nil {
		return Payload{}, fmt.Errorf("failed to update income: %w", err)
	}
	if !updated {
		return Payload{}, ErrHouseholdNotFound
	}
	return s.Get(ctx, id)
}
