package giving

import (
	"context"
	"fmt"

	"github.com/mindthegap/mindthegap/pkg/household"
)

type GivingService interface {
	// GetSummary loads a household and derives its full dashboard dataset.
	GetSummary(ctx context.Context, householdID string) (household.Household, Summary, error)
}

type GivingServiceImpl struct {
	householdService household.HouseholdService
}

func NewGivingService(householdService household.HouseholdService) *GivingServiceImpl {
	return &GivingServiceImpl{householdService: householdService}
}

func (s *GivingServiceImpl) GetSummary(ctx context.Context, householdID string) (household.Household, Summary, error) {
	payload, err := s.householdService.Get(ctx, householdID)
	if err != nil {
		return household.Household{}, Summary{}, fmt.Errorf("failed to load household: %w", err)
	}
	return payload.Household, Aggregate(payload.Household.AnnualIncome, payload.Donations), nil
}
