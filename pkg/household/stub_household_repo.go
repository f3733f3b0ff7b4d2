package household

import (
	"context"
	"time"
)

type StubHouseholdRepo struct {
	data map[string]Household
}

func NewStubHouseholdRepo() *StubHouseholdRepo {
	return &StubHouseholdRepo{data: map[string]Household{}}
}

func (s *StubHouseholdRepo) Store(ctx context.Context, h Household) error {
	s.data[h.ID] = h
	return nil
}

func (s *StubHouseholdRepo) FindByID(ctx context.Context, id string) (*Household, error) {
	h, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (s *StubHouseholdRepo) UpdateIncome(ctx context.Context, id string, annualIncome int, updatedAt time.Time) (bool, error) {
	h, ok := s.data[id]
	if !ok {
		return false, nil
	}
	h.AnnualIncome = annualIncome
	h.UpdatedAt = updatedAt
	s.data[id] = h
	return true, nil
}

func (s *StubHouseholdRepo) Cleanup() {
	s.data = map[string]Household{}
}
