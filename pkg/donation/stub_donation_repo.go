package donation

import (
	"context"
	"sort"
)

type StubDonationRepo struct {
	data map[string]Donation
}

func NewStubDonationRepo() *StubDonationRepo {
	return &StubDonationRepo{data: map[string]Donation{}}
}

func (s *StubDonationRepo) Store(ctx context.Context, d Donation) error {
	s.data[d.ID] = d
	return nil
}

func (s *StubDonationRepo) ListByHousehold(ctx context.Context, householdID string) ([]Donation, error) {
	donations := make([]Donation, 0, len(s.data))
	for _, d := range s.data {
		if d.HouseholdID == householdID {
			donations = append(donations, d)
		}
	}
	sort.Slice(donations, func(i, j int) bool {
		return donations[i].CreatedAt.Before(donations[j].CreatedAt)
	})
	return donations, nil
}

func (s *StubDonationRepo) Update(ctx context.Context, d Donation) (bool, error) {
	existing, ok := s.data[d.ID]
	if !ok || existing.HouseholdID != d.HouseholdID {
		return false, nil
	}
	d.CreatedAt = existing.CreatedAt
	s.data[d.ID] = d
	return true, nil
}

func (s *StubDonationRepo) Delete(ctx context.Context, householdID string, donationID string) (bool, error) {
	existing, ok := s.data[donationID]
	if !ok || existing.HouseholdID != householdID {
		return false, nil
	}
	delete(s.data, donationID)
	return true, nil
}

func (s *StubDonationRepo) Cleanup() {
	s.data = map[string]Donation{}
}
