package household

import (
	"context"
	"testing"
	"time"

	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest() (*HouseholdServiceImpl, *donation.StubDonationRepo, context.Context) {
	donationRepo := donation.NewStubDonationRepo()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := NewHouseholdService(NewStubHouseholdRepo(), donationRepo, clock)
	return service, donationRepo, context.Background()
}

func TestHouseholdServiceImpl_Create(t *testing.T) {
	service, _, ctx := setupServiceTest()

	payload, err := service.Create(ctx, "", 50000)

	require.NoError(t, err)
	assert.NotEmpty(t, payload.Household.ID)
	assert.Equal(t, 50000, payload.Household.AnnualIncome)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), payload.Household.CreatedAt)
	assert.Empty(t, payload.Donations)
}

func TestHouseholdServiceImpl_CreateClampsNegativeIncome(t *testing.T) {
	service, _, ctx := setupServiceTest()

	payload, err := service.Create(ctx, "", -100)

	require.NoError(t, err)
	assert.Equal(t, 0, payload.Household.AnnualIncome)
}

func TestHouseholdServiceImpl_GetIncludesDonations(t *testing.T) {
	service, donationRepo, ctx := setupServiceTest()
	created, err := service.Create(ctx, "our family", 50000)
	require.NoError(t, err)

	require.NoError(t, donationRepo.Store(ctx, donation.Donation{
		ID:           "don-1",
		HouseholdID:  created.Household.ID,
		CharityName:  "Sea Shepherd",
		Amount:       100,
		Frequency:    donation.FrequencyMonthly,
		AnnualAmount: 1200,
		CreatedAt:    time.Now(),
	}))

	payload, err := service.Get(ctx, created.Household.ID)

	require.NoError(t, err)
	assert.Equal(t, "our family", payload.Household.Alias)
	require.Len(t, payload.Donations, 1)
	assert.Equal(t, "Sea Shepherd", payload.Donations[0].CharityName)
}

func TestHouseholdServiceImpl_GetUnknownID(t *testing.T) {
	service, _, ctx := setupServiceTest()

	_, err := service.Get(ctx, "missing")

	assert.ErrorIs(t, err, ErrHouseholdNotFound)
}

func TestHouseholdServiceImpl_UpdateIncome(t *testing.T) {
	service, _, ctx := setupServiceTest()
	created, err := service.Create(ctx, "", 50000)
	require.NoError(t, err)

	payload, err := service.UpdateIncome(ctx, created.Household.ID, 60000)

	require.NoError(t, err)
	assert.Equal(t, 60000, payload.Household.AnnualIncome)
}

func TestHouseholdServiceImpl_UpdateIncomeUnknownID(t *testing.T) {
	service, _, ctx := setupServiceTest()

	_, err := service.UpdateIncome(ctx, "missing", 60000)

	assert.ErrorIs(t, err, ErrHouseholdNotFound)
}
