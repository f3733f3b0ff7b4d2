package household

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindthegap/mindthegap/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepoTest(t *testing.T) (*HouseholdRepoImpl, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewHouseholdRepo(db), context.Background()
}

func testHousehold(alias string) Household {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return Household{
		ID:           uuid.NewString(),
		Alias:        alias,
		AnnualIncome: 50000,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestHouseholdRepoImpl_StoreAndFind(t *testing.T) {
	repo, ctx := setupRepoTest(t)
	h := testHousehold("our family")

	require.NoError(t, repo.Store(ctx, h))

	found, err := repo.FindByID(ctx, h.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, h, *found)
}

func TestHouseholdRepoImpl_StoreWithoutAlias(t *testing.T) {
	repo, ctx := setupRepoTest(t)
	h := testHousehold("")

	require.NoError(t, repo.Store(ctx, h))

	found, err := repo.FindByID(ctx, h.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Empty(t, found.Alias)
}

func TestHouseholdRepoImpl_FindUnknownID(t *testing.T) {
	repo, ctx := setupRepoTest(t)

	found, err := repo.FindByID(ctx, uuid.NewString())

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestHouseholdRepoImpl_UpdateIncome(t *testing.T) {
	repo, ctx := setupRepoTest(t)
	h := testHousehold("our family")
	require.NoError(t, repo.Store(ctx, h))

	updatedAt := h.UpdatedAt.Add(time.Hour)
	updated, err := repo.UpdateIncome(ctx, h.ID, 60000, updatedAt)

	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindByID(ctx, h.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 60000, found.AnnualIncome)
	assert.Equal(t, updatedAt, found.UpdatedAt)
	assert.Equal(t, h.CreatedAt, found.CreatedAt)
}

func TestHouseholdRepoImpl_UpdateIncomeUnknownID(t *testing.T) {
	repo, ctx := setupRepoTest(t)

	updated, err := repo.UpdateIncome(ctx, uuid.NewString(), 60000, time.Now())

	require.NoError(t, err)
	assert.False(t, updated)
}
