package giving

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/mindthegap/mindthegap/pkg/household"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*GivingHandler, string) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	donationRepo := donation.NewStubDonationRepo()
	householdService := household.NewHouseholdService(household.NewStubHouseholdRepo(), donationRepo, clock)
	handler := NewGivingHandler(NewGivingService(householdService))

	ctx := context.Background()
	payload, err := householdService.Create(ctx, "", 50000)
	require.NoError(t, err)

	donationService := donation.NewDonationService(donationRepo, clock)
	_, err = donationService.Create(ctx, payload.Household.ID, donation.Fields{
		CharityName: "Sea Shepherd",
		Amount:      100,
		Frequency:   donation.FrequencyMonthly,
	})
	require.NoError(t, err)

	return handler, payload.Household.ID
}

func TestGivingHandler_GetSummary(t *testing.T) {
	handler, householdID := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary?householdId="+householdID, nil)
	w := httptest.NewRecorder()
	handler.GetSummary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var summary SummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, 50000, summary.AnnualIncome)
	assert.Equal(t, 1200, summary.TotalAnnual)
	assert.InDelta(t, 2.4, summary.Percentage, 0.0001)
	require.Len(t, summary.Shares, 1)
	assert.InDelta(t, 100.0, summary.Shares[0].Percent, 0.0001)
	require.Len(t, summary.IncomePie, 2)
	assert.Equal(t, 48800, summary.IncomePie[1].Value)
	// Three projected billionaires plus the household itself.
	require.Len(t, summary.Comparison, 4)
	assert.True(t, summary.Comparison[3].Self)
}

func TestGivingHandler_GetSummaryMissingHouseholdId(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()
	handler.GetSummary(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGivingHandler_GetSummaryUnknownHousehold(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary?householdId=missing", nil)
	w := httptest.NewRecorder()
	handler.GetSummary(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
