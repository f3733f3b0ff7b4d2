package giving

import (
	"errors"
	"net/http"

	"github.com/mindthegap/mindthegap/internal/rest"
	"github.com/mindthegap/mindthegap/pkg/household"
)

type PieSliceDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type DonationSliceDTO struct {
	Name       string  `json:"name"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type ComparisonEntryDTO struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Color        string  `json:"color"`
	Self         bool    `json:"self,omitempty"`
}

type ShareDTO struct {
	DonationID string  `json:"donationId"`
	Percent    float64 `json:"percent"`
}

type SummaryDTO struct {
	AnnualIncome int                  `json:"annual_income"`
	TotalAnnual  int                  `json:"total_annual"`
	Percentage   float64              `json:"percentage"`
	Shares       []ShareDTO           `json:"shares"`
	IncomePie    []PieSliceDTO        `json:"incomePie"`
	DonationPie  []DonationSliceDTO   `json:"donationPie"`
	Comparison   []ComparisonEntryDTO `json:"comparison"`
}

type GivingHandler struct {
	givingService GivingService
}

func NewGivingHandler(givingService GivingService) *GivingHandler {
	return &GivingHandler{givingService}
}

func (handler *GivingHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	householdID := r.URL.Query().Get("householdId")
	if householdID == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing householdId parameter")
		return
	}

	h, summary, err := handler.givingService.GetSummary(r.Context(), householdID)
	if err != nil {
		if errors.Is(err, household.ErrHouseholdNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Household not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, SummaryToDTO(h.AnnualIncome, summary))
}

func SummaryToDTO(annualIncome int, s Summary) SummaryDTO {
	shares := make([]ShareDTO, 0, len(s.Shares))
	for _, share := range s.Shares {
		shares = append(shares, ShareDTO{DonationID: share.Donation.ID, Percent: share.Percent})
	}
	incomePie := make([]PieSliceDTO, 0, len(s.IncomePie))
	for _, slice := range s.IncomePie {
		incomePie = append(incomePie, PieSliceDTO(slice))
	}
	donationPie := make([]DonationSliceDTO, 0, len(s.DonationPie))
	for _, slice := range s.DonationPie {
		donationPie = append(donationPie, DonationSliceDTO(slice))
	}
	comparison := make([]ComparisonEntryDTO, 0, len(s.Comparison))
	for _, entry := range s.Comparison {
		comparison = append(comparison, ComparisonEntryDTO(entry))
	}
	return SummaryDTO{
		AnnualIncome: annualIncome,
		TotalAnnual:  s.TotalAnnual,
		Percentage:   s.Percentage,
		Shares:       shares,
		IncomePie:    incomePie,
		DonationPie:  donationPie,
		Comparison:   comparison,
	}
}
