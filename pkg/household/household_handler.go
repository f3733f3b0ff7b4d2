package household

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mindthegap/mindthegap/internal/rest"
	"github.com/mindthegap/mindthegap/pkg/donation"
	log "github.com/sirupsen/logrus"
)

// HouseholdDTO mirrors the wire shape of a persisted household record.
type HouseholdDTO struct {
	ID           string  `json:"id"`
	Alias        *string `json:"alias"`
	AnnualIncome int     `json:"annual_income"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// PayloadDTO is the canonical response of every household endpoint.
type PayloadDTO struct {
	Household HouseholdDTO           `json:"household"`
	Donations []donation.DonationDTO `json:"donations"`
}

type HouseholdHandler struct {
	householdService HouseholdService
}

func NewHouseholdHandler(householdService HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{householdService}
}

func (handler *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing id parameter")
		return
	}

	payload, err := handler.householdService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHouseholdNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Household not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Fetching by id adopts the record as the active session.
	SetSessionCookie(w, payload.Household.ID)
	rest.WriteJSON(w, http.StatusOK, PayloadToDTO(payload))
}

func (handler *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new household")

	var req struct {
		Alias        string `json:"alias"`
		AnnualIncome int    `json:"annualIncome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := handler.householdService.Create(r.Context(), req.Alias, req.AnnualIncome)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	SetSessionCookie(w, payload.Household.ID)
	rest.WriteJSON(w, http.StatusCreated, PayloadToDTO(payload))
}

func (handler *HouseholdHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID           string `json:"id"`
		AnnualIncome *int   `json:"annualIncome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" || req.AnnualIncome == nil || *req.AnnualIncome < 0 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	payload, err := handler.householdService.UpdateIncome(r.Context(), req.ID, *req.AnnualIncome)
	if err != nil {
		if errors.Is(err, ErrHouseholdNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Household not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, PayloadToDTO(payload))
}

func HouseholdToDTO(h Household) HouseholdDTO {
	var alias *string
	if h.Alias != "" {
		alias = &h.Alias
	}
	return HouseholdDTO{
		ID:           h.ID,
		Alias:        alias,
		AnnualIncome: h.AnnualIncome,
		CreatedAt:    h.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    h.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func PayloadToDTO(p Payload) PayloadDTO {
	return PayloadDTO{
		Household: HouseholdToDTO(p.Household),
		Donations: donation.ToDTOs(p.Donations),
	}
}
