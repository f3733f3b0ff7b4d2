package donation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mindthegap/mindthegap/internal/rest"
	log "github.com/sirupsen/logrus"
)

// DonationDTO mirrors the wire shape of a persisted donation record.
type DonationDTO struct {
	ID           string `json:"id"`
	CharityName  string `json:"charity_name"`
	Amount       int    `json:"amount"`
	Frequency    string `json:"frequency"`
	AnnualAmount int    `json:"annual_amount"`
	CreatedAt    string `json:"created_at"`
}

type donationRequest struct {
	ID          string `json:"id,omitempty"`
	HouseholdID string `json:"householdId"`
	CharityName string `json:"charityName"`
	Amount      int    `json:"amount"`
	Frequency   string `json:"frequency"`
}

type donationListResponse struct {
	Donations []DonationDTO `json:"donations"`
}

type DonationHandler struct {
	donationService DonationService
}

func NewDonationHandler(donationService DonationService) *DonationHandler {
	return &DonationHandler{donationService}
}

func (handler *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := r.URL.Query().Get("householdId")
	if householdID == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing householdId parameter")
		return
	}

	donations, err := handler.donationService.List(r.Context(), householdID)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, donationListResponse{Donations: ToDTOs(donations)})
}

func (handler *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new donation")

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.HouseholdID == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	fields, err := fieldsFromRequest(req)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	donations, err := handler.donationService.Create(r.Context(), req.HouseholdID, fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, donationListResponse{Donations: ToDTOs(donations)})
}

func (handler *DonationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" || req.HouseholdID == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	fields, err := fieldsFromRequest(req)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	donations, err := handler.donationService.Update(r.Context(), req.ID, req.HouseholdID, fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, donationListResponse{Donations: ToDTOs(donations)})
}

func (handler *DonationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		HouseholdID string `json:"householdId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" || req.HouseholdID == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	deleted, err := handler.donationService.Delete(r.Context(), req.HouseholdID, req.ID)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, "Donation not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func fieldsFromRequest(req donationRequest) (Fields, error) {
	frequency, err := ParseFrequency(req.Frequency)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		CharityName: req.CharityName,
		Amount:      req.Amount,
		Frequency:   frequency,
	}, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyCharityName),
		errors.Is(err, ErrNonPositiveAmount),
		errors.Is(err, ErrUnsupportedFrequency):
		rest.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDonationNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func ToDTO(d Donation) DonationDTO {
	return DonationDTO{
		ID:           d.ID,
		CharityName:  d.CharityName,
		Amount:       d.Amount,
		Frequency:    string(d.Frequency),
		AnnualAmount: d.AnnualAmount,
		CreatedAt:    d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToDTOs(donations []Donation) []DonationDTO {
	dtos := make([]DonationDTO, 0, len(donations))
	for _, d := range donations {
		dtos = append(dtos, ToDTO(d))
	}
	return dtos
}

func FromDTO(dto DonationDTO) Donation {
	createdAt, _ := time.Parse(time.RFC3339, dto.CreatedAt)
	return Donation{
		ID:           dto.ID,
		CharityName:  dto.CharityName,
		Amount:       dto.Amount,
		Frequency:    Frequency(dto.Frequency),
		AnnualAmount: dto.AnnualAmount,
		CreatedAt:    createdAt,
	}
}

func FromDTOs(dtos []DonationDTO) []Donation {
	donations := make([]Donation, 0, len(dtos))
	for _, dto := range dtos {
		donations = append(donations, FromDTO(dto))
	}
	return donations
}
