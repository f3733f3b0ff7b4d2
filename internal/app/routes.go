package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mindthegap/mindthegap/internal/config"
	"github.com/mindthegap/mindthegap/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Health
	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Household
	r.HandleFunc("/api/household", deps.HouseholdHandler.Get).Methods("GET")
	r.HandleFunc("/api/household", deps.HouseholdHandler.Create).Methods("POST")
	r.HandleFunc("/api/household", deps.HouseholdHandler.UpdateIncome).Methods("PUT")

	// Donations
	r.HandleFunc("/api/donations", deps.DonationHandler.List).Methods("GET")
	r.HandleFunc("/api/donations", deps.DonationHandler.Create).Methods("POST")
	r.HandleFunc("/api/donations", deps.DonationHandler.Update).Methods("PUT")
	r.HandleFunc("/api/donations", deps.DonationHandler.Delete).Methods("DELETE")

	// Aggregated giving summary
	r.HandleFunc("/api/summary", deps.GivingHandler.GetSummary).Methods("GET")
}
