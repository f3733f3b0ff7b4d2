package app

import (
	"database/sql"

	"github.com/mindthegap/mindthegap/internal/config"
	"github.com/mindthegap/mindthegap/internal/utils"
	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/mindthegap/mindthegap/pkg/giving"
	"github.com/mindthegap/mindthegap/pkg/household"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	HouseholdRepo    household.HouseholdRepo
	HouseholdService household.HouseholdService
	HouseholdHandler *household.HouseholdHandler

	DonationRepo    donation.DonationRepo
	DonationService donation.DonationService
	DonationHandler *donation.DonationHandler

	GivingService giving.GivingService
	GivingHandler *giving.GivingHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.DonationRepo = donation.NewDonationRepo(db)
	deps.DonationService = donation.NewDonationService(deps.DonationRepo, deps.Clock)
	deps.DonationHandler = donation.NewDonationHandler(deps.DonationService)

	deps.HouseholdRepo = household.NewHouseholdRepo(db)
	deps.HouseholdService = household.NewHouseholdService(deps.HouseholdRepo, deps.DonationRepo, deps.Clock)
	deps.HouseholdHandler = household.NewHouseholdHandler(deps.HouseholdService)

	deps.GivingService = giving.NewGivingService(deps.HouseholdService)
	deps.GivingHandler = giving.NewGivingHandler(deps.GivingService)

	return deps
}
