package household

import (
	"time"
)

// Household is the top-level record owning an income figure and a donation list.
type Household struct {
	ID    string
	Alias string
	// AnnualIncome is stored in whole euros.
	AnnualIncome int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
