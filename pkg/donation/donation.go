package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

var ErrUnsupportedFrequency = errors.New("unsupported frequency")

// ParseFrequency normalizes and validates a frequency string.
func ParseFrequency(value string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(value))) {
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyQuarterly:
		return FrequencyQuarterly, nil
	case FrequencyYearly:
		return FrequencyYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFrequency, value)
	}
}

// Annualize converts a per-period amount to its yearly equivalent.
func Annualize(amount int, frequency Frequency) int {
	switch frequency {
	case FrequencyMonthly:
		return amount * 12
	case FrequencyQuarterly:
		return amount * 4
	default:
		return amount
	}
}

type Donation struct {
	ID          string
	HouseholdID string
	CharityName string
	Amount      int
	Frequency   Frequency
	// AnnualAmount is always derived from Amount and Frequency on write.
	AnnualAmount int
	CreatedAt    time.Time
}

var (
	ErrEmptyCharityName  = errors.New("charity name must not be empty")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// Fields is the mutable part of a donation as submitted by a client.
type Fields struct {
	CharityName string
	Amount      int
	Frequency   Frequency
}

// Validate rejects invalid fields before any storage call is made.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.CharityName) == "" {
		return ErrEmptyCharityName
	}
	if f.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if _, err := ParseFrequency(string(f.Frequency)); err != nil {
		return err
	}
	return nil
}
