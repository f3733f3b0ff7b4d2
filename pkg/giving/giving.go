package giving

import (
	"github.com/mindthegap/mindthegap/pkg/donation"
)

// Chart palettes, in rotation order.
var (
	LineColors = []string{"#ee352e", "#fccc0a", "#00933c", "#ff6319", "#0039a6"}
	BarColors  = LineColors
	PieColors  = []string{"#ee352e", "#00933c", "#ff6319", "#b933ad", "#0039a6"}
)

// Billionaire is a reference entity with a publicly reported net worth in euros.
type Billionaire struct {
	Name     string
	NetWorth int64
}

// Billionaires is the fixed reference list used for the comparison scenario.
var Billionaires = []Billionaire{
	{Name: "Elon Musk", NetWorth: 226_000_000_000},
	{Name: "Jeff Bezos", NetWorth: 205_000_000_000},
	{Name: "Bernard Arnault", NetWorth: 195_000_000_000},
}

// SelfEntryName labels the household's own row in the comparison dataset.
const SelfEntryName = "Your household"

// PieSlice is a single named slice of a pie dataset.
type PieSlice struct {
	Name  string
	Value int
	Color string
}

// DonationSlice is one donation's slice of the donation-split pie.
type DonationSlice struct {
	Name  string
	Value int
	// Percentage is the donation's share of total annual giving.
	Percentage float64
	Color      string
}

// ComparisonEntry is one row of the billionaire-comparison dataset.
type ComparisonEntry struct {
	Name         string
	Contribution float64
	Color        string
	Self         bool
}

// Share pairs a donation with its share of total annual giving.
type Share struct {
	Donation donation.Donation
	Percent  float64
}

// Summary is the full derived dataset for one household state. It is a pure
// function of income and the donation list and is recomputed on every call,
// never cached or persisted.
type Summary struct {
	TotalAnnual int
	// Percentage is total annual giving as a share of income. It can exceed
	// 100 when donations overshoot income; the income pie clamps, callers
	// that want to warn on overshoot can check this raw value.
	Percentage  float64
	Shares      []Share
	IncomePie   []PieSlice
	DonationPie []DonationSlice
	Comparison  []ComparisonEntry
}

// Aggregate derives the complete dashboard dataset from an income figure and
// a donation list.
func Aggregate(income int, donations []donation.Donation) Summary {
	totalAnnual := 0
	for _, d := range donations {
		totalAnnual += d.AnnualAmount
	}

	percentage := 0.0
	if income > 0 {
		percentage = float64(totalAnnual) / float64(income) * 100
	}

	shares := make([]Share, 0, len(donations))
	donationPie := make([]DonationSlice, 0, len(donations))
	for i, d := range donations {
		share := 0.0
		if totalAnnual > 0 {
			share = float64(d.AnnualAmount) / float64(totalAnnual) * 100
		}
		shares = append(shares, Share{Donation: d, Percent: share})
		donationPie = append(donationPie, DonationSlice{
			Name:       d.CharityName,
			Value:      d.AnnualAmount,
			Percentage: share,
			Color:      PieColors[i%len(PieColors)],
		})
	}

	remaining := income - totalAnnual
	if remaining < 0 {
		remaining = 0
	}
	incomePie := []PieSlice{
		{Name: "Donations", Value: totalAnnual, Color: PieColors[0]},
		{Name: "Remaining income", Value: remaining, Color: PieColors[1]},
	}

	return Summary{
		TotalAnnual: totalAnnual,
		Percentage:  percentage,
		Shares:      shares,
		IncomePie:   incomePie,
		DonationPie: donationPie,
		Comparison:  compare(percentage, totalAnnual),
	}
}

// compare projects the household's giving rate onto the reference list. With a
// zero rate there is nothing to project, but the household's own entry is kept
// as long as it actually gives anything.
func compare(percentage float64, totalAnnual int) []ComparisonEntry {
	entries := make([]ComparisonEntry, 0, len(Billionaires)+1)
	if percentage > 0 {
		for i, b := range Billionaires {
			entries = append(entries, ComparisonEntry{
				Name:         b.Name,
				Contribution: float64(b.NetWorth) * percentage / 100,
				Color:        BarColors[i%len(BarColors)],
			})
		}
	}
	if totalAnnual > 0 {
		entries = append(entries, ComparisonEntry{
			Name:         SelfEntryName,
			Contribution: float64(totalAnnual),
			Color:        BarColors[len(Billionaires)%len(BarColors)],
			Self:         true,
		})
	}
	return entries
}
