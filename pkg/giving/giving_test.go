package giving

import (
	"math"
	"testing"

	"github.com/mindthegap/mindthegap/pkg/donation"
	"github.com/stretchr/testify/assert"
)

func yearly(name string, amount int) donation.Donation {
	return donation.Donation{
		ID:           name,
		CharityName:  name,
		Amount:       amount,
		Frequency:    donation.FrequencyYearly,
		AnnualAmount: donation.Annualize(amount, donation.FrequencyYearly),
	}
}

func monthly(name string, amount int) donation.Donation {
	return donation.Donation{
		ID:           name,
		CharityName:  name,
		Amount:       amount,
		Frequency:    donation.FrequencyMonthly,
		AnnualAmount: donation.Annualize(amount, donation.FrequencyMonthly),
	}
}

func TestAggregate_MonthlyDonationScenario(t *testing.T) {
	// given
	income := 50000
	donations := []donation.Donation{monthly("Red Cross", 100)}

	// when
	summary := Aggregate(income, donations)

	// then
	assert.Equal(t, 1200, donations[0].AnnualAmount)
	assert.Equal(t, 1200, summary.TotalAnnual)
	assert.InDelta(t, 2.4, summary.Percentage, 1e-9)
}

func TestAggregate_EmptyState(t *testing.T) {
	summary := Aggregate(0, nil)

	assert.Equal(t, 0, summary.TotalAnnual)
	assert.Equal(t, 0.0, summary.Percentage)
	assert.Equal(t, []PieSlice{
		{Name: "Donations", Value: 0, Color: PieColors[0]},
		{Name: "Remaining income", Value: 0, Color: PieColors[1]},
	}, summary.IncomePie)
	assert.Empty(t, summary.Comparison)
	assert.Empty(t, summary.DonationPie)
}

func TestAggregate_PercentageZeroOnlyWithoutIncomeOrGiving(t *testing.T) {
	tests := []struct {
		name      string
		income    int
		donations []donation.Donation
		wantZero  bool
	}{
		{name: "no income, no donations", income: 0, donations: nil, wantZero: true},
		{name: "income without donations", income: 40000, donations: nil, wantZero: true},
		{name: "donations without income", income: 0, donations: []donation.Donation{yearly("a", 100)}, wantZero: true},
		{name: "income and donations", income: 40000, donations: []donation.Donation{yearly("a", 100)}, wantZero: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Aggregate(tt.income, tt.donations)
			if tt.wantZero {
				assert.Equal(t, 0.0, summary.Percentage)
			} else {
				assert.Greater(t, summary.Percentage, 0.0)
			}
		})
	}
}

func TestAggregate_OvershootClampsRemainingToZero(t *testing.T) {
	summary := Aggregate(1000, []donation.Donation{yearly("Generous", 5000)})

	assert.Equal(t, 5000, summary.TotalAnnual)
	assert.Equal(t, "Donations", summary.IncomePie[0].Name)
	assert.Equal(t, 5000, summary.IncomePie[0].Value)
	assert.Equal(t, "Remaining income", summary.IncomePie[1].Name)
	assert.Equal(t, 0, summary.IncomePie[1].Value)
	// raw percentage still reports the overshoot
	assert.Greater(t, summary.Percentage, 100.0)
}

func TestAggregate_DonationPieSumsToTotal(t *testing.T) {
	donations := []donation.Donation{
		monthly("a", 17),
		yearly("b", 333),
		monthly("c", 99),
		yearly("d", 1),
	}
	summary := Aggregate(75000, donations)

	sum := 0
	for _, slice := range summary.DonationPie {
		sum += slice.Value
	}
	assert.Equal(t, summary.TotalAnnual, sum)
}

func TestAggregate_SharesSumToHundred(t *testing.T) {
	donations := []donation.Donation{
		monthly("a", 13),
		yearly("b", 777),
		monthly("c", 250),
	}
	summary := Aggregate(60000, donations)

	total := 0.0
	for _, share := range summary.Shares {
		total += share.Percent
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestAggregate_RemovingLastDonationNeverYieldsNaN(t *testing.T) {
	// removing the only donation leaves an empty list
	summary := Aggregate(50000, []donation.Donation{})

	assert.Equal(t, 0, summary.TotalAnnual)
	assert.False(t, math.IsNaN(summary.Percentage))
	for _, share := range summary.Shares {
		assert.False(t, math.IsNaN(share.Percent))
	}
	assert.Empty(t, summary.Comparison)
}

func TestAggregate_ComparisonProjectsNetWorth(t *testing.T) {
	// 1200 of 50000 is a 2.4% giving rate
	summary := Aggregate(50000, []donation.Donation{monthly("Red Cross", 100)})

	assert.Len(t, summary.Comparison, len(Billionaires)+1)
	for i, b := range Billionaires {
		entry := summary.Comparison[i]
		assert.Equal(t, b.Name, entry.Name)
		assert.InDelta(t, float64(b.NetWorth)*2.4/100, entry.Contribution, 1e-3)
		assert.False(t, entry.Self)
	}

	self := summary.Comparison[len(Billionaires)]
	assert.Equal(t, SelfEntryName, self.Name)
	assert.True(t, self.Self)
	assert.Equal(t, 1200.0, self.Contribution)
}

func TestAggregate_SelfEntryKeptWithoutIncome(t *testing.T) {
	// zero income means no projection rate, yet the household gives
	summary := Aggregate(0, []donation.Donation{yearly("Local shelter", 300)})

	assert.Len(t, summary.Comparison, 1)
	assert.True(t, summary.Comparison[0].Self)
	assert.Equal(t, 300.0, summary.Comparison[0].Contribution)
}
