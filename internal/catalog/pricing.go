package catalog

import (
	"fmt"
	"strconv"
)

// FormatPrice renders a Kwacha amount the way the storefront shows it:
// millions with one decimal ("K3.0M"), smaller amounts comma-grouped
// ("K35,000").
func FormatPrice(amount int64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("K%.1fM", float64(amount)/1000000)
	}
	return "K" + groupDigits(amount)
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

type Savings struct {
	AnnualFuelCost         int64 `json:"annual_fuel_cost"`
	FiveYearFuelCost       int64 `json:"five_year_fuel_cost"`
	TenYearFuelCost        int64 `json:"ten_year_fuel_cost"`
	TwentyFiveYearFuelCost int64 `json:"twenty_five_year_fuel_cost"`
	FiveYearSavings        int64 `json:"five_year_savings"`
	TenYearSavings         int64 `json:"ten_year_savings"`
	TwentyFiveYearSavings  int64 `json:"twenty_five_year_savings"`
	PaybackMonths          int64 `json:"payback_months"`
	// PaybackDefined is false when the annual fuel cost is zero and the
	// system never pays for itself through fuel savings.
	PaybackDefined bool `json:"payback_defined"`
}

// ComputeSavings compares generator fuel spend against a package price over
// the standard horizons.
func ComputeSavings(monthlyFuelCost, packagePrice int64) Savings {
	annual := monthlyFuelCost * 12
	s := Savings{
		AnnualFuelCost:         annual,
		FiveYearFuelCost:       annual * 5,
		TenYearFuelCost:        annual * 10,
		TwentyFiveYearFuelCost: annual * 25,
	}
	s.FiveYearSavings = s.FiveYearFuelCost - packagePrice
	s.TenYearSavings = s.TenYearFuelCost - packagePrice
	s.TwentyFiveYearSavings = s.TwentyFiveYearFuelCost - packagePrice

	if annual > 0 {
		// ceil(packagePrice / annual * 12) in integer arithmetic
		s.PaybackMonths = (packagePrice*12 + annual - 1) / annual
		s.PaybackDefined = true
	}
	return s
}

type GroupStatus struct {
	Percent   float64 `json:"percent"`
	SpotsLeft int     `json:"spots_left"`
}

// GroupProgress reports how full a buying group is, clamped to [0,100].
func GroupProgress(currentParticipants, participantsNeeded int) GroupStatus {
	if participantsNeeded <= 0 {
		return GroupStatus{Percent: 100, SpotsLeft: 0}
	}
	pct := float64(currentParticipants) / float64(participantsNeeded) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	spots := participantsNeeded - currentParticipants
	if spots < 0 {
		spots = 0
	}
	return GroupStatus{Percent: pct, SpotsLeft: spots}
}
