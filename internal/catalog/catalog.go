// Package catalog holds the static solar package catalogue and the pure
// pricing derivations around it. Nothing here touches storage.
package catalog

type SolarPackage struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Power               string   `json:"power"`
	Battery             string   `json:"battery"`
	Coverage            string   `json:"coverage"`
	OriginalPrice       int64    `json:"original_price"`
	GroupPrice          int64    `json:"group_price"`
	Savings             int64    `json:"savings"`
	ParticipantsNeeded  int      `json:"participants_needed"`
	CurrentParticipants int      `json:"current_participants"`
	Features            []string `json:"features"`
	Popular             bool     `json:"popular,omitempty"`
}

// packages is the group-buying catalogue; immutable reference data.
var packages = []SolarPackage{
	{
		ID:                  "basic",
		Name:                "Generator Replacement",
		Description:         "Perfect for essential home appliances and lighting",
		Power:               "3kW Solar System",
		Battery:             "5kWh Battery Backup",
		Coverage:            "4-6 hours backup power",
		OriginalPrice:       2800000,
		GroupPrice:          1950000,
		Savings:             850000,
		ParticipantsNeeded:  50,
		CurrentParticipants: 37,
		Features: []string{
			"All lights and fans",
			"TV and entertainment",
			"Refrigerator",
			"Phone charging",
			"WiFi router",
		},
	},
	{
		ID:                  "family",
		Name:                "Full Home Backup",
		Description:         "Powers your entire home during outages",
		Power:               "5kW Solar System",
		Battery:             "10kWh Battery Backup",
		Coverage:            "8-12 hours backup power",
		OriginalPrice:       4200000,
		GroupPrice:          2950000,
		Savings:             1250000,
		ParticipantsNeeded:  40,
		CurrentParticipants: 32,
		Features: []string{
			"Everything in Basic package",
			"Water pump",
			"Washing machine",
			"Air conditioning (1 room)",
			"Kitchen appliances",
		},
		Popular: true,
	},
	{
		ID:                  "premium",
		Name:                "Energy Independence",
		Description:         "Complete energy independence with surplus generation",
		Power:               "8kW Solar System",
		Battery:             "15kWh Battery Backup",
		Coverage:            "24+ hours backup power",
		OriginalPrice:       6500000,
		GroupPrice:          4250000,
		Savings:             2250000,
		ParticipantsNeeded:  30,
		CurrentParticipants: 18,
		Features: []string{
			"Everything in Family package",
			"Multiple AC units",
			"Electric cooking",
			"Workshop tools",
			"Pool equipment",
		},
	},
}

// Packages returns a copy of the catalogue so callers cannot mutate it.
func Packages() []SolarPackage {
	out := make([]SolarPackage, len(packages))
	copy(out, packages)
	return out
}

func FindPackage(id string) (SolarPackage, bool) {
	for _, p := range packages {
		if p.ID == id {
			return p, true
		}
	}
	return SolarPackage{}, false
}

type FinancingOption struct {
	Provider  string   `json:"provider"`
	Type      string   `json:"type"`
	Rate      string   `json:"rate"`
	Term      string   `json:"term"`
	MinAmount string   `json:"min_amount"`
	MaxAmount string   `json:"max_amount"`
	Features  []string `json:"features"`
	Badge     string   `json:"badge,omitempty"`
}

var financingOptions = []FinancingOption{
	{
		Provider:  "Malawi Microfinance Network",
		Type:      "Solar Loan",
		Rate:      "12% APR",
		Term:      "36 months",
		MinAmount: "MWK 500,000",
		MaxAmount: "MWK 2,000,000",
		Features:  []string{"No collateral required", "Flexible payment terms", "Quick approval process"},
		Badge:     "Most Popular",
	},
	{
		Provider:  "Rural Finance Corporation",
		Type:      "Green Energy Financing",
		Rate:      "10% APR",
		Term:      "48 months",
		MinAmount: "MWK 750,000",
		MaxAmount: "MWK 3,500,000",
		Features:  []string{"Government subsidized", "Lower interest rates", "Agricultural background preferred"},
		Badge:     "Government Backed",
	},
	{
		Provider:  "Opportunity Bank Malawi",
		Type:      "Clean Energy Loan",
		Rate:      "14% APR",
		Term:      "24 months",
		MinAmount: "MWK 300,000",
		MaxAmount: "MWK 1,500,000",
		Features:  []string{"Fast disbursement", "Mobile banking integration", "Small business friendly"},
		Badge:     "Quick Approval",
	},
	{
		Provider:  "Standard Bank Malawi",
		Type:      "Renewable Energy Finance",
		Rate:      "11% APR",
		Term:      "60 months",
		MinAmount: "MWK 1,000,000",
		MaxAmount: "MWK 5,000,000",
		Features:  []string{"Competitive rates", "Extended payment period", "Professional installation included"},
		Badge:     "Premium",
	},
}

func FinancingOptions() []FinancingOption {
	out := make([]FinancingOption, len(financingOptions))
	copy(out, financingOptions)
	return out
}
