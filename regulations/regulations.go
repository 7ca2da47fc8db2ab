// Package regulations holds the static registry of state and city parking
// regulation records and resolves them for a (city, state) pair. The catalog
// is fixed reference data built once at startup; lookups never fail, they
// resolve to nil/empty instead.
package regulations

import "strings"

// StateRegulation describes state-level appeal rules
type StateRegulation struct {
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	AppealDeadlineDays  int      `json:"appeal_deadline_days"`
	CommonDefenses      []string `json:"common_defenses"`
	AppealAddressFormat string   `json:"appeal_address_format"`
}

// CityRegulation describes city-level appeal rules layered over a state
type CityRegulation struct {
	Name               string   `json:"name"`
	State              string   `json:"state"`
	SpecificRules      []string `json:"specific_rules"`
	OnlineAppeal       bool     `json:"online_appeal"`
	FeeWaiverAvailable bool     `json:"fee_waiver_available"`
}

// CombinedInfo merges the state and city records for one jurisdiction.
// State or City are nil when the code/name is not in the catalog (or the
// city belongs to a different state). Built fresh on every lookup.
type CombinedInfo struct {
	State            *StateRegulation `json:"state"`
	City             *CityRegulation  `json:"city"`
	AvailableGrounds []string         `json:"available_grounds"`
}

// Catalog is the in-process regulation registry. Construct it once with
// NewCatalog and pass it by reference; it is read-only afterwards and safe
// for concurrent use.
type Catalog struct {
	states        map[string]*StateRegulation
	stateOrder    []string
	cities        map[string]*CityRegulation
	cityOrder     []string
	commonGrounds []string
}

// NewCatalog builds the regulation catalog
func NewCatalog() *Catalog {
	c := &Catalog{
		states: make(map[string]*StateRegulation),
		cities: make(map[string]*CityRegulation),
		commonGrounds: []string{
			"unclear_signage",
			"emergency_circumstances",
			"vehicle_malfunction",
			"medical_emergency",
			"incorrect_citation_details",
			"meter_malfunction",
			"conflicting_signs",
			"first_time_offense",
			"extenuating_circumstances",
			"procedural_errors",
			"incorrect_vehicle_info",
			"paid_but_not_displayed",
			"time_discrepancy",
			"zone_confusion",
			"disability_accommodation",
		},
	}

	for _, s := range []*StateRegulation{
		{
			Code:               "CA",
			Name:               "California",
			AppealDeadlineDays: 21,
			CommonDefenses: []string{
				"CVC 22507.8 - Disabled parking violations require proper investigation",
				"CVC 40215 - Notice of parking violation must be securely attached",
				"Signage must comply with Manual on Uniform Traffic Control Devices (MUTCD)",
			},
			AppealAddressFormat: "City parking authority or designated appeals board",
		},
		{
			Code:               "NY",
			Name:               "New York",
			AppealDeadlineDays: 30,
			CommonDefenses: []string{
				"NYC Traffic Rules require clear and visible signage",
				"Broken meters - proof required within 7 days",
				"Emergency vehicles - documentation required",
			},
			AppealAddressFormat: "Department of Finance, Parking Violations Bureau",
		},
		{
			Code:               "TX",
			Name:               "Texas",
			AppealDeadlineDays: 21,
			CommonDefenses: []string{
				"Transportation Code 681.0101 - Proper notice requirements",
				"Sign visibility and compliance with state standards",
				"Meter malfunction - immediate reporting helps case",
			},
			AppealAddressFormat: "Municipal court or designated hearing officer",
		},
		{
			Code:               "FL",
			Name:               "Florida",
			AppealDeadlineDays: 30,
			CommonDefenses: []string{
				"F.S. 316.1967 - Parking regulations must be clearly posted",
				"Meter violations - malfunction must be documented",
				"Emergency circumstances with supporting documentation",
			},
			AppealAddressFormat: "City clerk or parking violations bureau",
		},
		{
			Code:               "IL",
			Name:               "Illinois",
			AppealDeadlineDays: 21,
			CommonDefenses: []string{
				"Chicago Municipal Code - signage requirements",
				"Meter payment issues - transaction records",
				"Medical emergency documentation",
			},
			AppealAddressFormat: "Department of Administrative Hearings",
		},
	} {
		c.states[s.Code] = s
		c.stateOrder = append(c.stateOrder, s.Code)
	}

	for _, city := range []*CityRegulation{
		{
			Name:  "San Francisco",
			State: "CA",
			SpecificRules: []string{
				"SFMTA requires photos of signage for signage-related appeals",
				"Street cleaning violations - check SFMTA calendar",
				"Residential permit zones - proof of residency required",
			},
			OnlineAppeal:       true,
			FeeWaiverAvailable: true,
		},
		{
			Name:  "Los Angeles",
			State: "CA",
			SpecificRules: []string{
				"LADOT handles parking enforcement",
				"First-time violators may get reduced fines",
				"Photo evidence highly recommended",
			},
			OnlineAppeal:       true,
			FeeWaiverAvailable: false,
		},
		{
			Name:  "New York City",
			State: "NY",
			SpecificRules: []string{
				"Online appeals through NYC.gov required for most violations",
				"Hearing requests must be filed within 30 days",
				"Evidence upload system available online",
			},
			OnlineAppeal:       true,
			FeeWaiverAvailable: false,
		},
		{
			Name:  "Chicago",
			State: "IL",
			SpecificRules: []string{
				"City of Chicago parking ticket portal",
				"Early payment discount available (not applicable if appealing)",
				"Administrative hearing process",
			},
			OnlineAppeal:       true,
			FeeWaiverAvailable: false,
		},
		{
			Name:  "Houston",
			State: "TX",
			SpecificRules: []string{
				"Houston Municipal Courts handle appeals",
				"Written statement required for appeal",
				"Court appearance may be required for some violations",
			},
			OnlineAppeal:       false,
			FeeWaiverAvailable: true,
		},
		{
			Name:  "Miami",
			State: "FL",
			SpecificRules: []string{
				"Miami Parking Authority handles enforcement",
				"Online contest system available",
				"Supporting documents must be uploaded or mailed",
			},
			OnlineAppeal:       true,
			FeeWaiverAvailable: false,
		},
	} {
		c.cities[city.Name] = city
		c.cityOrder = append(c.cityOrder, city.Name)
	}

	return c
}

// StateInfo looks up a state by code. Lookup is case-insensitive.
func (c *Catalog) StateInfo(code string) *StateRegulation {
	return c.states[strings.ToUpper(code)]
}

// CityInfo looks up a city by exact name. No normalization is applied.
func (c *Catalog) CityInfo(name string) *CityRegulation {
	return c.cities[name]
}

// CombinedInfo resolves the merged jurisdiction record for a city and state.
// State is nil for unknown codes. City is populated only when the city exists
// and belongs to the given state; a mismatched state drops the city record.
func (c *Catalog) CombinedInfo(cityName, stateCode string) *CombinedInfo {
	info := &CombinedInfo{
		State:            c.StateInfo(stateCode),
		AvailableGrounds: c.commonGrounds,
	}

	if cityName != "" {
		if city := c.CityInfo(cityName); city != nil && city.State == strings.ToUpper(stateCode) {
			info.City = city
		}
	}

	return info
}

// StateCodes returns all supported state codes in catalog order
func (c *Catalog) StateCodes() []string {
	codes := make([]string, len(c.stateOrder))
	copy(codes, c.stateOrder)
	return codes
}

// CitiesForState returns the catalog cities belonging to a state
func (c *Catalog) CitiesForState(stateCode string) []string {
	stateCode = strings.ToUpper(stateCode)

	cities := make([]string, 0)
	for _, name := range c.cityOrder {
		if c.cities[name].State == stateCode {
			cities = append(cities, name)
		}
	}
	return cities
}

// CommonGrounds returns the jurisdiction-agnostic appeal grounds
func (c *Catalog) CommonGrounds() []string {
	grounds := make([]string, len(c.commonGrounds))
	copy(grounds, c.commonGrounds)
	return grounds
}
