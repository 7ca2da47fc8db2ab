package strategy

import "parkappeal-backend/models"

// classifierRule maps a set of boolean citation facts to an angle. A rule
// fires when any of its facts is truthy. Rules are evaluated in slice order
// and that order is part of the contract: callers see suggestions ranked by it.
type classifierRule struct {
	Angle string
	Facts []string
}

var classifierRules = []classifierRule{
	{Angle: "procedural_error", Facts: []string{"has_errors", "missing_info", "incorrect_vehicle_info"}},
	{Angle: "signage_issues", Facts: []string{"unclear_signage", "no_visible_signs", "conflicting_signs"}},
	{Angle: "meter_malfunction", Facts: []string{"meter_malfunction", "payment_failed", "paid_but_cited"}},
	{Angle: "emergency_circumstances", Facts: []string{"emergency_situation"}},
	{Angle: "payment_display_issue", Facts: []string{"paid_not_displayed", "receipt_not_visible"}},
	{Angle: "zone_confusion", Facts: []string{"unclear_zone", "zone_boundary_unclear"}},
	{Angle: "first_time_leniency", Facts: []string{"first_violation"}},
	{Angle: "disability_accommodation", Facts: []string{"disability_related", "has_disability_placard"}},
	{Angle: "time_discrepancy", Facts: []string{"time_incorrect", "timeline_conflicts"}},
}

// defaultAngles is returned when no rule fires, so callers always get at
// least one suggestion to work with.
var defaultAngles = []string{"procedural_error", "signage_issues", "first_time_leniency"}

// SuggestAngles returns the appeal angle keys relevant to the given citation
// facts, in rule priority order. Unrecognized fact keys are ignored here but
// still flow through to request assembly.
func SuggestAngles(facts models.CitationFacts) []string {
	relevant := make([]string, 0, len(classifierRules))

	for _, rule := range classifierRules {
		for _, fact := range rule.Facts {
			if facts.Flag(fact) {
				relevant = append(relevant, rule.Angle)
				break
			}
		}
	}

	if len(relevant) == 0 {
		fallback := make([]string, len(defaultAngles))
		copy(fallback, defaultAngles)
		return fallback
	}

	return relevant
}
