package strategy

import (
	"testing"

	"parkappeal-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestSuggestAngles(t *testing.T) {
	tests := []struct {
		name  string
		facts models.CitationFacts
		want  []string
	}{
		{
			name:  "no facts returns defaults",
			facts: models.CitationFacts{},
			want:  []string{"procedural_error", "signage_issues", "first_time_leniency"},
		},
		{
			name:  "nil facts returns defaults",
			facts: nil,
			want:  []string{"procedural_error", "signage_issues", "first_time_leniency"},
		},
		{
			name:  "single fact fires single rule",
			facts: models.CitationFacts{"meter_malfunction": true},
			want:  []string{"meter_malfunction"},
		},
		{
			name: "suggestions come back in rule priority order",
			facts: models.CitationFacts{
				"unclear_signage":   true,
				"first_violation":   true,
				"meter_malfunction": true,
			},
			want: []string{"signage_issues", "meter_malfunction", "first_time_leniency"},
		},
		{
			name: "any fact of a rule triggers it",
			facts: models.CitationFacts{
				"conflicting_signs": true,
			},
			want: []string{"signage_issues"},
		},
		{
			name: "rule fires once even with multiple matching facts",
			facts: models.CitationFacts{
				"has_errors":   true,
				"missing_info": true,
			},
			want: []string{"procedural_error"},
		},
		{
			name: "falsy values do not fire rules",
			facts: models.CitationFacts{
				"unclear_signage": false,
				"first_violation": "",
				"time_incorrect":  0,
			},
			want: []string{"procedural_error", "signage_issues", "first_time_leniency"},
		},
		{
			name: "empty arrays and objects do not fire rules",
			facts: models.CitationFacts{
				"unclear_signage":   []interface{}{},
				"meter_malfunction": map[string]interface{}{},
			},
			want: []string{"procedural_error", "signage_issues", "first_time_leniency"},
		},
		{
			name: "non-boolean truthy values fire rules",
			facts: models.CitationFacts{
				"emergency_situation": "flat tire on the highway",
			},
			want: []string{"emergency_circumstances"},
		},
		{
			name: "unknown fact keys are ignored",
			facts: models.CitationFacts{
				"favorite_color":         "blue",
				"has_disability_placard": true,
			},
			want: []string{"disability_accommodation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestAngles(tt.facts))
		})
	}
}

func TestSuggestAnglesEveryRule(t *testing.T) {
	triggers := map[string]string{
		"procedural_error":         "incorrect_vehicle_info",
		"signage_issues":           "no_visible_signs",
		"meter_malfunction":        "paid_but_cited",
		"emergency_circumstances":  "emergency_situation",
		"payment_display_issue":    "paid_not_displayed",
		"zone_confusion":           "zone_boundary_unclear",
		"first_time_leniency":      "first_violation",
		"disability_accommodation": "disability_related",
		"time_discrepancy":         "timeline_conflicts",
	}

	for angle, fact := range triggers {
		t.Run(angle, func(t *testing.T) {
			got := SuggestAngles(models.CitationFacts{fact: true})
			assert.Equal(t, []string{angle}, got)
		})
	}
}

func TestSuggestAnglesDefaultsAreCopied(t *testing.T) {
	got := SuggestAngles(models.CitationFacts{})
	got[0] = "tampered"

	again := SuggestAngles(models.CitationFacts{})
	assert.Equal(t, "procedural_error", again[0])
}
