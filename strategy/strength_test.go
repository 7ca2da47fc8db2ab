package strategy

import (
	"testing"

	"parkappeal-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestEvidenceKey(t *testing.T) {
	assert.Equal(t, "photos_of_meter_showing_malfunction", EvidenceKey("Photos of meter showing malfunction"))
	assert.Equal(t, "witness_statements", EvidenceKey("Witness statements"))
	assert.Equal(t, "already_canonical", EvidenceKey("already_canonical"))
	assert.Equal(t, "", EvidenceKey(""))
}

func TestAngleStrength(t *testing.T) {
	tests := []struct {
		name     string
		angle    string
		evidence models.EvidenceSet
		want     Strength
	}{
		{
			name:     "no evidence is weak",
			angle:    "signage_issues",
			evidence: models.EvidenceSet{},
			want:     StrengthWeak,
		},
		{
			name:     "nil evidence is weak",
			angle:    "signage_issues",
			evidence: nil,
			want:     StrengthWeak,
		},
		{
			name:  "three of four is strong",
			angle: "signage_issues",
			evidence: models.EvidenceSet{
				"photos_showing_parking_spot_and_nearby_signage":    true,
				"photos_of_any_obstructions_or_damaged_signs":       true,
				"photos_showing_perspective_from_driver's_position": true,
			},
			want: StrengthStrong,
		},
		{
			name:  "two of five lands exactly on the moderate boundary",
			angle: "time_discrepancy",
			evidence: models.EvidenceSet{
				"timestamped_photos_or_videos": true,
				"witness_statements":           true,
			},
			want: StrengthModerate,
		},
		{
			name:  "one of five is weak",
			angle: "time_discrepancy",
			evidence: models.EvidenceSet{
				"witness_statements": true,
			},
			want: StrengthWeak,
		},
		{
			name:  "full checklist is strong",
			angle: "procedural_error",
			evidence: models.EvidenceSet{
				"photos_of_the_citation_showing_errors":            true,
				"vehicle_registration_showing_correct_information": true,
				"photos_showing_improper_attachment_if_applicable": true,
			},
			want: StrengthStrong,
		},
		{
			name:  "falsy evidence values do not count",
			angle: "procedural_error",
			evidence: models.EvidenceSet{
				"photos_of_the_citation_showing_errors":            false,
				"vehicle_registration_showing_correct_information": "",
			},
			want: StrengthWeak,
		},
		{
			name:  "irrelevant evidence does not help",
			angle: "procedural_error",
			evidence: models.EvidenceSet{
				"witness_statements":           true,
				"timestamped_photos_or_videos": true,
			},
			want: StrengthWeak,
		},
		{
			name:     "unknown angle scores weak",
			angle:    "creative_writing",
			evidence: models.EvidenceSet{"anything": true},
			want:     StrengthWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AngleStrength(tt.angle, tt.evidence))
		})
	}
}

func TestAngleStrengthMonotonic(t *testing.T) {
	// Adding required evidence never lowers the band
	angle := Angle("meter_malfunction")
	rank := map[Strength]int{StrengthWeak: 0, StrengthModerate: 1, StrengthStrong: 2}

	evidence := models.EvidenceSet{}
	prev := AngleStrength(angle.Key, evidence)
	for _, item := range angle.RequiredEvidence {
		evidence[EvidenceKey(item)] = true
		got := AngleStrength(angle.Key, evidence)
		assert.GreaterOrEqual(t, rank[got], rank[prev])
		prev = got
	}
	assert.Equal(t, StrengthStrong, prev)
}
