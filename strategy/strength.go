package strategy

import (
	"strings"

	"parkappeal-backend/models"
)

// Strength is the heuristic band for how well evidence supports an angle
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// EvidenceKey derives the canonical evidence-set key for a required-evidence
// description: lower-cased with spaces replaced by underscores. Angle
// declarations and caller-supplied evidence sets must both go through this
// transform; changing it is an observable behavior change.
func EvidenceKey(item string) string {
	return strings.ReplaceAll(strings.ToLower(item), " ", "_")
}

// AngleStrength scores how much of an angle's required-evidence checklist the
// supplied evidence satisfies. Unknown angle keys score weak rather than
// erroring. Bands are inclusive at the lower bound: a match ratio of exactly
// 0.7 is strong and exactly 0.4 is moderate.
func AngleStrength(angleKey string, evidence models.EvidenceSet) Strength {
	angle := Angle(angleKey)
	if angle == nil {
		return StrengthWeak
	}

	matched := 0
	for _, item := range angle.RequiredEvidence {
		if evidence.Has(EvidenceKey(item)) {
			matched++
		}
	}

	ratio := 0.0
	if len(angle.RequiredEvidence) > 0 {
		ratio = float64(matched) / float64(len(angle.RequiredEvidence))
	}

	switch {
	case ratio >= 0.7:
		return StrengthStrong
	case ratio >= 0.4:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}
