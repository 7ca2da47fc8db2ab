package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleCatalog(t *testing.T) {
	all := Angles()
	require.Len(t, all, 9)

	keys := AngleKeys()
	require.Len(t, keys, 9)
	assert.Equal(t, "procedural_error", keys[0])
	assert.Equal(t, "time_discrepancy", keys[8])

	// Catalog order and key order agree
	for i, angle := range all {
		assert.Equal(t, keys[i], angle.Key)
	}
}

func TestAngleLookup(t *testing.T) {
	angle := Angle("signage_issues")
	require.NotNil(t, angle)
	assert.Equal(t, "Inadequate or Confusing Signage", angle.Name)
	assert.NotEmpty(t, angle.KeyQuestions)
	assert.NotEmpty(t, angle.StrengthIndicators)
	assert.NotEmpty(t, angle.RequiredEvidence)

	assert.Nil(t, Angle("creative_writing"))
	assert.Nil(t, Angle(""))
}

func TestEveryAngleIsComplete(t *testing.T) {
	for _, angle := range Angles() {
		t.Run(angle.Key, func(t *testing.T) {
			assert.NotEmpty(t, angle.Name)
			assert.NotEmpty(t, angle.Description)
			assert.NotEmpty(t, angle.KeyQuestions)
			assert.NotEmpty(t, angle.StrengthIndicators)
			assert.NotEmpty(t, angle.RequiredEvidence)
		})
	}
}
