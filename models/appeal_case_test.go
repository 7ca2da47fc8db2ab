package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "unclear signage", true},
		{"zero int", 0, false},
		{"int", 3, true},
		{"zero float", 0.0, false},
		{"float", 1.5, true},
		{"empty array", []interface{}{}, false},
		{"array", []interface{}{"photo"}, true},
		{"empty object", map[string]interface{}{}, false},
		{"object", map[string]interface{}{"kind": "photo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.value))
		})
	}
}

func TestCitationFactsFlag(t *testing.T) {
	facts := CitationFacts{
		"unclear_signage": true,
		"has_errors":      false,
		"notes":           "",
	}

	assert.True(t, facts.Flag("unclear_signage"))
	assert.False(t, facts.Flag("has_errors"))
	assert.False(t, facts.Flag("notes"))
	assert.False(t, facts.Flag("missing_key"))

	var nilFacts CitationFacts
	assert.False(t, nilFacts.Flag("anything"))
}

func TestEvidenceSetHas(t *testing.T) {
	evidence := EvidenceSet{
		"parking_receipt": true,
		"gps_data":        0,
	}

	assert.True(t, evidence.Has("parking_receipt"))
	assert.False(t, evidence.Has("gps_data"))
	assert.False(t, evidence.Has("witness_statements"))
}

func TestCitationFactsScan(t *testing.T) {
	t.Run("nil column yields empty map", func(t *testing.T) {
		var f CitationFacts
		require.NoError(t, f.Scan(nil))
		assert.NotNil(t, f)
		assert.Empty(t, f)
	})

	t.Run("bytes round-trip", func(t *testing.T) {
		var f CitationFacts
		require.NoError(t, f.Scan([]byte(`{"unclear_signage": true, "citation_number": "SF-1"}`)))
		assert.True(t, f.Flag("unclear_signage"))
		assert.Equal(t, "SF-1", f["citation_number"])
	})

	t.Run("string input", func(t *testing.T) {
		var f CitationFacts
		require.NoError(t, f.Scan(`{"first_violation": true}`))
		assert.True(t, f.Flag("first_violation"))
	})
}

func TestEvidenceSetValue(t *testing.T) {
	evidence := EvidenceSet{"parking_receipt": true}

	value, err := evidence.Value()
	require.NoError(t, err)

	var back EvidenceSet
	require.NoError(t, back.Scan(value))
	assert.True(t, back.Has("parking_receipt"))
}
