package service

import (
	"strings"
	"testing"

	"parkappeal-backend/models"
	"parkappeal-backend/regulations"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseAngles(t *testing.T) {
	s := NewAppealService()

	t.Run("explicit selection wins", func(t *testing.T) {
		appealCase := &models.AppealCase{
			SelectedAngles: []string{"meter_malfunction"},
			Facts:          models.CitationFacts{"unclear_signage": true},
		}
		assert.Equal(t, []string{"meter_malfunction"}, s.caseAngles(appealCase))
	})

	t.Run("empty selection falls back to classifier", func(t *testing.T) {
		appealCase := &models.AppealCase{
			Facts: models.CitationFacts{"unclear_signage": true},
		}
		assert.Equal(t, []string{"signage_issues"}, s.caseAngles(appealCase))
	})

	t.Run("no selection and no facts yields defaults", func(t *testing.T) {
		appealCase := &models.AppealCase{}
		assert.Equal(t,
			[]string{"procedural_error", "signage_issues", "first_time_leniency"},
			s.caseAngles(appealCase))
	})
}

func TestInitializeSteps(t *testing.T) {
	s := NewAppealService()

	steps := s.initializeSteps([]string{"signage_issues", "bogus_angle", "first_time_leniency"})

	// Unknown angles are skipped; the comprehensive and assembly steps always
	// close out the list
	require.Len(t, steps, 4)
	assert.Equal(t, "Drafting Inadequate or Confusing Signage Appeal", steps[0].Name)
	assert.Equal(t, "Drafting First-Time Violation / Good Record Appeal", steps[1].Name)
	assert.Equal(t, comprehensiveStep, steps[2].Name)
	assert.Equal(t, assembleStep, steps[3].Name)

	for _, step := range steps {
		assert.Equal(t, "pending", step.Status)
	}
}

func TestWithRefineInstructions(t *testing.T) {
	base := "write a letter"

	assert.Equal(t, base, withRefineInstructions(base, nil))

	empty := ""
	assert.Equal(t, base, withRefineInstructions(base, &empty))

	notes := "mention the broken meter explicitly"
	got := withRefineInstructions(base, &notes)
	assert.Contains(t, got, base)
	assert.Contains(t, got, "ADDITIONAL INSTRUCTIONS FROM THE APPELLANT:")
	assert.Contains(t, got, notes)
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Dear Hearing Officer,")}}},
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(" I respectfully appeal.")}}},
		},
	}

	assert.Equal(t, "Dear Hearing Officer, I respectfully appeal.", extractText(resp))
	assert.Equal(t, "", extractText(&genai.GenerateContentResponse{}))
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list",
			text: "1. What time did the meter fail?\n2. Did you keep the receipt?\n3. Was an error shown?",
			want: []string{
				"What time did the meter fail?",
				"Did you keep the receipt?",
				"Was an error shown?",
			},
		},
		{
			name: "bullets, blanks and comments are stripped",
			text: "# Suggested questions\n\n- Was the sign visible at night?\n\n2) Did anyone else get cited?\n",
			want: []string{
				"Was the sign visible at night?",
				"Did anyone else get cited?",
			},
		},
		{
			name: "capped at five",
			text: "1. a?\n2. b?\n3. c?\n4. d?\n5. e?\n6. f?\n7. g?",
			want: []string{"a?", "b?", "c?", "d?", "e?"},
		},
		{
			name: "empty response yields no questions",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuestions(tt.text))
		})
	}
}

func TestAssembleDocument(t *testing.T) {
	s := NewAppealService()
	catalog := regulations.NewCatalog()

	appealCase := &models.AppealCase{
		CitationNumber: "SF-555",
		ViolationType:  "Street cleaning",
		City:           "San Francisco",
		State:          "CA",
	}
	location := catalog.CombinedInfo(appealCase.City, appealCase.State)

	sections := []appealSection{
		{Name: "Inadequate or Confusing Signage", Content: "signage draft body"},
		{Name: "First-Time Violation / Good Record", Content: "leniency draft body"},
	}

	doc := s.assembleDocument(appealCase, location, "comprehensive body", sections)

	assert.Contains(t, doc, "PARKING CITATION APPEAL")
	assert.Contains(t, doc, "Citation Number: SF-555")
	assert.Contains(t, doc, "Violation: Street cleaning")
	assert.Contains(t, doc, "Jurisdiction: San Francisco, California")
	assert.Contains(t, doc, "Appeal Deadline: 21 days from citation")
	assert.Contains(t, doc, "COMPREHENSIVE APPEAL LETTER")
	assert.Contains(t, doc, "comprehensive body")
	assert.Contains(t, doc, "ALTERNATIVE SINGLE-ANGLE DRAFTS")
	assert.Contains(t, doc, "APPEAL ANGLE: Inadequate or Confusing Signage")
	assert.Contains(t, doc, "signage draft body")
	assert.Contains(t, doc, "APPEAL ANGLE: First-Time Violation / Good Record")
	assert.Contains(t, doc, "leniency draft body")

	// The comprehensive letter comes before the alternatives
	assert.Less(t,
		strings.Index(doc, "COMPREHENSIVE APPEAL LETTER"),
		strings.Index(doc, "ALTERNATIVE SINGLE-ANGLE DRAFTS"))
}

func TestAssembleDocumentUnknownJurisdiction(t *testing.T) {
	s := NewAppealService()
	catalog := regulations.NewCatalog()

	appealCase := &models.AppealCase{CitationNumber: "X-1", State: "ZZ"}
	location := catalog.CombinedInfo("", "ZZ")

	doc := s.assembleDocument(appealCase, location, "body", nil)

	assert.Contains(t, doc, "Citation Number: X-1")
	assert.NotContains(t, doc, "Jurisdiction:")
	assert.NotContains(t, doc, "ALTERNATIVE SINGLE-ANGLE DRAFTS")
}
