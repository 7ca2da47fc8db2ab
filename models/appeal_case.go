package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the status of an appeal case
type CaseStatus string

const (
	CaseStatusDraft      CaseStatus = "draft"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusCompleted  CaseStatus = "completed"
	CaseStatusArchived   CaseStatus = "archived"
)

// CitationFacts is an open map of citation details collected from the
// appellant. Keys the classifier understands are plain boolean flags
// (has_errors, unclear_signage, ...); any other key is carried through
// untouched and may still be rendered into the generation request.
type CitationFacts map[string]interface{}

// Value implements driver.Valuer for JSONB
func (f CitationFacts) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB
func (f *CitationFacts) Scan(value interface{}) error {
	if value == nil {
		*f = make(CitationFacts)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*f = make(CitationFacts)
		return nil
	}

	if len(bytes) == 0 {
		*f = make(CitationFacts)
		return nil
	}

	return json.Unmarshal(bytes, f)
}

// Flag reports whether the named fact is present and truthy.
func (f CitationFacts) Flag(key string) bool {
	return Truthy(f[key])
}

// EvidenceSet is an open map of available evidence. A key present with a
// truthy value means that evidence item is on hand. Keys follow the
// canonical form produced by strategy.EvidenceKey.
type EvidenceSet map[string]interface{}

// Value implements driver.Valuer for JSONB
func (e EvidenceSet) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements sql.Scanner for JSONB
func (e *EvidenceSet) Scan(value interface{}) error {
	if value == nil {
		*e = make(EvidenceSet)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*e = make(EvidenceSet)
		return nil
	}

	if len(bytes) == 0 {
		*e = make(EvidenceSet)
		return nil
	}

	return json.Unmarshal(bytes, e)
}

// Has reports whether the evidence item is present and truthy.
func (e EvidenceSet) Has(key string) bool {
	return Truthy(e[key])
}

// Truthy reports whether a fact or evidence value counts as present.
// Absent keys, nil, false, empty strings, zero numbers and empty
// arrays/objects are all treated as "not provided". Classifier, evaluator
// and request assembly all share this definition so the same input never
// scores one way and renders another.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// AppealCase represents a parking citation appeal case
type AppealCase struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Status CaseStatus `json:"status"`

	// Citation intake
	CitationNumber string `json:"citation_number"`
	ViolationType  string `json:"violation_type"`
	City           string `json:"city"`
	State          string `json:"state"`

	// Collected details
	Facts    CitationFacts `json:"facts"`
	Evidence EvidenceSet   `json:"evidence"`

	// Strategy selection; empty means "classify from facts at generation time"
	SelectedAngles []string `json:"selected_angles"`

	// Generation output
	GeneratedContent   *string `json:"generated_content"`
	RefineInstructions *string `json:"refine_instructions"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
