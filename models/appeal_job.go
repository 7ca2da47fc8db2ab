package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AppealJobStatus represents the status of an appeal generation job
type AppealJobStatus string

const (
	JobStatusPending    AppealJobStatus = "pending"
	JobStatusInProgress AppealJobStatus = "in_progress"
	JobStatusCompleted  AppealJobStatus = "completed"
	JobStatusFailed     AppealJobStatus = "failed"
)

// AppealStep represents one step of the generation pipeline
type AppealStep struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // "pending", "in_progress", "completed", "failed"
	Description string `json:"description,omitempty"`
}

// AppealSteps represents the ordered list of generation steps
type AppealSteps []AppealStep

// Value implements driver.Valuer for JSONB
func (s AppealSteps) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *AppealSteps) Scan(value interface{}) error {
	if value == nil {
		*s = make(AppealSteps, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*s = make(AppealSteps, 0)
		return nil
	}

	if len(bytes) == 0 {
		*s = make(AppealSteps, 0)
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// AppealJob represents an asynchronous appeal generation job
type AppealJob struct {
	ID           uuid.UUID       `json:"id"`
	CaseID       uuid.UUID       `json:"case_id"`
	Status       AppealJobStatus `json:"status"`
	CurrentStep  *string         `json:"current_step,omitempty"`
	Steps        AppealSteps     `json:"steps"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}
