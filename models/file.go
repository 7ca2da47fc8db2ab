package models

import (
	"time"

	"github.com/google/uuid"
)

// EvidenceFile represents an uploaded evidence file (photos, receipts,
// statements) attached to an appeal case
type EvidenceFile struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CaseID      *uuid.UUID `json:"case_id,omitempty"`
	Filename    string     `json:"filename"`
	MimeType    string     `json:"mime_type"`
	Size        int64      `json:"size"`
	StoragePath string     `json:"storage_path"`
	Label       *string    `json:"label,omitempty"` // free-text description, e.g. "photo of obstructed sign"
	CreatedAt   time.Time  `json:"created_at"`
}
