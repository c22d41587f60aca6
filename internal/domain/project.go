package domain

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty" db:"customer_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// ProjectUpdate is a status post on a project, written by the main app.
type ProjectUpdate struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectFile is file-upload metadata; the blob itself lives elsewhere.
type ProjectFile struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	FileName   string     `json:"file_name"`
	UploadedBy uuid.UUID  `json:"uploaded_by"`
	CreatedAt  time.Time  `json:"created_at"`
}
