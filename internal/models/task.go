package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Title     string     `json:"title"`
	Notes     *string    `json:"notes,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Done      bool       `json:"done"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreateTaskParams struct {
	OwnerID uuid.UUID
	Title   string
	Notes   *string
	DueDate *time.Time
}

type UpdateTaskParams struct {
	Title   *string
	Notes   *string
	DueDate *time.Time
	Done    *bool
}
