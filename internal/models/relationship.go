package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant carries the denormalized display attributes of one side of a
// relationship. Attached on read only; never stored outside the users table.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

// Friendship is a symmetric relation between two users. Storage is
// directional (requester sent the request to the addressee) but visibility
// is symmetric. Accepted is false while the request is pending; rejection is
// expressed by deleting the row, so no third state exists.
type Friendship struct {
	ID        uuid.UUID   `json:"id"`
	Accepted  bool        `json:"accepted"`
	Requester Participant `json:"requester"`
	Addressee Participant `json:"addressee"`
	CreatedAt time.Time   `json:"created_at"`
}

type CreateFriendshipParams struct {
	RequesterID uuid.UUID
	AddresseeID uuid.UUID
}

// TaskAssignment is a symmetric relation between a task's owner and the user
// the task is shared with, scoped to exactly one task. The task snapshot is
// reconstructed from the joined row at query time.
type TaskAssignment struct {
	ID        uuid.UUID   `json:"id"`
	Accepted  bool        `json:"accepted"`
	Owner     Participant `json:"owner"`
	Assignee  Participant `json:"assignee"`
	Task      Task        `json:"task"`
	CreatedAt time.Time   `json:"created_at"`
}

type CreateTaskAssignmentParams struct {
	TaskID     uuid.UUID
	OwnerID    uuid.UUID
	AssigneeID uuid.UUID
}
