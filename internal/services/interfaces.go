package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mpetersen/taskhive/internal/models"
	"github.com/mpetersen/taskhive/internal/relation"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// TaskServiceInterface defines the contract for task operations used by handlers.
type TaskServiceInterface interface {
	Create(ctx context.Context, params models.CreateTaskParams) (*models.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, params models.UpdateTaskParams) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// FriendshipStoreInterface defines the friendship side of the relationship
// store contract consumed by the gateway.
type FriendshipStoreInterface interface {
	List(ctx context.Context, filter relation.Filter) ([]models.Friendship, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Friendship, error)
	Create(ctx context.Context, id uuid.UUID, params models.CreateFriendshipParams) (*models.Friendship, error)
	Accept(ctx context.Context, id uuid.UUID) (*models.Friendship, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskAssignmentStoreInterface defines the shared-task side of the
// relationship store contract consumed by the gateway.
type TaskAssignmentStoreInterface interface {
	List(ctx context.Context, filter relation.Filter) ([]models.TaskAssignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error)
	Create(ctx context.Context, id uuid.UUID, params models.CreateTaskAssignmentParams) (*models.TaskAssignment, error)
	Accept(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
