package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mpetersen/taskhive/internal/models"
	"github.com/mpetersen/taskhive/internal/relation"
)

var (
	ErrAssignmentNotFound = errors.New("task assignment not found")
	ErrAssignmentExists   = errors.New("task is already shared with this user")
	ErrNotTaskOwner       = errors.New("only the task owner can share it")
)

// TaskAssignmentStore owns shared-task assignment rows. The owning side of
// the relation is implied by the task, so the stored columns are the task
// reference and the assignee; the owner is joined in on read.
type TaskAssignmentStore struct {
	db DBConn
}

func NewTaskAssignmentStore(db DBConn) *TaskAssignmentStore {
	return &TaskAssignmentStore{db: db}
}

const assignmentSelect = `SELECT a.id, a.accepted, a.created_at,
       ou.id, ou.display_name, ou.email, ou.avatar_url,
       su.id, su.display_name, su.email, su.avatar_url,
       t.id, t.owner_id, t.title, t.notes, t.due_date, t.done, t.created_at, t.updated_at
 FROM task_assignments a
 JOIN tasks t ON a.task_id = t.id
 JOIN users ou ON t.owner_id = ou.id
 JOIN users su ON a.assignee_id = su.id`

// scanAssignment reshapes one flat joined row, including the task snapshot
// rebuilt from its own flattened columns.
func scanAssignment(row Row) (*models.TaskAssignment, error) {
	a := &models.TaskAssignment{}
	err := row.Scan(
		&a.ID, &a.Accepted, &a.CreatedAt,
		&a.Owner.ID, &a.Owner.DisplayName, &a.Owner.Email, &a.Owner.AvatarURL,
		&a.Assignee.ID, &a.Assignee.DisplayName, &a.Assignee.Email, &a.Assignee.AvatarURL,
		&a.Task.ID, &a.Task.OwnerID, &a.Task.Title, &a.Task.Notes, &a.Task.DueDate, &a.Task.Done, &a.Task.CreatedAt, &a.Task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns every assignment matching the filter. The filter's party A is
// the task owner, party B the assignee.
func (s *TaskAssignmentStore) List(ctx context.Context, filter relation.Filter) ([]models.TaskAssignment, error) {
	query := assignmentSelect
	clause, args := relation.Predicate("t.owner_id", "a.assignee_id", "a.accepted", filter, 1)
	if clause != "" {
		query += "\n WHERE " + clause
	}
	query += "\n ORDER BY a.created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("listing task assignments", err)
	}
	defer rows.Close()

	var assignments []models.TaskAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, shapeErr("listing task assignments", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("listing task assignments", err)
	}

	if assignments == nil {
		assignments = []models.TaskAssignment{}
	}
	return assignments, nil
}

func (s *TaskAssignmentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error) {
	row := s.db.QueryRow(ctx, assignmentSelect+"\n WHERE a.id = $1", id)
	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, shapeErr("getting task assignment", err)
	}
	return a, nil
}

// Create inserts a new assignment under the supplied id, always pending.
// The task must exist and belong to the owner named in the params.
func (s *TaskAssignmentStore) Create(ctx context.Context, id uuid.UUID, params models.CreateTaskAssignmentParams) (*models.TaskAssignment, error) {
	var ownerID uuid.UUID
	err := s.db.QueryRow(ctx,
		"SELECT owner_id FROM tasks WHERE id = $1",
		params.TaskID,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, storageErr("loading task for assignment", err)
	}
	if ownerID != params.OwnerID {
		return nil, ErrNotTaskOwner
	}

	var exists bool
	err = s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM task_assignments WHERE task_id = $1 AND assignee_id = $2)",
		params.TaskID, params.AssigneeID,
	).Scan(&exists)
	if err != nil {
		return nil, storageErr("checking assignment existence", err)
	}
	if exists {
		return nil, ErrAssignmentExists
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO task_assignments (id, task_id, assignee_id, accepted)
		 VALUES ($1, $2, $3, false)`,
		id, params.TaskID, params.AssigneeID,
	)
	if err != nil {
		return nil, storageErr("creating task assignment", err)
	}

	return s.GetByID(ctx, id)
}

// Accept flips the assignment to accepted; idempotent, same contract as
// FriendshipStore.Accept.
func (s *TaskAssignmentStore) Accept(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error) {
	result, err := s.db.Exec(ctx,
		"UPDATE task_assignments SET accepted = true WHERE id = $1",
		id,
	)
	if err != nil {
		return nil, storageErr("accepting task assignment", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrAssignmentNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *TaskAssignmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM task_assignments WHERE id = $1",
		id,
	)
	if err != nil {
		return storageErr("deleting task assignment", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
