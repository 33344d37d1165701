package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mpetersen/taskhive/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskService struct {
	db DBConn
}

func NewTaskService(db DBConn) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) Create(ctx context.Context, params models.CreateTaskParams) (*models.Task, error) {
	task := &models.Task{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO tasks (owner_id, title, notes, due_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, owner_id, title, notes, due_date, done, created_at, updated_at`,
		params.OwnerID, params.Title, params.Notes, params.DueDate,
	).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Notes, &task.DueDate, &task.Done, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	err := s.db.QueryRow(ctx,
		`SELECT id, owner_id, title, notes, due_date, done, created_at, updated_at
		 FROM tasks WHERE id = $1`,
		id,
	).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Notes, &task.DueDate, &task.Done, &task.CreatedAt, &task.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, owner_id, title, notes, due_date, done, created_at, updated_at
		 FROM tasks WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Notes, &task.DueDate, &task.Done, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, params models.UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, ErrTaskNotFound
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Notes != nil {
		task.Notes = params.Notes
	}
	if params.DueDate != nil {
		task.DueDate = params.DueDate
	}
	if params.Done != nil {
		task.Done = *params.Done
	}

	err = s.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $2, notes = $3, due_date = $4, done = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, owner_id, title, notes, due_date, done, created_at, updated_at`,
		taskID, task.Title, task.Notes, task.DueDate, task.Done,
	).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Notes, &task.DueDate, &task.Done, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM tasks WHERE id = $1 AND owner_id = $2",
		taskID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}
