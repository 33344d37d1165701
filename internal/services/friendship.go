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
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrFriendshipExists   = errors.New("friendship already exists")
)

// FriendshipStore owns friendship rows, their queries, and the flat-row to
// domain-object mapping.
type FriendshipStore struct {
	db DBConn
}

func NewFriendshipStore(db DBConn) *FriendshipStore {
	return &FriendshipStore{db: db}
}

const friendshipSelect = `SELECT f.id, f.accepted, f.created_at,
       ru.id, ru.display_name, ru.email, ru.avatar_url,
       au.id, au.display_name, au.email, au.avatar_url
 FROM friendships f
 JOIN users ru ON f.requester_id = ru.id
 JOIN users au ON f.addressee_id = au.id`

// scanFriendship reshapes one flat joined row into the nested record.
// Deterministic; tested against literal row fixtures.
func scanFriendship(row Row) (*models.Friendship, error) {
	f := &models.Friendship{}
	err := row.Scan(
		&f.ID, &f.Accepted, &f.CreatedAt,
		&f.Requester.ID, &f.Requester.DisplayName, &f.Requester.Email, &f.Requester.AvatarURL,
		&f.Addressee.ID, &f.Addressee.DisplayName, &f.Addressee.Email, &f.Addressee.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns every friendship matching the filter. An empty result is an
// empty slice, never an error.
func (s *FriendshipStore) List(ctx context.Context, filter relation.Filter) ([]models.Friendship, error) {
	query := friendshipSelect
	clause, args := relation.Predicate("f.requester_id", "f.addressee_id", "f.accepted", filter, 1)
	if clause != "" {
		query += "\n WHERE " + clause
	}
	query += "\n ORDER BY f.created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("listing friendships", err)
	}
	defer rows.Close()

	var friendships []models.Friendship
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, shapeErr("listing friendships", err)
		}
		friendships = append(friendships, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("listing friendships", err)
	}

	if friendships == nil {
		friendships = []models.Friendship{}
	}
	return friendships, nil
}

func (s *FriendshipStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	row := s.db.QueryRow(ctx, friendshipSelect+"\n WHERE f.id = $1", id)
	f, err := scanFriendship(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFriendshipNotFound
	}
	if err != nil {
		return nil, shapeErr("getting friendship", err)
	}
	return f, nil
}

// Create inserts a new friendship under the supplied id. The row always
// starts pending; any accepted flag a caller smuggled into the payload is
// ignored.
func (s *FriendshipStore) Create(ctx context.Context, id uuid.UUID, params models.CreateFriendshipParams) (*models.Friendship, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE (requester_id = $1 AND addressee_id = $2)
			   OR (requester_id = $2 AND addressee_id = $1)
		)`,
		params.RequesterID, params.AddresseeID,
	).Scan(&exists)
	if err != nil {
		return nil, storageErr("checking friendship existence", err)
	}
	if exists {
		return nil, ErrFriendshipExists
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO friendships (id, requester_id, addressee_id, accepted)
		 VALUES ($1, $2, $3, false)`,
		id, params.RequesterID, params.AddresseeID,
	)
	if err != nil {
		return nil, storageErr("creating friendship", err)
	}

	return s.GetByID(ctx, id)
}

// Accept flips the friendship to accepted. Accepting an already-accepted
// friendship succeeds and re-returns the full record. The update is a single
// conditional statement, so concurrent accepts race to the same end state.
func (s *FriendshipStore) Accept(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	result, err := s.db.Exec(ctx,
		"UPDATE friendships SET accepted = true WHERE id = $1",
		id,
	)
	if err != nil {
		return nil, storageErr("accepting friendship", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrFriendshipNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete removes the friendship row; it serves both declining a pending
// request and removing an accepted friend.
func (s *FriendshipStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM friendships WHERE id = $1",
		id,
	)
	if err != nil {
		return storageErr("deleting friendship", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}
