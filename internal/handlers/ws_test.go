package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mpetersen/taskhive/internal/models"
	"github.com/mpetersen/taskhive/internal/relation"
	"github.com/mpetersen/taskhive/internal/services"
	"github.com/mpetersen/taskhive/internal/testutil"
)

type stubFriendshipStore struct {
	ListFunc func(ctx context.Context, filter relation.Filter) ([]models.Friendship, error)
}

func (s *stubFriendshipStore) List(ctx context.Context, filter relation.Filter) ([]models.Friendship, error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, filter)
	}
	return []models.Friendship{}, nil
}

func (s *stubFriendshipStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	return nil, services.ErrFriendshipNotFound
}

func (s *stubFriendshipStore) Create(ctx context.Context, id uuid.UUID, params models.CreateFriendshipParams) (*models.Friendship, error) {
	return nil, services.ErrFriendshipExists
}

func (s *stubFriendshipStore) Accept(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	return nil, services.ErrFriendshipNotFound
}

func (s *stubFriendshipStore) Delete(ctx context.Context, id uuid.UUID) error {
	return services.ErrFriendshipNotFound
}

type stubAssignmentStore struct{}

func (s *stubAssignmentStore) List(ctx context.Context, filter relation.Filter) ([]models.TaskAssignment, error) {
	return []models.TaskAssignment{}, nil
}

func (s *stubAssignmentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error) {
	return nil, services.ErrAssignmentNotFound
}

func (s *stubAssignmentStore) Create(ctx context.Context, id uuid.UUID, params models.CreateTaskAssignmentParams) (*models.TaskAssignment, error) {
	return nil, services.ErrAssignmentExists
}

func (s *stubAssignmentStore) Accept(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error) {
	return nil, services.ErrAssignmentNotFound
}

func (s *stubAssignmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return services.ErrAssignmentNotFound
}

func TestWebSocketHandler_RequiresAuth(t *testing.T) {
	handler := NewWebSocketHandler(&stubFriendshipStore{}, &stubAssignmentStore{}, nil)

	req := testutil.NewTestRequest(http.MethodGet, "/ws", nil)
	rr := httptest.NewRecorder()
	handler.Connect(rr, req)

	testutil.AssertStatusCode(t, rr, http.StatusUnauthorized)
}

func TestWebSocketHandler_EventRoundTrip(t *testing.T) {
	userID := uuid.New()
	friends := &stubFriendshipStore{
		ListFunc: func(ctx context.Context, filter relation.Filter) ([]models.Friendship, error) {
			return []models.Friendship{{ID: uuid.New(), Requester: models.Participant{ID: userID}}}, nil
		},
	}
	handler := NewWebSocketHandler(friends, &stubAssignmentStore{}, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetUserInContext(r.Context(), &models.User{ID: userID})
		handler.Connect(w, r.WithContext(ctx))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"event": "friends:list"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("unmarshaling frame: %v", err)
	}
	if env.Event != "friends:list:ok" {
		t.Fatalf("expected friends:list:ok, got %q (%s)", env.Event, env.Data)
	}
}
