// Package gateway translates named client events into relationship store
// calls and emits named result events back on the same connection. One
// Gateway serves one connection and one authenticated user; it holds no other
// mutable state, so concurrent events for the same connection need no
// coordination beyond the store's own per-row atomicity.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mpetersen/taskhive/internal/logging"
	"github.com/mpetersen/taskhive/internal/models"
	"github.com/mpetersen/taskhive/internal/relation"
	"github.com/mpetersen/taskhive/internal/services"
	"github.com/mpetersen/taskhive/internal/validate"
)

// Inbound event names. Every inbound name pairs with ":ok" and ":err"
// outbound names.
const (
	EventFriendsList    = "friends:list"
	EventFriendsRequest = "friends:request"
	EventFriendsAccept  = "friends:accept"
	EventFriendsRemove  = "friends:remove"
	EventSharesList     = "shares:list"
	EventSharesRequest  = "shares:request"
	EventSharesAccept   = "shares:accept"
	EventSharesRemove   = "shares:remove"
)

// Emitter is the outbound half of the connection as the gateway sees it.
type Emitter interface {
	Emit(event string, payload any) error
}

type successPayload struct {
	Success bool `json:"success"`
	Result  any  `json:"result"`
}

type errorPayload struct {
	Message string                `json:"message"`
	Error   string                `json:"error,omitempty"`
	Details []validate.FieldError `json:"details,omitempty"`
}

type Gateway struct {
	userID  uuid.UUID
	friends services.FriendshipStoreInterface
	shares  services.TaskAssignmentStoreInterface
	emitter Emitter
	logger  *logging.Logger
}

func New(userID uuid.UUID, friends services.FriendshipStoreInterface, shares services.TaskAssignmentStoreInterface, emitter Emitter, logger *logging.Logger) *Gateway {
	return &Gateway{
		userID:  userID,
		friends: friends,
		shares:  shares,
		emitter: emitter,
		logger:  logger.WithField("user_id", userID.String()),
	}
}

// HandleEvent routes one inbound frame. Unknown event names are dropped with
// a debug log; a domain failure only fails the event, never the connection.
func (g *Gateway) HandleEvent(ctx context.Context, event string, data json.RawMessage) {
	switch event {
	case EventFriendsList:
		g.listFriends(ctx, data)
	case EventFriendsRequest:
		g.requestFriend(ctx, data)
	case EventFriendsAccept:
		g.acceptFriend(ctx, data)
	case EventFriendsRemove:
		g.removeFriend(ctx, data)
	case EventSharesList:
		g.listShares(ctx, data)
	case EventSharesRequest:
		g.requestShare(ctx, data)
	case EventSharesAccept:
		g.acceptShare(ctx, data)
	case EventSharesRemove:
		g.removeShare(ctx, data)
	default:
		g.logger.WithField("event", event).Debug("unknown gateway event")
	}
}

// emit sends on a best-effort basis. A closed connection is not an error
// worth surfacing; the in-flight store call already completed.
func (g *Gateway) emit(event string, payload any) {
	if err := g.emitter.Emit(event, payload); err != nil {
		g.logger.WithFields(map[string]any{
			"event": event,
			"error": err.Error(),
		}).Debug("dropping event for closed connection")
	}
}

func (g *Gateway) emitValidation(event string, errs []validate.FieldError) {
	g.emit(event, errorPayload{Message: "validation failed", Details: errs})
}

func (g *Gateway) emitStoreError(event string, err error) {
	g.emit(event, errorPayload{Message: "request failed", Error: err.Error()})
}

// listFilter is the inbound filter shape shared by both list events. Ids
// arrive as strings, accepted as a bool or a bool-ish string.
type listFilter struct {
	PartyA   string `json:"party_a"`
	PartyB   string `json:"party_b"`
	Accepted any    `json:"accepted"`
}

// parseListFilter validates the raw filter. When the caller names no parties
// at all, both sides default to the connected user, which lists everything
// the user participates in regardless of role.
func (g *Gateway) parseListFilter(data json.RawMessage) (relation.Filter, []validate.FieldError) {
	var payload listFilter
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return relation.Filter{}, []validate.FieldError{
				{Field: "data", Message: "payload is not an object", Code: validate.CodeRequired},
			}
		}
	}

	var result validate.Result
	filter := relation.Filter{
		PartyA:   result.OptionalUUID("party_a", payload.PartyA),
		PartyB:   result.OptionalUUID("party_b", payload.PartyB),
		Accepted: result.OptionalBool("accepted", payload.Accepted),
	}
	if !result.Valid() {
		return relation.Filter{}, result.Errors()
	}

	if filter.PartyA == nil && filter.PartyB == nil {
		self := g.userID
		filter.PartyA = &self
		filter.PartyB = &self
	}
	return filter, nil
}

func (g *Gateway) listFriends(ctx context.Context, data json.RawMessage) {
	filter, errs := g.parseListFilter(data)
	if errs != nil {
		g.emitValidation(EventFriendsList+":err", errs)
		return
	}

	friendships, err := g.friends.List(ctx, filter)
	if err != nil {
		g.emitStoreError(EventFriendsList+":err", err)
		return
	}
	if len(friendships) == 0 {
		g.emit(EventFriendsList+":err", errorPayload{Message: "no friend requests found"})
		return
	}
	g.emit(EventFriendsList+":ok", friendships)
}

func (g *Gateway) requestFriend(ctx context.Context, data json.RawMessage) {
	var payload struct {
		AddresseeID string `json:"addressee_id"`
	}
	_ = json.Unmarshal(data, &payload)

	var result validate.Result
	addresseeID := result.RequireUUID("addressee_id", payload.AddresseeID)
	if addresseeID == g.userID {
		result.Add("addressee_id", "cannot send a friend request to yourself", validate.CodeInvalidUUID)
	}
	if !result.Valid() {
		g.emitValidation(EventFriendsRequest+":err", result.Errors())
		return
	}

	friendship, err := g.friends.Create(ctx, uuid.New(), models.CreateFriendshipParams{
		RequesterID: g.userID,
		AddresseeID: addresseeID,
	})
	if err != nil {
		g.emitStoreError(EventFriendsRequest+":err", err)
		return
	}
	g.emit(EventFriendsRequest+":ok", successPayload{Success: true, Result: friendship})
}

func (g *Gateway) acceptFriend(ctx context.Context, data json.RawMessage) {
	id, errs := parseID(data)
	if errs != nil {
		g.emitValidation(EventFriendsAccept+":err", errs)
		return
	}

	friendship, err := g.friends.Accept(ctx, id)
	if err != nil {
		g.emitStoreError(EventFriendsAccept+":err", err)
		return
	}
	g.emit(EventFriendsAccept+":ok", successPayload{Success: true, Result: friendship})
}

func (g *Gateway) removeFriend(ctx context.Context, data json.RawMessage) {
	id, errs := parseID(data)
	if errs != nil {
		g.emitValidation(EventFriendsRemove+":err", errs)
		return
	}

	if err := g.friends.Delete(ctx, id); err != nil {
		g.emitStoreError(EventFriendsRemove+":err", err)
		return
	}
	g.emit(EventFriendsRemove+":ok", successPayload{Success: true, Result: true})
}

func (g *Gateway) listShares(ctx context.Context, data json.RawMessage) {
	filter, errs := g.parseListFilter(data)
	if errs != nil {
		g.emitValidation(EventSharesList+":err", errs)
		return
	}

	assignments, err := g.shares.List(ctx, filter)
	if err != nil {
		g.emitStoreError(EventSharesList+":err", err)
		return
	}
	if len(assignments) == 0 {
		g.emit(EventSharesList+":err", errorPayload{Message: "no shared tasks found"})
		return
	}
	g.emit(EventSharesList+":ok", assignments)
}

func (g *Gateway) requestShare(ctx context.Context, data json.RawMessage) {
	var payload struct {
		TaskID     string `json:"task_id"`
		AssigneeID string `json:"assignee_id"`
	}
	_ = json.Unmarshal(data, &payload)

	var result validate.Result
	taskID := result.RequireUUID("task_id", payload.TaskID)
	assigneeID := result.RequireUUID("assignee_id", payload.AssigneeID)
	if assigneeID == g.userID {
		result.Add("assignee_id", "cannot share a task with yourself", validate.CodeInvalidUUID)
	}
	if !result.Valid() {
		g.emitValidation(EventSharesRequest+":err", result.Errors())
		return
	}

	assignment, err := g.shares.Create(ctx, uuid.New(), models.CreateTaskAssignmentParams{
		TaskID:     taskID,
		OwnerID:    g.userID,
		AssigneeID: assigneeID,
	})
	if err != nil {
		g.emitStoreError(EventSharesRequest+":err", err)
		return
	}
	g.emit(EventSharesRequest+":ok", successPayload{Success: true, Result: assignment})
}

func (g *Gateway) acceptShare(ctx context.Context, data json.RawMessage) {
	id, errs := parseID(data)
	if errs != nil {
		g.emitValidation(EventSharesAccept+":err", errs)
		return
	}

	assignment, err := g.shares.Accept(ctx, id)
	if err != nil {
		g.emitStoreError(EventSharesAccept+":err", err)
		return
	}
	g.emit(EventSharesAccept+":ok", successPayload{Success: true, Result: assignment})
}

func (g *Gateway) removeShare(ctx context.Context, data json.RawMessage) {
	id, errs := parseID(data)
	if errs != nil {
		g.emitValidation(EventSharesRemove+":err", errs)
		return
	}

	if err := g.shares.Delete(ctx, id); err != nil {
		g.emitStoreError(EventSharesRemove+":err", err)
		return
	}
	g.emit(EventSharesRemove+":ok", successPayload{Success: true, Result: true})
}

func parseID(data json.RawMessage) (uuid.UUID, []validate.FieldError) {
	var payload struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(data, &payload)

	var result validate.Result
	id := result.RequireUUID("id", payload.ID)
	if !result.Valid() {
		return uuid.Nil, result.Errors()
	}
	return id, nil
}
