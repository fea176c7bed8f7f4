// Package room implements room reads and the active-rooms pipeline: resolving
// the set of rooms a user has posted into, then batch-fetching their records.
package room

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
	"github.com/mizusaki/kaiwa/backend/internal/repository"
)

var (
	ErrNameRequired = errors.New("room name is required")
	ErrRoomNotFound = errors.New("room not found")
	ErrUnauthorized = errors.New("authenticated users only")
)

// activeRoomScanLimit caps how many of a user's messages stage 1 scans.
const activeRoomScanLimit = 1000

// sentinelRoomID is a key guaranteed to miss. Batch-lookup primitives reject
// an empty key list, so the empty-set case probes this key instead and
// discards the outcome.
const sentinelRoomID = "dummy"

// Store is the room storage this service consumes.
type Store interface {
	CreateRoom(ctx context.Context, room chat.Room) error
	GetRoom(ctx context.Context, id string) (chat.Room, error)
	RoomsByOwner(ctx context.Context, owner string) ([]chat.Room, error)
	RoomsByIDs(ctx context.Context, ids []string) ([]chat.Room, error)
}

// MessageIndex is the by-user message lookup stage 1 consumes.
type MessageIndex interface {
	RoomIDsByAuthor(ctx context.Context, author string, limit int) ([]string, error)
}

// Service exposes room operations over the two storage ports.
type Service struct {
	rooms    Store
	messages MessageIndex
}

// NewService wires the service to its storage.
func NewService(rooms Store, messages MessageIndex) *Service {
	return &Service{rooms: rooms, messages: messages}
}

// Create provisions a room owned by the caller. Anonymous callers own rooms
// as "guest", matching message authorship.
func (s *Service) Create(ctx context.Context, name, owner string) (chat.Room, error) {
	if name == "" {
		return chat.Room{}, ErrNameRequired
	}
	if owner == "" {
		owner = "guest"
	}

	room := chat.Room{
		ID:        uuid.NewString(),
		Name:      name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		return chat.Room{}, err
	}
	return room, nil
}

// Get retrieves a room by id.
func (s *Service) Get(ctx context.Context, id string) (chat.Room, error) {
	room, err := s.rooms.GetRoom(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return chat.Room{}, ErrRoomNotFound
	}
	return room, err
}

// Owned returns the rooms the caller owns. Requires an identity.
func (s *Service) Owned(ctx context.Context, username string) ([]chat.Room, error) {
	if username == "" {
		return nil, ErrUnauthorized
	}
	return s.rooms.RoomsByOwner(ctx, username)
}

// ActiveRooms runs the two-stage pipeline: resolve the caller's active room
// id set, then batch-fetch the records. The set is threaded directly from
// stage 1 into stage 2 within this one call.
func (s *Service) ActiveRooms(ctx context.Context, username string) ([]chat.Room, error) {
	ids, err := s.ActiveRoomIDs(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.RoomsByIDSet(ctx, ids)
}

// ActiveRoomIDs is stage 1: the distinct set of room ids the user has posted
// into, over at most activeRoomScanLimit of their messages. Order is not
// significant. Requires an identity.
func (s *Service) ActiveRoomIDs(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, ErrUnauthorized
	}

	roomIDs, err := s.messages.RoomIDsByAuthor(ctx, username, activeRoomScanLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(roomIDs))
	ids := []string{}
	for _, id := range roomIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// RoomsByIDSet is stage 2: resolve an id set into room records in one batched
// lookup. Records for ids that no longer exist are simply absent; no ordering
// is promised. An empty set still issues a structurally valid lookup (the
// sentinel probe) and returns an empty list regardless of that call's outcome.
func (s *Service) RoomsByIDSet(ctx context.Context, ids []string) ([]chat.Room, error) {
	if len(ids) == 0 {
		_, _ = s.rooms.GetRoom(ctx, sentinelRoomID)
		return []chat.Room{}, nil
	}
	return s.rooms.RoomsByIDs(ctx, ids)
}
