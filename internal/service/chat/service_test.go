package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
)

type fakeMessageStore struct {
	saved      []chat.Message
	listCalls  []int
	byRoom     map[string][]chat.Message
	lastRoomID string
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, msg chat.Message) error {
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeMessageStore) MessagesByRoom(_ context.Context, roomID string, limit int) ([]chat.Message, error) {
	f.listCalls = append(f.listCalls, limit)
	f.lastRoomID = roomID
	return f.byRoom[roomID], nil
}

func TestPostMessage(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewService(store)

	msg, err := svc.Post(context.Background(), "r1", "alice", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", msg)
	}
	if len(store.saved) != 1 || store.saved[0].RoomID != "r1" {
		t.Fatalf("message not saved: %+v", store.saved)
	}
}

func TestPostMessageAnonymousIsGuest(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewService(store)

	msg, err := svc.Post(context.Background(), "r1", "", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.User != "guest" {
		t.Fatalf("expected guest author, got %q", msg.User)
	}
}

func TestPostMessageTextBounds(t *testing.T) {
	svc := NewService(&fakeMessageStore{})

	if _, err := svc.Post(context.Background(), "r1", "alice", ""); err != ErrTextLength {
		t.Fatalf("expected ErrTextLength for empty text, got %v", err)
	}

	long := strings.Repeat("あ", 501)
	if _, err := svc.Post(context.Background(), "r1", "alice", long); err != ErrTextLength {
		t.Fatalf("expected ErrTextLength for long text, got %v", err)
	}

	// 500 runes exactly is allowed.
	if _, err := svc.Post(context.Background(), "r1", "alice", strings.Repeat("あ", 500)); err != nil {
		t.Fatalf("expected 500-rune text to pass, got %v", err)
	}
}

func TestPostMessageRequiresRoom(t *testing.T) {
	svc := NewService(&fakeMessageStore{})

	if _, err := svc.Post(context.Background(), "", "alice", "hi"); err != ErrRoomRequired {
		t.Fatalf("expected ErrRoomRequired, got %v", err)
	}
}

func TestListDefaultsLimit(t *testing.T) {
	store := &fakeMessageStore{byRoom: map[string][]chat.Message{}}
	svc := NewService(store)

	if _, err := svc.List(context.Background(), "r1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listCalls[0] != defaultListLimit {
		t.Fatalf("expected default limit %d, got %d", defaultListLimit, store.listCalls[0])
	}
}
