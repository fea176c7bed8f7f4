package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	middlewarePkg "github.com/mizusaki/kaiwa/backend/internal/middleware"
	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
	chatService "github.com/mizusaki/kaiwa/backend/internal/service/chat"
)

type fakeService struct {
	posted    []chat.Message
	listLimit int
	messages  []chat.Message
}

func (f *fakeService) Post(_ context.Context, roomID, user, text string) (chat.Message, error) {
	if roomID == "" {
		return chat.Message{}, chatService.ErrRoomRequired
	}
	if text == "" || len([]rune(text)) > 500 {
		return chat.Message{}, chatService.ErrTextLength
	}
	msg := chat.Message{ID: "m1", RoomID: roomID, User: user, Text: text}
	f.posted = append(f.posted, msg)
	return msg, nil
}

func (f *fakeService) List(_ context.Context, _ string, limit int) ([]chat.Message, error) {
	f.listLimit = limit
	return f.messages, nil
}

func setupRouter(svc Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middlewarePkg.Identity)
	New(svc).RegisterRoutes(r)
	return r
}

func TestPostMessage(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	payload, _ := json.Marshal(map[string]string{"roomId": "r1", "text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(payload))
	req.Header.Set("X-Username", "alice")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if len(svc.posted) != 1 || svc.posted[0].User != "alice" {
		t.Fatalf("expected message posted as alice, got %+v", svc.posted)
	}
}

func TestPostMessageMissingRoom(t *testing.T) {
	r := setupRouter(&fakeService{})

	payload, _ := json.Marshal(map[string]string{"text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestListMessagesCustomLimit(t *testing.T) {
	svc := &fakeService{messages: []chat.Message{}}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/rooms/r1/messages?limit=10", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if svc.listLimit != 10 {
		t.Fatalf("expected limit 10, got %d", svc.listLimit)
	}
}

func TestListMessagesRejectsBadLimit(t *testing.T) {
	r := setupRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/rooms/r1/messages?limit=abc", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
