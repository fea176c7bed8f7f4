package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mizusaki/kaiwa/backend/internal/middleware"
	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
	chatService "github.com/mizusaki/kaiwa/backend/internal/service/chat"
	"github.com/mizusaki/kaiwa/backend/pkg/utils"
)

// Service is the message service surface this handler exposes.
type Service interface {
	Post(ctx context.Context, roomID, user, text string) (chat.Message, error)
	List(ctx context.Context, roomID string, limit int) ([]chat.Message, error)
}

// Handler 消息相关的HTTP处理器
type Handler struct {
	svc Service
}

// New 创建消息处理器
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册消息相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/messages", h.handlePost)
	r.Get("/rooms/{roomID}/messages", h.handleList)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RoomID string `json:"roomId"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.Post(r.Context(), payload.RoomID, middleware.Username(r.Context()), payload.Text)
	if err != nil {
		if errors.Is(err, chatService.ErrRoomRequired) || errors.Is(err, chatService.ErrTextLength) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to post message")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, msg)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	messages, err := h.svc.List(r.Context(), chi.URLParam(r, "roomID"), limit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}
