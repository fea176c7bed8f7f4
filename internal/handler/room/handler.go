package room

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mizusaki/kaiwa/backend/internal/middleware"
	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
	roomService "github.com/mizusaki/kaiwa/backend/internal/service/room"
	"github.com/mizusaki/kaiwa/backend/pkg/utils"
)

// Service is the room service surface this handler exposes.
type Service interface {
	Create(ctx context.Context, name, owner string) (chat.Room, error)
	Get(ctx context.Context, id string) (chat.Room, error)
	Owned(ctx context.Context, username string) ([]chat.Room, error)
	ActiveRooms(ctx context.Context, username string) ([]chat.Room, error)
}

// Handler 房间相关的HTTP处理器
type Handler struct {
	svc Service
}

// New 创建房间处理器
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册房间相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/rooms", h.handleCreate)
	r.Get("/rooms/owned", h.handleOwned)
	r.Get("/rooms/active", h.handleActive)
	r.Get("/rooms/{roomID}", h.handleGet)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.svc.Create(r.Context(), payload.Name, middleware.Username(r.Context()))
	if err != nil {
		if errors.Is(err, roomService.ErrNameRequired) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to create room")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, room)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	room, err := h.svc.Get(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		if errors.Is(err, roomService.ErrRoomNotFound) {
			utils.RespondError(w, http.StatusNotFound, "room not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load room")
		return
	}

	utils.RespondJSON(w, http.StatusOK, room)
}

func (h *Handler) handleOwned(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.Owned(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		respondListError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rooms)
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ActiveRooms(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		respondListError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rooms)
}

func respondListError(w http.ResponseWriter, err error) {
	if errors.Is(err, roomService.ErrUnauthorized) {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, "failed to load rooms")
}
