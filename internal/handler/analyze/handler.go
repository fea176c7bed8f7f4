package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mizusaki/kaiwa/backend/internal/middleware"
	model "github.com/mizusaki/kaiwa/backend/internal/model/analysis"
	analysisService "github.com/mizusaki/kaiwa/backend/internal/service/analysis"
	"github.com/mizusaki/kaiwa/backend/pkg/utils"
)

// maxRequestTextLen bounds the analyze request at the surface; the adapter
// applies its own clipping further down.
const maxRequestTextLen = 1000

// Analyzer is the enrichment surface this handler exposes.
type Analyzer interface {
	Analyze(ctx context.Context, in analysisService.Input) (model.Result, error)
}

// Handler 情感分析的HTTP处理器
type Handler struct {
	svc Analyzer
}

// New 创建分析处理器
func New(svc Analyzer) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册分析相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MessageID string `json:"messageId"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.MessageID == "" || payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "messageId and text are required")
		return
	}
	if len([]rune(payload.Text)) > maxRequestTextLen {
		utils.RespondError(w, http.StatusBadRequest, "text must be at most 1000 characters")
		return
	}

	username := middleware.Username(r.Context())
	if username == "" {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.svc.Analyze(r.Context(), analysisService.Input{
		MessageID: payload.MessageID,
		Text:      payload.Text,
		User:      username,
	})
	if err != nil {
		if analysisService.IsValidation(err) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var failed *analysisService.FailedError
		if errors.As(err, &failed) {
			log.Printf("[analyze] enrichment failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, failed.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
