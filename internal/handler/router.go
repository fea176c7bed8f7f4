package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analyzeHandler "github.com/mizusaki/kaiwa/backend/internal/handler/analyze"
	chatHandler "github.com/mizusaki/kaiwa/backend/internal/handler/chat"
	roomHandler "github.com/mizusaki/kaiwa/backend/internal/handler/room"
	middlewarePkg "github.com/mizusaki/kaiwa/backend/internal/middleware"
	"github.com/mizusaki/kaiwa/backend/pkg/utils"
)

// Pinger reports storage connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires HTTP routes to core services.
func NewRouter(rooms roomHandler.Service, messages chatHandler.Service, analyzer analyzeHandler.Analyzer, db Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	r.Use(middlewarePkg.Identity)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if db != nil {
			if err := db.Ping(req.Context()); err != nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "database unreachable")
				return
			}
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		roomHandler.New(rooms).RegisterRoutes(api)
		chatHandler.New(messages).RegisterRoutes(api)

		if analyzer != nil {
			analyzeHandler.New(analyzer).RegisterRoutes(api)
		} else {
			api.Post("/analyze", func(w http.ResponseWriter, _ *http.Request) {
				utils.RespondError(w, http.StatusServiceUnavailable, "sentiment analysis unavailable")
			})
		}
	})

	return r
}
