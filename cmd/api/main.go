package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mizusaki/kaiwa/backend/internal/audit"
	"github.com/mizusaki/kaiwa/backend/internal/config"
	"github.com/mizusaki/kaiwa/backend/internal/handler"
	analyzeHandler "github.com/mizusaki/kaiwa/backend/internal/handler/analyze"
	"github.com/mizusaki/kaiwa/backend/internal/repository"
	analysisservice "github.com/mizusaki/kaiwa/backend/internal/service/analysis"
	chatservice "github.com/mizusaki/kaiwa/backend/internal/service/chat"
	"github.com/mizusaki/kaiwa/backend/internal/service/classify"
	roomservice "github.com/mizusaki/kaiwa/backend/internal/service/room"
	"github.com/mizusaki/kaiwa/backend/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	telemetry.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := repository.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	store := repository.NewStore(pool)
	defer store.Close()

	roomSvc := roomservice.NewService(store, store)
	chatSvc := chatservice.NewService(store)

	// Pick the classification backend: the HTTP NLP service when configured,
	// else the Ark LLM, else run without enrichment.
	var analyzer analyzeHandler.Analyzer
	if client := newClassifierClient(ctx, cfg); client != nil {
		adapter := classify.NewAdapter(client)
		analyzer = analysisservice.NewService(adapter, store, audit.NewSlogLogger(nil), analysisservice.Config{
			BlockList: cfg.Moderation.BlockList,
		})
	} else {
		log.Println("no classification backend configured, sentiment analysis disabled")
	}

	go store.StartExpiryJob(ctx, cfg.Database.ExpiryInterval)

	router := handler.NewRouter(roomSvc, chatSvc, analyzer, store)

	startServer(ctx, cfg.Server, router)
}

func newClassifierClient(ctx context.Context, cfg *config.Config) classify.Client {
	if cfg.NLP.Enabled() {
		log.Println("using HTTP NLP classification backend")
		return classify.NewHTTPClient(cfg.NLP.BaseURL, cfg.NLP.APIKey, cfg.NLP.Timeout)
	}

	if cfg.Ark.Enabled() {
		chatModel, err := cfg.Ark.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize Ark model: %v", err)
			return nil
		}
		client, err := classify.NewLLMClient(ctx, chatModel)
		if err != nil {
			log.Printf("warning: failed to build LLM classifier: %v", err)
			return nil
		}
		log.Println("using LLM classification backend")
		return client
	}

	return nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr, err := serverCfg.Addr()
	if err != nil {
		log.Fatalf("invalid server configuration: %v", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("kaiwa backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
