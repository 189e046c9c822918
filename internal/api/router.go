package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/burrowlabs/bunnyhit-go/internal/api/apierr"
	"github.com/burrowlabs/bunnyhit-go/internal/api/handler"
	"github.com/burrowlabs/bunnyhit-go/internal/api/middleware"
	"github.com/burrowlabs/bunnyhit-go/internal/dependencies/clock"
	"github.com/burrowlabs/bunnyhit-go/internal/services/leaderboard"
	"github.com/burrowlabs/bunnyhit-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	LeaderboardService *leaderboard.Service
	Storage            storage.Storage
	Clock              clock.Clock

	// WebhookSecret enables HMAC signature verification when non-empty
	WebhookSecret string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Anything hitting a known path with the wrong method gets a 405
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	// Create handlers
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	rewardsHandler := handler.NewRewardsHandler(cfg.LeaderboardService)
	webhookHandler := handler.NewWebhookHandler(cfg.Storage, cfg.Clock, cfg.WebhookSecret, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Leaderboard routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Top).Methods(http.MethodGet)
	api.HandleFunc("/scores", leaderboardHandler.Submit).Methods(http.MethodPost)

	// Reward ledger routes (mint placeholder)
	api.HandleFunc("/rewards/{fid}", rewardsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rewards/{fid}/claim", rewardsHandler.Claim).Methods(http.MethodPost)

	// Webhook ingestion (POST only)
	api.HandleFunc("/webhook", webhookHandler.Receive).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}
