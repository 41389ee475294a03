package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/poshanai/khana-ai-platform/internal/http/middleware"
	"github.com/poshanai/khana-ai-platform/internal/pipeline"
	"github.com/poshanai/khana-ai-platform/internal/session"
	"github.com/poshanai/khana-ai-platform/internal/voice"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	UtteranceHandler   *pipeline.Handler
	SessionHandler     *session.Handler
	VoiceGateway       *voice.Gateway
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1", func(v1 chi.Router) {
		if cfg.UtteranceHandler != nil {
			v1.Mount("/utterances", cfg.UtteranceHandler.Routes())
		}
		if cfg.SessionHandler != nil {
			v1.Mount("/sessions", cfg.SessionHandler.Routes())
		}
		if cfg.VoiceGateway != nil {
			v1.Get("/voice/ws", cfg.VoiceGateway.HandleWebSocket)
		}
	})

	return r
}
