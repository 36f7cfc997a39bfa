package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/frontdeskai/webchat-service/internal/http/middleware"
	"github.com/frontdeskai/webchat-service/internal/leads"
	"github.com/frontdeskai/webchat-service/internal/webchat"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	WebchatHandler     *webchat.Handler
	LeadsHandler       *leads.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// ChatRateLimit caps unauthenticated chat requests per second per IP.
	// Zero disables rate limiting.
	ChatRateLimit float64
	ChatRateBurst int
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

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.WebchatHandler != nil {
		r.Route("/chat", func(chat chi.Router) {
			if cfg.ChatRateLimit > 0 {
				chat.Use(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst))
			}
			chat.Get("/ws", cfg.WebchatHandler.HandleWebSocket)
			chat.Post("/message", cfg.WebchatHandler.HandleMessage)
			chat.Post("/action", cfg.WebchatHandler.HandleAction)
			chat.Get("/history", cfg.WebchatHandler.HandleHistory)
		})
	}

	if cfg.LeadsHandler != nil {
		r.Route("/leads", func(l chi.Router) {
			l.Post("/", cfg.LeadsHandler.CreateLead)
			l.Get("/{id}", cfg.LeadsHandler.GetLead)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": "webchat"})
}
