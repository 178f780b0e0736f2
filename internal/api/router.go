package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "reasonchat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Chat    *ChatHandler
	Session *SessionHandler
	History *HistoryHandler
	Model   *ModelHandler
	Limiter *IPRateLimiter
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP) // RemoteAddr must be the client IP before rate limiting.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Stateless chat stream. No timeout middleware; the handler bounds the stream itself.
	r.With(h.Limiter.Middleware).Post("/api/chat", h.Chat.HandleChat)

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Models ---
			r.Get("/models", h.Model.HandleListModels)

			// --- Sessions ---
			r.Get("/sessions", h.Session.HandleListSessions)
			r.Post("/sessions", h.Session.HandleCreateSession)
			r.Post("/sessions/ensure", h.Session.HandleEnsureSession)
			r.Get("/sessions/current", h.Session.HandleGetCurrentSession)
			r.Put("/sessions/current", h.Session.HandleSetCurrentSession)
			r.Get("/sessions/{sessionID}", h.Session.HandleGetSession)
			r.Patch("/sessions/{sessionID}", h.Session.HandleUpdateSession)
			r.Delete("/sessions/{sessionID}", h.Session.HandleDeleteSession)
			r.Post("/sessions/{sessionID}/messages", h.Session.HandleAddMessage)
			r.Patch("/sessions/{sessionID}/messages/{messageID}", h.Session.HandleUpdateMessage)

			// --- History ---
			r.Get("/history/export", h.History.HandleExport)
			r.Post("/history/import", h.History.HandleImport)
			r.Delete("/history", h.History.HandleClear)
		})

		// Streaming routes must NOT have a timeout middleware.
		r.Group(func(r chi.Router) {
			r.Use(h.Limiter.Middleware)
			r.Post("/sessions/{sessionID}/chat", h.Chat.HandleSessionChat)
		})
	})

	return r
}
