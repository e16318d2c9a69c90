package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig lists the handlers to mount. Nil handlers leave their routes
// unregistered.
type RouterConfig struct {
	Auth       *AuthHandler
	Clients    *ClientHandler
	Properties *PropertyHandler
	Colleagues *ColleagueHandler
	Rooms      *RoomHandler
	Calendar   *CalendarHandler
	Overview   *OverviewHandler
	Sessions   SessionValidator
	Logger     *slog.Logger
	Middleware []func(http.Handler) http.Handler
}

// NewRouter builds the chi router. /healthz and POST /sessions are public;
// every other route requires a session when cfg.Sessions is set.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := defaultLogger(cfg.Logger)

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	for _, mw := range cfg.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.Get("/healthz", Health)
	if cfg.Auth != nil {
		r.Post("/sessions", cfg.Auth.CreateSession)
	}

	r.Group(func(r chi.Router) {
		if cfg.Sessions != nil {
			r.Use(RequireSession(cfg.Sessions, logger))
		}

		if cfg.Auth != nil {
			r.Delete("/sessions/current", cfg.Auth.DeleteCurrentSession)
		}
		if cfg.Clients != nil {
			r.Get("/clients", cfg.Clients.List)
			r.Get("/clients/{id}", cfg.Clients.Get)
		}
		if cfg.Properties != nil {
			r.Get("/properties", cfg.Properties.List)
			r.Get("/properties/{id}", cfg.Properties.Get)
		}
		if cfg.Colleagues != nil {
			r.Get("/colleagues", cfg.Colleagues.List)
			r.Get("/colleagues/{id}", cfg.Colleagues.Get)
			r.Get("/colleagues/{id}/stats", cfg.Colleagues.Stats)
		}
		if cfg.Rooms != nil {
			r.Get("/rooms", cfg.Rooms.List)
			r.Get("/rooms/{id}", cfg.Rooms.Get)
			r.Get("/rooms/{id}/bookings", cfg.Rooms.Bookings)
			r.Post("/rooms/{id}/booking-drafts", cfg.Rooms.ValidateDraft)
			r.Get("/booking-slots", cfg.Rooms.Slots)
		}
		if cfg.Calendar != nil {
			r.Get("/calendar", cfg.Calendar.List)
		}
		if cfg.Overview != nil {
			r.Get("/search", cfg.Overview.Search)
			r.Get("/dashboard", cfg.Overview.Dashboard)
		}
	})

	return r
}
