// Package httpapi provides the JSON HTTP control API and the websocket
// notification stream.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/osa030/radiola/internal/app/session"
	"github.com/osa030/radiola/internal/infra/config"
	"github.com/osa030/radiola/internal/infra/download"
)

// Server serves the control API for one session.
type Server struct {
	session *session.Manager
	config  *config.Config
	opener  download.Opener
}

// NewServer creates a new API server. opener streams catalog files for
// downloads.
func NewServer(sess *session.Manager, cfg *config.Config, opener download.Opener) *Server {
	return &Server{
		session: sess,
		config:  cfg,
		opener:  opener,
	}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT"},
		AllowedHeaders: []string{"Accept", "Content-Type", ControlTokenHeader},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/notifications", s.handleNotifications)
		r.Get("/download/{index}", s.handleDownload)

		r.Group(func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))

			r.Get("/catalog", s.handleCatalog)
			r.Get("/state", s.handleState)
			r.Get("/view", s.handleView)
			r.Get("/share", s.handleShare)

			r.Group(func(r chi.Router) {
				r.Use(RequireControlToken(s.config))

				r.Put("/view", s.handleSetView)
				r.Post("/select/{index}", s.handleSelect)
				r.Post("/activate/{index}", s.handleActivate)
				r.Post("/toggle", s.handleToggle)
				r.Post("/next", s.handleNext)
				r.Post("/previous", s.handlePrevious)
				r.Post("/seek", s.handleSeek)
				r.Post("/volume", s.handleVolume)
				r.Post("/mute", s.handleMute)
				r.Post("/link", s.handleLink)
			})
		})
	})

	return r
}
