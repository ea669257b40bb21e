// Package httpapi exposes the transcription and chat services over REST.
package httpapi

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stupiduntilnot/voxchat/internal/chat"
	"github.com/stupiduntilnot/voxchat/internal/transcribe"
)

// Handler bundles the services behind the REST surface.
type Handler struct {
	DB          *sql.DB
	Chat        *chat.Service
	Transcribe  *transcribe.Service
	FrontendDir string
}

// NewRouter builds the full route tree with request logging, panic recovery
// and CORS. The frontend is mounted last so it cannot shadow API routes.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/api", h.apiRoot)

	r.Route("/api/v1/transcriptions", func(r chi.Router) {
		r.Post("/", h.createTranscription)
		r.Post("/real-time", h.realTimeTranscription)
		r.Get("/", h.listTranscriptions)
		r.Get("/{id}", h.getTranscription)
	})

	r.Route("/api/v1/chat", func(r chi.Router) {
		r.Post("/", h.createChatMessage)
		r.Get("/history/{id}", h.chatHistory)
	})

	if h.FrontendDir != "" {
		if info, err := os.Stat(h.FrontendDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(h.FrontendDir)))
		}
	}

	return r
}

func (h *Handler) apiRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Audio Transcription and Chat API",
	})
}
