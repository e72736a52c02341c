package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Home)
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Post("/categories/{key}", h.SelectCategory)
		r.Post("/options/{label}", h.SelectOption)
		r.Post("/answer", h.SubmitAnswer)
		r.Post("/reset", h.Reset)
		r.Post("/user", h.SetUser)
		r.Get("/history", h.History)
		r.Get("/history/{id}", h.HistoryEntry)
	})
	return r
}
