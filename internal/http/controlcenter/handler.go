// Package controlcenter serves the service and package configuration that
// the booking form is built from.
package controlcenter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/heritage/internal/http/response"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type Handler struct {
	store *ledger.Store
}

func New(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.store.Config())
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	cfg, err := response.Decode[ledger.Configuration](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.store.UpdateConfig(r.Context(), cfg)

	response.JSON(w, http.StatusOK, h.store.Config())
}
