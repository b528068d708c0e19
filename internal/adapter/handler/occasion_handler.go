package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/services"
)

type OccasionHandler struct {
	svc *services.OccasionService
}

func NewOccasionHandler(svc *services.OccasionService) *OccasionHandler {
	return &OccasionHandler{svc: svc}
}

func (h *OccasionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var o domain.Occasion
	if err := decodeJSON(r, &o); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.svc.Create(r.Context(), o)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *OccasionHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Occasion{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OccasionHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	o, err := h.svc.Rename(r.Context(), chi.URLParam(r, "id"), body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OccasionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
