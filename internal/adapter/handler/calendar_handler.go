package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/services"
)

type CalendarHandler struct {
	svc *services.CalendarService
}

func NewCalendarHandler(svc *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func farmRef(r *http.Request) domain.FarmRef {
	return domain.FarmRef{
		State: chi.URLParam(r, "state"),
		Place: chi.URLParam(r, "place"),
		Farm:  chi.URLParam(r, "farm"),
	}
}

func (h *CalendarHandler) Catalogue(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.Catalogue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *CalendarHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListStates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *CalendarHandler) GetState(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.FindByState(r.Context(), chi.URLParam(r, "state"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *CalendarHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListPlaces(r.Context(), chi.URLParam(r, "state"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *CalendarHandler) ListFarms(w http.ResponseWriter, r *http.Request) {
	labels, err := h.svc.ListFarms(r.Context(), chi.URLParam(r, "state"), chi.URLParam(r, "place"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

// AvailableByDate handles GET /{state}/{place}/farms/{date}.
func (h *CalendarHandler) AvailableByDate(w http.ResponseWriter, r *http.Request) {
	q, err := services.ParseDateQuery(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.available(w, r, q)
}

// AvailableByRange handles GET /{state}/{place}/available?start=&end=.
func (h *CalendarHandler) AvailableByRange(w http.ResponseWriter, r *http.Request) {
	q, err := services.ParseRangeQuery(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.available(w, r, q)
}

func (h *CalendarHandler) available(w http.ResponseWriter, r *http.Request, q services.AvailabilityQuery) {
	farms, err := h.svc.AvailableFarms(r.Context(), chi.URLParam(r, "state"), chi.URLParam(r, "place"), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, farms)
}

func (h *CalendarHandler) CatalogueAvailability(w http.ResponseWriter, r *http.Request) {
	q, err := services.ParseRangeQuery(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.svc.AvailableAcrossCatalogue(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *CalendarHandler) FarmEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.FarmEvents(r.Context(), farmRef(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarHandler) FarmAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := h.svc.FarmAddress(r.Context(), farmRef(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

func (h *CalendarHandler) AddFarm(w http.ResponseWriter, r *http.Request) {
	var req services.AddFarmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	farm, err := h.svc.AddFarm(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, farm)
}

func (h *CalendarHandler) RemoveFarm(w http.ResponseWriter, r *http.Request) {
	ref := farmRef(r)
	if err := h.svc.RemoveFarm(r.Context(), ref.State, ref.Place, ref.Farm); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CalendarHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	var req services.EventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	st, err := h.svc.AddEvent(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *CalendarHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req services.EventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	st, err := h.svc.UpdateEvent(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *CalendarHandler) RemoveEvent(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.RemoveEvent(r.Context(), farmRef(r), chi.URLParam(r, "eventId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
