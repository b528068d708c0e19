package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/srgjo27/venue_booking/internal/core/domain"
)

type errorResponse struct {
	Error       string         `json:"error"`
	Segment     domain.Segment `json:"segment,omitempty"`
	Compensated *bool          `json:"compensated,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: err.Error()}

	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) {
		compensated := syncErr.Compensated
		resp.Compensated = &compensated
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		resp.Segment = notFound.Segment
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrConcurrentUpdate):
		// Also when wrapped in a SyncError; compensated in the body reports the rollback.
		status = http.StatusConflict
	case errors.Is(err, domain.ErrSyncFailure):
		status = http.StatusInternalServerError
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		resp.Error = "internal server error"
	}

	writeJSON(w, status, resp)
}
