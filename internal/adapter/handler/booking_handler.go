package handler

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/services"
)

const maxUploadBytes = 10 << 20

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// CreateBooking accepts a JSON body, or multipart form data with the
// booking JSON in the "booking" field and an optional "photo" file.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		h.createMultipart(w, r)
		return
	}

	var b domain.Booking
	if err := decodeJSON(r, &b); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	res, err := h.svc.Create(r.Context(), b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *BookingHandler) createMultipart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var b domain.Booking
	if err := json.Unmarshal([]byte(r.FormValue("booking")), &b); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid booking field")
		return
	}

	var upload *services.PhotoUpload
	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		upload = &services.PhotoUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	case err != http.ErrMissingFile:
		writeMessage(w, http.StatusBadRequest, "invalid photo upload")
		return
	}

	res, err := h.svc.CreateWithPhoto(r.Context(), b, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	bookings, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Distinct(w http.ResponseWriter, r *http.Request) {
	field, err := domain.ParseDistinctField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	values, err := h.svc.Distinct(r.Context(), field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var patch domain.BookingPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid json body")
		return
	}

	res, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func parseFilter(r *http.Request) (domain.BookingFilter, error) {
	q := r.URL.Query()
	f := domain.BookingFilter{
		Guest:     q.Get("guest"),
		Owner:     q.Get("owner"),
		Venue:     q.Get("venue"),
		Phone:     q.Get("phone"),
		Status:    domain.BookingStatus(q.Get("status")),
		Occasion:  q.Get("occasion"),
		PartnerID: q.Get("partner"),
		TotalOp:   domain.AmountOp(q.Get("totalOp")),
	}

	if f.Status != "" && !f.Status.Valid() {
		return f, domain.NewValidationError("status", "unknown status "+string(f.Status))
	}

	if raw := q.Get("total"); raw != "" {
		total, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, domain.NewValidationError("total", "must be a number")
		}
		f.Total = &total
	}

	if raw := q.Get("from"); raw != "" {
		from, err := domain.ParseInstant(raw)
		if err != nil {
			return f, err
		}
		f.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, err := domain.ParseInstant(raw)
		if err != nil {
			return f, err
		}
		// A bare date covers the whole day.
		if _, perr := time.Parse("2006-01-02", raw); perr == nil {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}

	return f, nil
}
