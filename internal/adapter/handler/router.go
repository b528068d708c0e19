package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Calendar   *CalendarHandler
	Bookings   *BookingHandler
	Occasions  *OccasionHandler
	Metrics    http.Handler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	for _, mw := range cfg.Middleware {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/calendar", func(r chi.Router) {
		c := cfg.Calendar
		r.Get("/", c.Catalogue)
		r.Get("/states", c.ListStates)
		r.Get("/availability", c.CatalogueAvailability)
		r.Get("/{state}", c.GetState)
		r.Get("/{state}/places", c.ListPlaces)
		r.Get("/{state}/{place}/farms", c.ListFarms)
		r.Get("/{state}/{place}/farms/{date}", c.AvailableByDate)
		r.Get("/{state}/{place}/available", c.AvailableByRange)
		r.Get("/{state}/{place}/{farm}/events", c.FarmEvents)
		r.Get("/{state}/{place}/{farm}/address", c.FarmAddress)
	})

	r.Route("/api/admin", func(r chi.Router) {
		c := cfg.Calendar
		r.Post("/farms", c.AddFarm)
		r.Delete("/farms/{state}/{place}/{farm}", c.RemoveFarm)
		r.Post("/events", c.AddEvent)
		r.Put("/events", c.UpdateEvent)
		r.Delete("/events/{state}/{place}/{farm}/{eventId}", c.RemoveEvent)
	})

	r.Route("/api/bookings", func(r chi.Router) {
		b := cfg.Bookings
		r.Post("/", b.CreateBooking)
		r.Get("/", b.ListBookings)
		r.Get("/distinct/{field}", b.Distinct)
		r.Get("/{id}", b.GetBooking)
		r.Put("/{id}", b.UpdateBooking)
		r.Delete("/{id}", b.DeleteBooking)
	})

	r.Route("/api/occasions", func(r chi.Router) {
		o := cfg.Occasions
		r.Post("/", o.Create)
		r.Get("/", o.List)
		r.Patch("/{id}", o.Rename)
		r.Delete("/{id}", o.Delete)
	})

	return r
}
