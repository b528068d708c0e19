package services

import (
	"time"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

type OverlapMode int

const (
	// DateMode compares whole UTC days; an event blocks every day from its
	// start date through its end date.
	DateMode OverlapMode = iota
	// RangeMode is the closed-interval test start <= rangeEnd && end >= rangeStart.
	RangeMode
)

type AvailabilityQuery struct {
	Mode  OverlapMode
	Date  time.Time
	Start time.Time
	End   time.Time
}

func DateQuery(day time.Time) AvailabilityQuery {
	return AvailabilityQuery{Mode: DateMode, Date: domain.Day(day)}
}

func RangeQuery(start, end time.Time) (AvailabilityQuery, error) {
	if end.Before(start) {
		return AvailabilityQuery{}, domain.NewValidationError("end", "must not be before start")
	}
	return AvailabilityQuery{Mode: RangeMode, Start: start, End: end}, nil
}

// ParseDateQuery rejects unparsable input instead of treating it as "no
// availability".
func ParseDateQuery(raw string) (AvailabilityQuery, error) {
	day, err := domain.ParseDate(raw)
	if err != nil {
		return AvailabilityQuery{}, err
	}
	return DateQuery(day), nil
}

func ParseRangeQuery(rawStart, rawEnd string) (AvailabilityQuery, error) {
	if rawStart == "" || rawEnd == "" {
		return AvailabilityQuery{}, domain.NewValidationError("start", "start and end are required")
	}
	start, err := domain.ParseInstant(rawStart)
	if err != nil {
		return AvailabilityQuery{}, err
	}
	end, err := domain.ParseInstant(rawEnd)
	if err != nil {
		return AvailabilityQuery{}, err
	}
	return RangeQuery(start, end)
}

func IsFarmFree(farm domain.Farm, q AvailabilityQuery) bool {
	window := domain.Window{Start: q.Start, End: q.End}
	for _, ev := range farm.Events {
		switch q.Mode {
		case DateMode:
			if ev.CoversDate(q.Date) {
				return false
			}
		case RangeMode:
			if window.Overlaps(ev) {
				return false
			}
		}
	}
	return true
}

type AvailableFarm struct {
	Farm    string         `json:"farm"`
	FarmID  string         `json:"farmId"`
	Address domain.Address `json:"address"`
	Events  []domain.Event `json:"events"`
}

type PlaceAvailability struct {
	Place string          `json:"place"`
	Farms []AvailableFarm `json:"farms"`
}

type StateAvailability struct {
	State  string              `json:"state"`
	Places []PlaceAvailability `json:"places"`
}

// AvailableFarms returns every farm of place that is free for q, each with
// its full event list.
func AvailableFarms(place domain.Place, q AvailabilityQuery) []AvailableFarm {
	out := []AvailableFarm{}
	for _, f := range place.Farms {
		if !IsFarmFree(f, q) {
			continue
		}
		events := f.Events
		if events == nil {
			events = []domain.Event{}
		}
		out = append(out, AvailableFarm{
			Farm:    f.Label(),
			FarmID:  f.FarmID,
			Address: f.Address,
			Events:  events,
		})
	}
	return out
}

// AvailableAcrossCatalogue applies q to the whole tree and drops places
// with no free farm and states with no remaining place.
func AvailableAcrossCatalogue(states []domain.State, q AvailabilityQuery) []StateAvailability {
	out := []StateAvailability{}
	for _, st := range states {
		var places []PlaceAvailability
		for _, p := range st.Places {
			farms := AvailableFarms(p, q)
			if len(farms) == 0 {
				continue
			}
			places = append(places, PlaceAvailability{Place: p.Name, Farms: farms})
		}
		if len(places) == 0 {
			continue
		}
		out = append(out, StateAvailability{State: st.Name, Places: places})
	}
	return out
}
