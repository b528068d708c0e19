package domain

import (
	"strings"
	"time"
)

type Address struct {
	Line1   string `json:"addressLine1"`
	Line2   string `json:"addressLine2,omitempty"`
	Country string `json:"country"`
	City    string `json:"city"`
	Suburb  string `json:"citySuburb,omitempty"`
	ZipCode string `json:"zipCode"`
}

type FarmDetails struct {
	Name            string        `json:"name"`
	HostOwnerName   string        `json:"hostOwnerName,omitempty"`
	HostNumber      string        `json:"hostNumber,omitempty"`
	CheckInTime     string        `json:"checkInTime,omitempty"`
	CheckOutTime    string        `json:"checkOutTime,omitempty"`
	MaxPeople       int           `json:"maxPeople,omitempty"`
	FarmTariff      float64       `json:"farmTariff,omitempty"`
	SecurityAmount  float64       `json:"securityAmount,omitempty"`
	Commission      float64       `json:"commission,omitempty"`
	TermsConditions string        `json:"termsConditions,omitempty"`
	Status          BookingStatus `json:"status,omitempty"`
}

type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return NewValidationError("title", "is required")
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return NewValidationError("start", "start and end are required")
	}
	if !e.Start.Before(e.End) {
		return NewValidationError("end", "must be after start")
	}
	return nil
}

type Farm struct {
	FarmID  string      `json:"farmId"`
	Address Address     `json:"address"`
	Details FarmDetails `json:"details"`
	Events  []Event     `json:"events"`
}

// Label is the display name used by bookings that reference a farm by name.
func (f Farm) Label() string {
	if f.Details.Name != "" {
		return f.Details.Name
	}
	return f.FarmID
}

func (f *Farm) eventIndex(id string) int {
	for i := range f.Events {
		if f.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// Conflicting returns the first event, other than skipID, whose interval
// overlaps ev.
func (f *Farm) Conflicting(ev Event, skipID string) (Event, bool) {
	w := ev.Window()
	for _, other := range f.Events {
		if other.ID == skipID {
			continue
		}
		if w.Overlaps(other) {
			return other, true
		}
	}
	return Event{}, false
}

type Place struct {
	Name  string `json:"name"`
	Farms []Farm `json:"farms"`
}

// Farm resolves ref against farmId first and falls back to the display label.
func (p *Place) Farm(ref string) (*Farm, bool) {
	for i := range p.Farms {
		if p.Farms[i].FarmID == ref {
			return &p.Farms[i], true
		}
	}
	for i := range p.Farms {
		if p.Farms[i].Details.Name == ref {
			return &p.Farms[i], true
		}
	}
	return nil, false
}

type State struct {
	Name   string  `json:"name"`
	Places []Place `json:"places"`
}

// FarmRef addresses one farm by (state, place, farm) where Farm is either
// the farmId or the display label.
type FarmRef struct {
	State string `json:"state"`
	Place string `json:"place"`
	Farm  string `json:"farm"`
}

func (r FarmRef) Validate() error {
	switch {
	case strings.TrimSpace(r.State) == "":
		return NewValidationError("state", "is required")
	case strings.TrimSpace(r.Place) == "":
		return NewValidationError("place", "is required")
	case strings.TrimSpace(r.Farm) == "":
		return NewValidationError("farm", "is required")
	}
	return nil
}

func (s *State) Place(name string) (*Place, bool) {
	for i := range s.Places {
		if s.Places[i].Name == name {
			return &s.Places[i], true
		}
	}
	return nil, false
}

func (s *State) Farm(ref FarmRef) (*Farm, error) {
	place, ok := s.Place(ref.Place)
	if !ok {
		return nil, NewNotFoundError(SegmentPlace, ref.Place)
	}
	farm, ok := place.Farm(ref.Farm)
	if !ok {
		return nil, NewNotFoundError(SegmentFarm, ref.Farm)
	}
	return farm, nil
}

// AddFarm appends farm under place, creating the place when absent.
func (s *State) AddFarm(place string, farm Farm) error {
	p, ok := s.Place(place)
	if !ok {
		s.Places = append(s.Places, Place{Name: place})
		p = &s.Places[len(s.Places)-1]
	}
	for _, existing := range p.Farms {
		if existing.FarmID == farm.FarmID {
			return NewConflictError("farm %q already exists in %s/%s", farm.FarmID, s.Name, place)
		}
	}
	p.Farms = append(p.Farms, farm)
	return nil
}

func (s *State) RemoveFarm(place, farmID string) error {
	p, ok := s.Place(place)
	if !ok {
		return NewNotFoundError(SegmentPlace, place)
	}
	for i := range p.Farms {
		if p.Farms[i].FarmID == farmID {
			p.Farms = append(p.Farms[:i], p.Farms[i+1:]...)
			return nil
		}
	}
	return NewNotFoundError(SegmentFarm, farmID)
}

func (s *State) PushEvent(ref FarmRef, ev Event) error {
	farm, err := s.Farm(ref)
	if err != nil {
		return err
	}
	if farm.eventIndex(ev.ID) >= 0 {
		return NewConflictError("event %q already exists on farm %s", ev.ID, farm.Label())
	}
	if other, clash := farm.Conflicting(ev, ""); clash {
		return NewConflictError("farm %s is already booked from %s to %s", farm.Label(),
			other.Start.Format(time.RFC3339), other.End.Format(time.RFC3339))
	}
	farm.Events = append(farm.Events, ev)
	return nil
}

func (s *State) ReplaceEvent(ref FarmRef, eventID string, ev Event) error {
	farm, err := s.Farm(ref)
	if err != nil {
		return err
	}
	i := farm.eventIndex(eventID)
	if i < 0 {
		return NewNotFoundError(SegmentEvent, eventID)
	}
	if ev.ID == "" {
		ev.ID = eventID
	}
	if other, clash := farm.Conflicting(ev, eventID); clash {
		return NewConflictError("farm %s is already booked from %s to %s", farm.Label(),
			other.Start.Format(time.RFC3339), other.End.Format(time.RFC3339))
	}
	farm.Events[i] = ev
	return nil
}

// RemoveEvent succeeds without change when the farm exists but the event
// does not.
func (s *State) RemoveEvent(ref FarmRef, eventID string) error {
	farm, err := s.Farm(ref)
	if err != nil {
		return err
	}
	if i := farm.eventIndex(eventID); i >= 0 {
		farm.Events = append(farm.Events[:i], farm.Events[i+1:]...)
	}
	return nil
}

func (s State) Clone() State {
	out := State{Name: s.Name, Places: make([]Place, len(s.Places))}
	for i, p := range s.Places {
		np := Place{Name: p.Name, Farms: make([]Farm, len(p.Farms))}
		for j, f := range p.Farms {
			nf := f
			nf.Events = make([]Event, len(f.Events))
			copy(nf.Events, f.Events)
			np.Farms[j] = nf
		}
		out.Places[i] = np
	}
	return out
}
