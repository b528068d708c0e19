package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

const placeholderTitle = "Placeholder"

// placeholderEpoch bounds the seeded placeholder events: they all fall in
// the year before it so they never meet a real booking.
var placeholderEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type AddFarmRequest struct {
	State   string             `json:"state"`
	Place   string             `json:"place"`
	FarmID  string             `json:"farmId"`
	Address domain.Address     `json:"address"`
	Details domain.FarmDetails `json:"details"`
}

type EventRequest struct {
	domain.FarmRef
	EventID string `json:"eventId"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type CalendarService struct {
	repo   ports.CalendarRepository
	log    zerolog.Logger
	randIn func(n int) int
}

func NewCalendarService(repo ports.CalendarRepository, logger zerolog.Logger) *CalendarService {
	return &CalendarService{
		repo:   repo,
		log:    logger,
		randIn: rand.Intn,
	}
}

func (s *CalendarService) Catalogue(ctx context.Context) ([]domain.State, error) {
	return s.repo.Catalogue(ctx)
}

func (s *CalendarService) FindByState(ctx context.Context, name string) (*domain.State, error) {
	return s.repo.FindByState(ctx, name)
}

func (s *CalendarService) ListStates(ctx context.Context) ([]string, error) {
	return s.repo.ListStates(ctx)
}

func (s *CalendarService) ListPlaces(ctx context.Context, state string) ([]string, error) {
	st, err := s.repo.FindByState(ctx, state)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(st.Places))
	for _, p := range st.Places {
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *CalendarService) ListFarms(ctx context.Context, state, place string) ([]string, error) {
	p, err := s.place(ctx, state, place)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(p.Farms))
	for _, f := range p.Farms {
		labels = append(labels, f.Label())
	}
	return labels, nil
}

func (s *CalendarService) FarmAddress(ctx context.Context, ref domain.FarmRef) (*domain.Address, error) {
	farm, err := s.farm(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &farm.Address, nil
}

func (s *CalendarService) FarmEvents(ctx context.Context, ref domain.FarmRef) ([]domain.Event, error) {
	farm, err := s.farm(ctx, ref)
	if err != nil {
		return nil, err
	}
	if farm.Events == nil {
		return []domain.Event{}, nil
	}
	return farm.Events, nil
}

// AddFarm creates the state and place when they are missing and seeds the
// new farm with one inert placeholder event.
func (s *CalendarService) AddFarm(ctx context.Context, req AddFarmRequest) (*domain.Farm, error) {
	switch {
	case strings.TrimSpace(req.State) == "":
		return nil, domain.NewValidationError("state", "is required")
	case strings.TrimSpace(req.Place) == "":
		return nil, domain.NewValidationError("place", "is required")
	case strings.TrimSpace(req.FarmID) == "":
		return nil, domain.NewValidationError("farmId", "is required")
	case strings.TrimSpace(req.Details.Name) == "":
		return nil, domain.NewValidationError("details.name", "is required")
	}

	catalogue, err := s.repo.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	if loc, taken := locateFarmID(catalogue, req.FarmID); taken {
		return nil, domain.NewConflictError("farm %q already exists in %s", req.FarmID, loc)
	}

	details := req.Details
	if details.Status == "" {
		details.Status = domain.BookingUpcoming
	}

	farm := domain.Farm{
		FarmID:  req.FarmID,
		Address: req.Address,
		Details: details,
		Events:  []domain.Event{s.placeholderEvent()},
	}

	added, err := s.repo.AddFarm(ctx, req.State, req.Place, farm)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("state", req.State).Str("place", req.Place).Str("farm_id", req.FarmID).Msg("farm added")
	return added, nil
}

func (s *CalendarService) placeholderEvent() domain.Event {
	start := placeholderEpoch.AddDate(-1, 0, s.randIn(365))
	return domain.Event{
		ID:    uuid.NewString(),
		Title: placeholderTitle,
		Start: start,
		End:   start.Add(time.Hour),
	}
}

func locateFarmID(states []domain.State, farmID string) (string, bool) {
	for _, st := range states {
		for _, p := range st.Places {
			for _, f := range p.Farms {
				if f.FarmID == farmID {
					return fmt.Sprintf("%s/%s", st.Name, p.Name), true
				}
			}
		}
	}
	return "", false
}

func (s *CalendarService) RemoveFarm(ctx context.Context, state, place, farmID string) error {
	if err := s.repo.RemoveFarm(ctx, state, place, farmID); err != nil {
		return err
	}
	s.log.Info().Str("state", state).Str("place", place).Str("farm_id", farmID).Msg("farm removed")
	return nil
}

func (s *CalendarService) AddEvent(ctx context.Context, req EventRequest) (*domain.State, error) {
	ev, err := req.event()
	if err != nil {
		return nil, err
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	return s.repo.PushEvent(ctx, req.FarmRef, ev)
}

func (s *CalendarService) UpdateEvent(ctx context.Context, req EventRequest) (*domain.State, error) {
	if req.EventID == "" {
		return nil, domain.NewValidationError("eventId", "is required")
	}
	ev, err := req.event()
	if err != nil {
		return nil, err
	}
	ev.ID = req.EventID
	return s.repo.ReplaceEvent(ctx, req.FarmRef, req.EventID, ev)
}

func (s *CalendarService) RemoveEvent(ctx context.Context, ref domain.FarmRef, eventID string) (*domain.State, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return s.repo.RemoveEvent(ctx, ref, eventID)
}

func (r EventRequest) event() (domain.Event, error) {
	if err := r.FarmRef.Validate(); err != nil {
		return domain.Event{}, err
	}
	start, err := domain.ParseInstant(r.Start)
	if err != nil {
		return domain.Event{}, domain.NewValidationError("start", "invalid timestamp "+r.Start)
	}
	end, err := domain.ParseInstant(r.End)
	if err != nil {
		return domain.Event{}, domain.NewValidationError("end", "invalid timestamp "+r.End)
	}
	ev := domain.Event{ID: r.EventID, Title: r.Title, Start: start, End: end}
	return ev, ev.Validate()
}

func (s *CalendarService) AvailableFarms(ctx context.Context, state, place string, q AvailabilityQuery) ([]AvailableFarm, error) {
	p, err := s.place(ctx, state, place)
	if err != nil {
		return nil, err
	}
	return AvailableFarms(*p, q), nil
}

func (s *CalendarService) AvailableAcrossCatalogue(ctx context.Context, q AvailabilityQuery) ([]StateAvailability, error) {
	if q.Mode != RangeMode {
		return nil, domain.NewValidationError("range", "catalogue availability needs a start and end")
	}
	states, err := s.repo.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableAcrossCatalogue(states, q), nil
}

// Seed loads states into an empty store. A non-empty store is left alone.
func (s *CalendarService) Seed(ctx context.Context, states []domain.State) error {
	existing, err := s.repo.ListStates(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, st := range states {
		for _, p := range st.Places {
			for _, f := range p.Farms {
				if _, err := s.repo.AddFarm(ctx, st.Name, p.Name, f); err != nil {
					return fmt.Errorf("seed %s/%s/%s: %w", st.Name, p.Name, f.FarmID, err)
				}
			}
		}
	}

	s.log.Info().Int("states", len(states)).Msg("calendar seeded")
	return nil
}

func (s *CalendarService) place(ctx context.Context, state, place string) (*domain.Place, error) {
	st, err := s.repo.FindByState(ctx, state)
	if err != nil {
		return nil, err
	}
	p, ok := st.Place(place)
	if !ok {
		return nil, domain.NewNotFoundError(domain.SegmentPlace, place)
	}
	return p, nil
}

func (s *CalendarService) farm(ctx context.Context, ref domain.FarmRef) (*domain.Farm, error) {
	st, err := s.repo.FindByState(ctx, ref.State)
	if err != nil {
		return nil, err
	}
	return st.Farm(ref)
}
