package memory

import (
	"context"
	"sync"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

// CalendarRepository keeps State documents in process. Every mutation runs
// on a copy of the document under the write lock and is committed only
// when it succeeds.
type CalendarRepository struct {
	mu     sync.RWMutex
	states []domain.State
}

func NewCalendarRepository(seed ...domain.State) *CalendarRepository {
	r := &CalendarRepository{}
	r.Restore(seed)
	return r
}

func (r *CalendarRepository) index(name string) int {
	for i := range r.states {
		if r.states[i].Name == name {
			return i
		}
	}
	return -1
}

func (r *CalendarRepository) FindByState(ctx context.Context, name string) (*domain.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(name)
	if i < 0 {
		return nil, domain.NewNotFoundError(domain.SegmentState, name)
	}
	st := r.states[i].Clone()
	return &st, nil
}

func (r *CalendarRepository) ListStates(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.states))
	for _, st := range r.states {
		names = append(names, st.Name)
	}
	return names, nil
}

func (r *CalendarRepository) Catalogue(ctx context.Context) ([]domain.State, error) {
	return r.Snapshot(), nil
}

func (r *CalendarRepository) AddFarm(ctx context.Context, state, place string, farm domain.Farm) (*domain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := domain.State{Name: state, Places: []domain.Place{}}
	i := r.index(state)
	if i >= 0 {
		next = r.states[i].Clone()
	}
	if err := next.AddFarm(place, farm); err != nil {
		return nil, err
	}
	if i < 0 {
		r.states = append(r.states, next)
	} else {
		r.states[i] = next
	}

	added := farm
	return &added, nil
}

func (r *CalendarRepository) RemoveFarm(ctx context.Context, state, place, farmID string) error {
	_, err := r.mutate(state, func(st *domain.State) error {
		return st.RemoveFarm(place, farmID)
	})
	return err
}

func (r *CalendarRepository) PushEvent(ctx context.Context, ref domain.FarmRef, event domain.Event) (*domain.State, error) {
	return r.mutate(ref.State, func(st *domain.State) error {
		return st.PushEvent(ref, event)
	})
}

func (r *CalendarRepository) ReplaceEvent(ctx context.Context, ref domain.FarmRef, eventID string, event domain.Event) (*domain.State, error) {
	return r.mutate(ref.State, func(st *domain.State) error {
		return st.ReplaceEvent(ref, eventID, event)
	})
}

func (r *CalendarRepository) RemoveEvent(ctx context.Context, ref domain.FarmRef, eventID string) (*domain.State, error) {
	return r.mutate(ref.State, func(st *domain.State) error {
		return st.RemoveEvent(ref, eventID)
	})
}

func (r *CalendarRepository) mutate(state string, fn func(*domain.State) error) (*domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(state)
	if i < 0 {
		return nil, domain.NewNotFoundError(domain.SegmentState, state)
	}

	next := r.states[i].Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}
	r.states[i] = next

	out := next.Clone()
	return &out, nil
}

// Snapshot returns a deep copy of every State document.
func (r *CalendarRepository) Snapshot() []domain.State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.State, len(r.states))
	for i, st := range r.states {
		out[i] = st.Clone()
	}
	return out
}

// Restore replaces the whole catalogue.
func (r *CalendarRepository) Restore(states []domain.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states = make([]domain.State, len(states))
	for i, st := range states {
		r.states[i] = st.Clone()
	}
}
