package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

type BookingRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Booking
	order []string
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[string]domain.Booking)}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[booking.ID]; exists {
		return domain.NewConflictError("booking %s already exists", booking.ID)
	}
	r.items[booking.ID] = *booking
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.SegmentBooking, id)
	}
	return &b, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[booking.ID]; !ok {
		return domain.NewNotFoundError(domain.SegmentBooking, booking.ID)
	}
	r.items[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError(domain.SegmentBooking, id)
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Booking{}
	for _, id := range r.order {
		if b := r.items[id]; filter.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingRepository) Distinct(ctx context.Context, field domain.DistinctField) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range r.items {
		v := field.Value(b)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (r *BookingRepository) Snapshot() []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

func (r *BookingRepository) Restore(bookings []domain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]domain.Booking, len(bookings))
	r.order = r.order[:0]
	for _, b := range bookings {
		r.items[b.ID] = b
		r.order = append(r.order, b.ID)
	}
}
