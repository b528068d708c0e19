package sqlite

import (
	"context"

	"github.com/srgjo27/venue_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/venue_booking/internal/core/domain"
)

// CalendarRepository reads from memory and persists after every mutation.
type CalendarRepository struct {
	*memory.CalendarRepository
	store *Store
}

func (r *CalendarRepository) AddFarm(ctx context.Context, state, place string, farm domain.Farm) (*domain.Farm, error) {
	var f *domain.Farm
	err := r.store.write(ctx, func() (err error) {
		f, err = r.CalendarRepository.AddFarm(ctx, state, place, farm)
		return err
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *CalendarRepository) RemoveFarm(ctx context.Context, state, place, farmID string) error {
	return r.store.write(ctx, func() error {
		return r.CalendarRepository.RemoveFarm(ctx, state, place, farmID)
	})
}

func (r *CalendarRepository) PushEvent(ctx context.Context, ref domain.FarmRef, event domain.Event) (*domain.State, error) {
	return r.event(ctx, func() (*domain.State, error) {
		return r.CalendarRepository.PushEvent(ctx, ref, event)
	})
}

func (r *CalendarRepository) ReplaceEvent(ctx context.Context, ref domain.FarmRef, eventID string, event domain.Event) (*domain.State, error) {
	return r.event(ctx, func() (*domain.State, error) {
		return r.CalendarRepository.ReplaceEvent(ctx, ref, eventID, event)
	})
}

func (r *CalendarRepository) RemoveEvent(ctx context.Context, ref domain.FarmRef, eventID string) (*domain.State, error) {
	return r.event(ctx, func() (*domain.State, error) {
		return r.CalendarRepository.RemoveEvent(ctx, ref, eventID)
	})
}

func (r *CalendarRepository) event(ctx context.Context, fn func() (*domain.State, error)) (*domain.State, error) {
	var st *domain.State
	err := r.store.write(ctx, func() (err error) {
		st, err = fn()
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

type BookingRepository struct {
	*memory.BookingRepository
	store *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.store.write(ctx, func() error {
		return r.BookingRepository.Create(ctx, booking)
	})
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return r.store.write(ctx, func() error {
		return r.BookingRepository.Update(ctx, booking)
	})
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		return r.BookingRepository.Delete(ctx, id)
	})
}

type OccasionRepository struct {
	*memory.OccasionRepository
	store *Store
}

func (r *OccasionRepository) Create(ctx context.Context, occasion domain.Occasion) error {
	return r.store.write(ctx, func() error {
		return r.OccasionRepository.Create(ctx, occasion)
	})
}

func (r *OccasionRepository) Rename(ctx context.Context, id, name string) (*domain.Occasion, error) {
	var o *domain.Occasion
	err := r.store.write(ctx, func() (err error) {
		o, err = r.OccasionRepository.Rename(ctx, id, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OccasionRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		return r.OccasionRepository.Delete(ctx, id)
	})
}
