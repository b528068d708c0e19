package ports

import (
	"context"
	"io"
	"time"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

// CalendarRepository stores one document per State. Each mutation is a
// single atomic write of that document.
type CalendarRepository interface {
	FindByState(ctx context.Context, name string) (*domain.State, error)
	ListStates(ctx context.Context) ([]string, error)
	Catalogue(ctx context.Context) ([]domain.State, error)
	AddFarm(ctx context.Context, state, place string, farm domain.Farm) (*domain.Farm, error)
	RemoveFarm(ctx context.Context, state, place, farmID string) error
	PushEvent(ctx context.Context, ref domain.FarmRef, event domain.Event) (*domain.State, error)
	ReplaceEvent(ctx context.Context, ref domain.FarmRef, eventID string, event domain.Event) (*domain.State, error)
	RemoveEvent(ctx context.Context, ref domain.FarmRef, eventID string) (*domain.State, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	Distinct(ctx context.Context, field domain.DistinctField) ([]string, error)
}

type OccasionRepository interface {
	Create(ctx context.Context, occasion domain.Occasion) error
	List(ctx context.Context) ([]domain.Occasion, error)
	Rename(ctx context.Context, id, name string) (*domain.Occasion, error)
	Delete(ctx context.Context, id string) error
}

type PhotoStore interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type SyncObserver interface {
	Observe(operation string, state domain.SyncState, elapsed time.Duration)
}
