package memory

import (
	"context"
	"sync"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

type OccasionRepository struct {
	mu    sync.RWMutex
	items []domain.Occasion
}

func NewOccasionRepository() *OccasionRepository {
	return &OccasionRepository{}
}

func (r *OccasionRepository) index(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *OccasionRepository) Create(ctx context.Context, occasion domain.Occasion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(occasion.ID) >= 0 {
		return domain.NewConflictError("occasion %s already exists", occasion.ID)
	}
	r.items = append(r.items, occasion)
	return nil
}

func (r *OccasionRepository) List(ctx context.Context) ([]domain.Occasion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Occasion{}, r.items...), nil
}

func (r *OccasionRepository) Rename(ctx context.Context, id, name string) (*domain.Occasion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, domain.NewNotFoundError(domain.SegmentOccasion, id)
	}
	r.items[i].Name = name
	o := r.items[i]
	return &o, nil
}

func (r *OccasionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return domain.NewNotFoundError(domain.SegmentOccasion, id)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *OccasionRepository) Snapshot() []domain.Occasion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Occasion{}, r.items...)
}

func (r *OccasionRepository) Restore(items []domain.Occasion) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append([]domain.Occasion{}, items...)
}
