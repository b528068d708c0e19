package services

import (
	"context"
	"strings"

	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

type OccasionService struct {
	repo ports.OccasionRepository
}

func NewOccasionService(repo ports.OccasionRepository) *OccasionService {
	return &OccasionService{repo: repo}
}

func (s *OccasionService) Create(ctx context.Context, o domain.Occasion) (*domain.Occasion, error) {
	o.ID = strings.TrimSpace(o.ID)
	o.Name = strings.TrimSpace(o.Name)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OccasionService) List(ctx context.Context) ([]domain.Occasion, error) {
	return s.repo.List(ctx)
}

func (s *OccasionService) Rename(ctx context.Context, id, name string) (*domain.Occasion, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	return s.repo.Rename(ctx, id, strings.TrimSpace(name))
}

func (s *OccasionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
