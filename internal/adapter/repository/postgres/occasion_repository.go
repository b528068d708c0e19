package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

type OccasionRepository struct {
	db *sql.DB
}

func NewOccasionRepository(db *sql.DB) *OccasionRepository {
	return &OccasionRepository{db: db}
}

func (r *OccasionRepository) Create(ctx context.Context, occasion domain.Occasion) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO occasions (id, name) VALUES ($1, $2)`, occasion.ID, occasion.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("occasion %s already exists", occasion.ID)
		}
		return fmt.Errorf("failed to insert occasion: %w", err)
	}
	return nil
}

func (r *OccasionRepository) List(ctx context.Context) ([]domain.Occasion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM occasions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	list := []domain.Occasion{}
	for rows.Next() {
		var o domain.Occasion
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		list = append(list, o)
	}

	return list, rows.Err()
}

func (r *OccasionRepository) Rename(ctx context.Context, id, name string) (*domain.Occasion, error) {
	query := `
	UPDATE occasions
	SET name = $1
	WHERE id = $2
	RETURNING id, name
	`

	var o domain.Occasion
	err := r.db.QueryRowContext(ctx, query, name, id).Scan(&o.ID, &o.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError(domain.SegmentOccasion, id)
		}
		return nil, err
	}

	return &o, nil
}

func (r *OccasionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM occasions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete occasion %s: %w", id, err)
	}

	return expectOne(result, domain.SegmentOccasion, id)
}
