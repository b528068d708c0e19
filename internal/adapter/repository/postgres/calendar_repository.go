package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

// CalendarRepository keeps one JSONB document per State. Writes replace the
// whole document under an optimistic version check, so the overlap guard
// has always run against the document being replaced.
type CalendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) load(ctx context.Context, name string) (*domain.State, int64, error) {
	query := `
	SELECT document, version
	FROM calendar_states
	WHERE name = $1
	`

	var raw []byte
	var version int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, domain.NewNotFoundError(domain.SegmentState, name)
		}
		return nil, 0, err
	}

	var st domain.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, 0, fmt.Errorf("failed to decode state %s: %w", name, err)
	}
	return &st, version, nil
}

func (r *CalendarRepository) FindByState(ctx context.Context, name string) (*domain.State, error) {
	st, _, err := r.load(ctx, name)
	return st, err
}

func (r *CalendarRepository) ListStates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM calendar_states ORDER BY name`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *CalendarRepository) Catalogue(ctx context.Context) ([]domain.State, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT document FROM calendar_states ORDER BY name`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	states := []domain.State{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		var st domain.State
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, fmt.Errorf("failed to decode state: %w", err)
		}
		states = append(states, st)
	}

	return states, rows.Err()
}

// AddFarm creates the State document when it does not exist yet.
func (r *CalendarRepository) AddFarm(ctx context.Context, state, place string, farm domain.Farm) (*domain.Farm, error) {
	st, version, err := r.load(ctx, state)
	if errors.Is(err, domain.ErrNotFound) {
		fresh := domain.State{Name: state, Places: []domain.Place{}}
		if err := fresh.AddFarm(place, farm); err != nil {
			return nil, err
		}
		if err := r.insert(ctx, fresh); err != nil {
			return nil, err
		}
		return stored(fresh, place, farm.FarmID)
	}
	if err != nil {
		return nil, err
	}

	if err := st.AddFarm(place, farm); err != nil {
		return nil, err
	}
	if err := r.save(ctx, *st, version); err != nil {
		return nil, err
	}
	return stored(*st, place, farm.FarmID)
}

func stored(st domain.State, place, farmID string) (*domain.Farm, error) {
	f, err := st.Farm(domain.FarmRef{State: st.Name, Place: place, Farm: farmID})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *CalendarRepository) RemoveFarm(ctx context.Context, state, place, farmID string) error {
	_, err := r.mutate(ctx, state, func(st *domain.State) error {
		return st.RemoveFarm(place, farmID)
	})
	return err
}

func (r *CalendarRepository) PushEvent(ctx context.Context, ref domain.FarmRef, event domain.Event) (*domain.State, error) {
	return r.mutate(ctx, ref.State, func(st *domain.State) error {
		return st.PushEvent(ref, event)
	})
}

func (r *CalendarRepository) ReplaceEvent(ctx context.Context, ref domain.FarmRef, eventID string, event domain.Event) (*domain.State, error) {
	return r.mutate(ctx, ref.State, func(st *domain.State) error {
		return st.ReplaceEvent(ref, eventID, event)
	})
}

func (r *CalendarRepository) RemoveEvent(ctx context.Context, ref domain.FarmRef, eventID string) (*domain.State, error) {
	return r.mutate(ctx, ref.State, func(st *domain.State) error {
		return st.RemoveEvent(ref, eventID)
	})
}

// mutate is one read-modify-write of a State document. A concurrent writer
// that committed in between surfaces as ErrConcurrentUpdate.
func (r *CalendarRepository) mutate(ctx context.Context, state string, fn func(*domain.State) error) (*domain.State, error) {
	st, version, err := r.load(ctx, state)
	if err != nil {
		return nil, err
	}

	if err := fn(st); err != nil {
		return nil, err
	}

	if err := r.save(ctx, *st, version); err != nil {
		return nil, err
	}
	return st, nil
}

func (r *CalendarRepository) save(ctx context.Context, st domain.State, version int64) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}

	query := `
	UPDATE calendar_states
	SET document = $1,
		version = version + 1,
		updated_at = NOW()
	WHERE name = $2 AND version = $3
	`

	result, err := r.db.ExecContext(ctx, query, raw, st.Name, version)
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", st.Name, err)
	}

	return expectWritten(result)
}

func (r *CalendarRepository) insert(ctx context.Context, st domain.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO calendar_states (name, document, version, updated_at)
	VALUES ($1, $2, 1, NOW())
	ON CONFLICT (name) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, st.Name, raw)
	if err != nil {
		return fmt.Errorf("failed to insert state %s: %w", st.Name, err)
	}

	return expectWritten(result)
}

// expectWritten maps a lost version race to ErrConcurrentUpdate.
func expectWritten(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}

	return nil
}

