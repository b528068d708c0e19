package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/srgjo27/venue_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const (
	bucketCalendar  = "states"
	bucketBookings  = "bookings"
	bucketOccasions = "occasions"
)

// Store keeps the working set in the memory repositories and snapshots
// every bucket to a single SQLite table after each successful write.
// Writes are serialized on mu; reads go straight to memory.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string

	calendar  *CalendarRepository
	bookings  *BookingRepository
	occasions *OccasionRepository
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "venue.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	s := &Store{db: db, path: path}
	s.calendar = &CalendarRepository{CalendarRepository: memory.NewCalendarRepository(), store: s}
	s.bookings = &BookingRepository{BookingRepository: memory.NewBookingRepository(), store: s}
	s.occasions = &OccasionRepository{OccasionRepository: memory.NewOccasionRepository(), store: s}

	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Calendar() *CalendarRepository { return s.calendar }
func (s *Store) Bookings() *BookingRepository { return s.bookings }
func (s *Store) Occasions() *OccasionRepository { return s.occasions }
func (s *Store) Path() string { return s.path }
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}

		switch bucket {
		case bucketCalendar:
			var states []domain.State
			if err := json.Unmarshal(payload, &states); err != nil {
				return fmt.Errorf("decode calendar: %w", err)
			}
			s.calendar.Restore(states)
		case bucketBookings:
			var bookings []domain.Booking
			if err := json.Unmarshal(payload, &bookings); err != nil {
				return fmt.Errorf("decode bookings: %w", err)
			}
			s.bookings.Restore(bookings)
		case bucketOccasions:
			var occasions []domain.Occasion
			if err := json.Unmarshal(payload, &occasions); err != nil {
				return fmt.Errorf("decode occasions: %w", err)
			}
			s.occasions.Restore(occasions)
		}
	}
	return rows.Err()
}

type snapshot struct {
	states    []domain.State
	bookings  []domain.Booking
	occasions []domain.Occasion
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		states:    s.calendar.Snapshot(),
		bookings:  s.bookings.Snapshot(),
		occasions: s.occasions.Snapshot(),
	}
}

func (s *Store) restore(snap snapshot) {
	s.calendar.Restore(snap.states)
	s.bookings.Restore(snap.bookings)
	s.occasions.Restore(snap.occasions)
}

// write applies fn to the memory repositories and commits the result to
// SQLite. When the commit fails the memory repositories are put back to
// what they held before fn, so a failed write leaves nothing behind.
func (s *Store) write(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.snapshot()
	if err := fn(); err != nil {
		return err
	}

	if err := s.persist(ctx, s.snapshot()); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

func (s *Store) persist(ctx context.Context, snap snapshot) (retErr error) {
	payloads := map[string]any{
		bucketCalendar:  snap.states,
		bucketBookings:  snap.bookings,
		bucketOccasions: snap.occasions,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, bucket := range []string{bucketCalendar, bucketBookings, bucketOccasions} {
		data, err := json.Marshal(payloads[bucket])
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	return tx.Commit()
}
