package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// SyncResult is the typed outcome of a coordinated booking write.
type SyncResult struct {
	Booking *domain.Booking  `json:"booking,omitempty"`
	State   domain.SyncState `json:"syncState"`
}

type PhotoUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type BookingOptions struct {
	// Location turns check-in/out date and clock fields into instants.
	Location *time.Location
	// CompensateUpdates restores the booking record when the calendar step
	// of an Update or Delete fails. Off by default: only Create compensates.
	CompensateUpdates bool
	Photos            ports.PhotoStore
	Publisher         ports.EventPublisher
	Observer          ports.SyncObserver
}

type bookingMessage struct {
	BookingID string               `json:"bookingId"`
	Status    domain.BookingStatus `json:"status"`
	State     string               `json:"state"`
	Place     string               `json:"place"`
	Farm      string               `json:"farm"`
	Start     time.Time            `json:"start"`
	End       time.Time            `json:"end"`
}

// BookingService keeps a booking record and its calendar event consistent.
// Each operation writes the record first and the calendar second; Create
// undoes the record when the calendar step fails.
type BookingService struct {
	bookingRepo  ports.BookingRepository
	calendarRepo ports.CalendarRepository
	opts         BookingOptions
	log          zerolog.Logger
	now          func() time.Time
}

func NewBookingService(bookingRepo ports.BookingRepository, calendarRepo ports.CalendarRepository, logger zerolog.Logger, opts BookingOptions) *BookingService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &BookingService{
		bookingRepo:  bookingRepo,
		calendarRepo: calendarRepo,
		opts:         opts,
		log:          logger,
		now:          time.Now,
	}
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx, filter)
}

func (s *BookingService) Distinct(ctx context.Context, field domain.DistinctField) ([]string, error) {
	return s.bookingRepo.Distinct(ctx, field)
}

func (s *BookingService) Create(ctx context.Context, b domain.Booking) (*SyncResult, error) {
	started := s.now()

	if err := s.prepare(&b); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, &b); err != nil {
		return s.done(opCreate, started, nil, domain.SyncFailed, fmt.Errorf("failed to create booking: %w", err))
	}

	if _, err := s.calendarRepo.PushEvent(ctx, b.FarmRef(), b.Event()); err != nil {
		return s.compensateCreate(ctx, started, &b, false, err)
	}

	if err := s.verifyCreate(ctx, &b); err != nil {
		return s.compensateCreate(ctx, started, &b, true, err)
	}

	s.publish(ctx, "booking.created", &b)
	return s.done(opCreate, started, &b, domain.SyncCalendarWritten, nil)
}

// CreateWithPhoto stores the photo, embeds its key in the booking and runs
// Create. The photo is removed again when Create does not succeed.
func (s *BookingService) CreateWithPhoto(ctx context.Context, b domain.Booking, photo *PhotoUpload) (*SyncResult, error) {
	if photo == nil || s.opts.Photos == nil {
		return s.Create(ctx, b)
	}

	checked := b
	if err := s.prepare(&checked); err != nil {
		return nil, err
	}

	key, err := s.opts.Photos.Save(ctx, photo.Filename, photo.ContentType, photo.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}
	b.Photo = key

	res, err := s.Create(ctx, b)
	if err != nil {
		if derr := s.opts.Photos.Delete(ctx, key); derr != nil {
			s.log.Error().Err(derr).Str("photo", key).Msg("failed to remove photo of rejected booking")
		}
	}
	return res, err
}

func (s *BookingService) prepare(b *domain.Booking) error {
	if err := b.Normalize(s.opts.Location); err != nil {
		return err
	}
	if b.Status != domain.BookingUpcoming && b.Status != domain.BookingPaid {
		return domain.NewValidationError("status", "new bookings must be Upcoming or Paid")
	}
	if b.BalancePayment == 0 {
		b.BalancePayment = b.TotalBooking - b.Advance
	}

	now := s.now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// verifyCreate re-reads both records and confirms the pair landed.
func (s *BookingService) verifyCreate(ctx context.Context, b *domain.Booking) error {
	if _, err := s.bookingRepo.GetByID(ctx, b.ID); err != nil {
		return fmt.Errorf("verify booking: %w", err)
	}

	ref := b.FarmRef()
	st, err := s.calendarRepo.FindByState(ports.WithFreshRead(ctx), ref.State)
	if err != nil {
		return fmt.Errorf("verify calendar: %w", err)
	}
	farm, err := st.Farm(ref)
	if err != nil {
		return fmt.Errorf("verify calendar: %w", err)
	}
	for _, ev := range farm.Events {
		if ev.ID == b.ID {
			return nil
		}
	}
	return fmt.Errorf("verify calendar: %w", domain.NewNotFoundError(domain.SegmentEvent, b.ID))
}

func (s *BookingService) compensateCreate(ctx context.Context, started time.Time, b *domain.Booking, eventWritten bool, cause error) (*SyncResult, error) {
	logger := s.log.With().Str("booking_id", b.ID).Str("op", opCreate).Str("farm", b.FarmRef().Farm).Logger()
	logger.Warn().Err(cause).Msg("calendar step failed, compensating")

	if eventWritten {
		if _, err := s.calendarRepo.RemoveEvent(ctx, b.FarmRef(), b.ID); err != nil {
			logger.Error().Err(err).Msg("failed to remove event during compensation")
		}
	}

	if err := s.bookingRepo.Delete(ctx, b.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error().Err(err).Msg("compensating delete failed, booking left without calendar event")
		return s.done(opCreate, started, b, domain.SyncFailed,
			&domain.SyncError{Operation: opCreate, State: domain.SyncFailed, Err: cause})
	}

	return s.done(opCreate, started, nil, domain.SyncCompensated,
		&domain.SyncError{Operation: opCreate, State: domain.SyncCompensated, Compensated: true, Err: cause})
}

// Update patches the record, then removes the event when the booking is
// now Canceled or replaces it otherwise.
func (s *BookingService) Update(ctx context.Context, id string, patch domain.BookingPatch) (*SyncResult, error) {
	started := s.now()

	current, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := patch.Apply(*current, s.opts.Location)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.bookingRepo.Update(ctx, &next); err != nil {
		return s.done(opUpdate, started, current, domain.SyncFailed, fmt.Errorf("failed to update booking: %w", err))
	}

	oldRef, newRef := current.FarmRef(), next.FarmRef()

	var calErr error
	switch {
	case next.Status == domain.BookingCanceled:
		// The event still sits under the farm the booking named before this patch.
		_, calErr = s.calendarRepo.RemoveEvent(ctx, oldRef, id)
	case oldRef != newRef:
		calErr = s.moveEvent(ctx, current, &next)
	default:
		_, calErr = s.calendarRepo.ReplaceEvent(ctx, newRef, id, next.Event())
	}

	if calErr != nil {
		return s.failWrite(ctx, opUpdate, started, current, &next, calErr, func() error {
			return s.bookingRepo.Update(ctx, current)
		})
	}

	key := "booking.updated"
	if next.Status == domain.BookingCanceled && current.Status != domain.BookingCanceled {
		key = "booking.canceled"
	}
	s.publish(ctx, key, &next)
	return s.done(opUpdate, started, &next, domain.SyncCalendarWritten, nil)
}

func (s *BookingService) moveEvent(ctx context.Context, current, next *domain.Booking) error {
	if _, err := s.calendarRepo.RemoveEvent(ctx, current.FarmRef(), current.ID); err != nil {
		return err
	}
	if _, err := s.calendarRepo.PushEvent(ctx, next.FarmRef(), next.Event()); err != nil {
		if _, rerr := s.calendarRepo.PushEvent(ctx, current.FarmRef(), current.Event()); rerr != nil {
			s.log.Error().Err(rerr).Str("booking_id", current.ID).Msg("failed to restore event on previous farm")
		}
		return err
	}
	return nil
}

// Delete removes the record and then its event. Canceled bookings have no
// event, so only the record is removed.
func (s *BookingService) Delete(ctx context.Context, id string) (*SyncResult, error) {
	started := s.now()

	current, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return s.done(opDelete, started, current, domain.SyncFailed, fmt.Errorf("failed to delete booking: %w", err))
	}

	if current.Status != domain.BookingCanceled {
		if _, err := s.calendarRepo.RemoveEvent(ctx, current.FarmRef(), id); err != nil {
			return s.failWrite(ctx, opDelete, started, current, nil, err, func() error {
				return s.bookingRepo.Create(ctx, current)
			})
		}
	}

	s.publish(ctx, "booking.deleted", current)
	return s.done(opDelete, started, current, domain.SyncCalendarWritten, nil)
}

// failWrite reports a calendar failure after the record was already
// written. With CompensateUpdates set it first runs restore.
func (s *BookingService) failWrite(ctx context.Context, op string, started time.Time, previous, written *domain.Booking, cause error, restore func() error) (*SyncResult, error) {
	logger := s.log.With().Str("booking_id", previous.ID).Str("op", op).Str("farm", previous.FarmRef().Farm).Logger()

	if !s.opts.CompensateUpdates {
		logger.Error().Err(cause).Msg("calendar step failed, booking change kept")
		return s.done(op, started, written, domain.SyncBookingWritten,
			&domain.SyncError{Operation: op, State: domain.SyncBookingWritten, Err: cause})
	}

	logger.Warn().Err(cause).Msg("calendar step failed, compensating")
	if err := restore(); err != nil {
		logger.Error().Err(err).Msg("compensation failed")
		return s.done(op, started, written, domain.SyncFailed,
			&domain.SyncError{Operation: op, State: domain.SyncFailed, Err: cause})
	}
	return s.done(op, started, previous, domain.SyncCompensated,
		&domain.SyncError{Operation: op, State: domain.SyncCompensated, Compensated: true, Err: cause})
}

func (s *BookingService) publish(ctx context.Context, key string, b *domain.Booking) {
	if s.opts.Publisher == nil {
		return
	}
	msg := bookingMessage{
		BookingID: b.ID,
		Status:    b.Status,
		State:     b.State,
		Place:     b.Place,
		Farm:      b.FarmRef().Farm,
		Start:     b.Start,
		End:       b.End,
	}
	if err := s.opts.Publisher.Publish(ctx, key, msg); err != nil {
		s.log.Warn().Err(err).Str("booking_id", b.ID).Str("routing_key", key).Msg("publish failed")
	}
}

func (s *BookingService) done(op string, started time.Time, b *domain.Booking, state domain.SyncState, err error) (*SyncResult, error) {
	if s.opts.Observer != nil {
		s.opts.Observer.Observe(op, state, s.now().Sub(started))
	}
	return &SyncResult{Booking: b, State: state}, err
}
