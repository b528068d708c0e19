package services_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/srgjo27/venue_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
	"github.com/srgjo27/venue_booking/internal/core/ports/mocks"
	"github.com/srgjo27/venue_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *services.BookingService
	bookings *memory.BookingRepository
	calendar *memory.CalendarRepository
}

func mumbai(t *testing.T) domain.State {
	return domain.State{Name: "Maharashtra", Places: []domain.Place{{
		Name: "Mumbai",
		Farms: []domain.Farm{
			gatewayFarm(t),
			{FarmID: "seaside", Details: domain.FarmDetails{Name: "Seaside Farm"}, Events: []domain.Event{}},
		},
	}}}
}

func newFixture(t *testing.T, opts services.BookingOptions) fixture {
	bookings := memory.NewBookingRepository()
	calendar := memory.NewCalendarRepository(mumbai(t))
	return fixture{
		svc:      services.NewBookingService(bookings, calendar, zerolog.Nop(), opts),
		bookings: bookings,
		calendar: calendar,
	}
}

func newBooking(venue, inDate, inTime, outDate, outTime string) domain.Booking {
	return domain.Booking{
		GuestName:     "Asha Rao",
		PhoneNumber:   "9800000001",
		CheckInDate:   inDate,
		CheckInTime:   inTime,
		CheckOutDate:  outDate,
		CheckOutTime:  outTime,
		Adults:        20,
		Kids:          4,
		Occasion:      "Birthday",
		HostOwnerName: "Ravi Mehta",
		TotalBooking:  50000,
		Advance:       10000,
		State:         "Maharashtra",
		Place:         "Mumbai",
		Venue:         venue,
	}
}

func farmEvents(t *testing.T, f fixture, farm string) []domain.Event {
	t.Helper()
	st, err := f.calendar.FindByState(context.Background(), "Maharashtra")
	require.NoError(t, err)
	fm, err := st.Farm(domain.FarmRef{State: "Maharashtra", Place: "Mumbai", Farm: farm})
	require.NoError(t, err)
	return fm.Events
}

func eventByID(events []domain.Event, id string) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if ev.ID == id {
			out = append(out, ev)
		}
	}
	return out
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	res, err := f.svc.Create(ctx, newBooking("Seaside Farm", "2024-09-01", "6:00 PM", "2024-09-02", "11:00 AM"))

	require.NoError(t, err)
	assert.Equal(t, domain.SyncCalendarWritten, res.State)
	require.NotNil(t, res.Booking)
	assert.NotEmpty(t, res.Booking.ID)
	assert.Equal(t, domain.BookingUpcoming, res.Booking.Status)
	assert.Equal(t, 40000.0, res.Booking.BalancePayment)

	events := eventByID(farmEvents(t, f, "seaside"), res.Booking.ID)
	require.Len(t, events, 1)
	assert.Equal(t, "Birthday", events[0].Title)
	assert.Equal(t, mustTime(t, "2024-09-01T18:00:00Z"), events[0].Start)
	assert.Equal(t, mustTime(t, "2024-09-02T11:00:00Z"), events[0].End)
}

func TestCreateBooking_TwelveHourClockEdges(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})

	res, err := f.svc.Create(context.Background(), newBooking("seaside", "2024-09-01", "12:30 AM", "2024-09-01", "12:15 PM"))

	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2024-09-01T00:30:00Z"), res.Booking.Start)
	assert.Equal(t, mustTime(t, "2024-09-01T12:15:00Z"), res.Booking.End)
}

func TestCreateBooking_UsesConfiguredLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	f := newFixture(t, services.BookingOptions{Location: ist})

	res, err := f.svc.Create(context.Background(), newBooking("seaside", "2024-09-01", "10:00", "2024-09-01", "14:00"))

	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2024-09-01T04:30:00Z"), res.Booking.Start.UTC())
}

func TestCreateBooking_Fail_Validation(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()

	missingGuest := newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00")
	missingGuest.GuestName = ""
	_, err := svc.Create(ctx, missingGuest)
	assert.ErrorIs(t, err, domain.ErrValidation)

	backwards := newBooking("seaside", "2024-09-02", "10:00", "2024-09-01", "10:00")
	_, err = svc.Create(ctx, backwards)
	assert.ErrorIs(t, err, domain.ErrValidation)

	sameInstant := newBooking("seaside", "2024-09-01", "10:00 AM", "2024-09-01", "10:00")
	_, err = svc.Create(ctx, sameInstant)
	assert.ErrorIs(t, err, domain.ErrValidation)

	badClock := newBooking("seaside", "2024-09-01", "13:00 PM", "2024-09-02", "10:00")
	_, err = svc.Create(ctx, badClock)
	assert.ErrorIs(t, err, domain.ErrValidation)

	canceled := newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00")
	canceled.Status = domain.BookingCanceled
	_, err = svc.Create(ctx, canceled)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateBooking_CompensatesWhenFarmMissing(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})

	res, err := f.svc.Create(context.Background(), newBooking("Nowhere Farm", "2024-09-01", "10:00", "2024-09-02", "10:00"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSyncFailure)
	var syncErr *domain.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.True(t, syncErr.Compensated)
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, domain.SegmentFarm, notFound.Segment)

	assert.Equal(t, domain.SyncCompensated, res.State)
	all, _ := f.bookings.List(context.Background(), domain.BookingFilter{})
	assert.Empty(t, all, "no orphaned booking may survive")
}

func TestCreateBooking_CompensatesOnOverlap(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})

	_, err := f.svc.Create(context.Background(), newBooking("Gateway Farm", "2024-08-15", "11:00 PM", "2024-08-16", "1:00 AM"))

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrSyncFailure)
	all, _ := f.bookings.List(context.Background(), domain.BookingFilter{})
	assert.Empty(t, all)
	assert.Len(t, farmEvents(t, f, "gateway"), 1)
}

func TestCreateBooking_CompensatesWhenVerificationFails(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()
	ref := domain.FarmRef{State: "Maharashtra", Place: "Mumbai", Farm: "seaside"}

	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	calendarRepo.On("PushEvent", ctx, ref, mock.AnythingOfType("domain.Event")).Return(&domain.State{}, nil)
	bookingRepo.On("GetByID", ctx, mock.AnythingOfType("string")).
		Return(nil, errors.New("read timeout"))
	calendarRepo.On("RemoveEvent", ctx, ref, mock.AnythingOfType("string")).Return(&domain.State{}, nil)
	bookingRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	res, err := svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))

	assert.ErrorIs(t, err, domain.ErrSyncFailure)
	assert.Contains(t, err.Error(), "read timeout")
	assert.Equal(t, domain.SyncCompensated, res.State)
	assert.Nil(t, res.Booking)
}

func TestCreateBooking_VerificationReadsCommittedCalendar(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()
	ref := domain.FarmRef{State: "Maharashtra", Place: "Mumbai", Farm: "seaside"}

	var pushed domain.Event
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	calendarRepo.On("PushEvent", ctx, ref, mock.AnythingOfType("domain.Event")).
		Run(func(args mock.Arguments) { pushed = args.Get(2).(domain.Event) }).
		Return(&domain.State{}, nil)
	bookingRepo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(&domain.Booking{}, nil)
	calendarRepo.On("FindByState", mock.MatchedBy(ports.FreshRead), "Maharashtra").
		Return(func(context.Context, string) (*domain.State, error) {
			return &domain.State{Name: "Maharashtra", Places: []domain.Place{{
				Name:  "Mumbai",
				Farms: []domain.Farm{{FarmID: "seaside", Events: []domain.Event{pushed}}},
			}}}, nil
		})

	res, err := svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))

	require.NoError(t, err)
	assert.Equal(t, domain.SyncCalendarWritten, res.State)
	assert.Equal(t, res.Booking.ID, pushed.ID)
}

func TestCreateBooking_Fail_CompensationFails(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()

	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	calendarRepo.On("PushEvent", ctx, mock.Anything, mock.Anything).
		Return(nil, domain.NewNotFoundError(domain.SegmentPlace, "Mumbai"))
	bookingRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(errors.New("connection reset"))

	res, err := svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))

	var syncErr *domain.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.False(t, syncErr.Compensated)
	assert.Equal(t, domain.SyncFailed, res.State)
	assert.NotNil(t, res.Booking)
}

func TestCreateBooking_Fail_RecordWrite(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()

	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(errors.New("disk full"))

	res, err := svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSyncFailure)
	assert.Equal(t, domain.SyncFailed, res.State)
	calendarRepo.AssertNotCalled(t, "PushEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_BackToBackIsConflict(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	_, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-01", "14:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "14:00", "2024-09-01", "18:00"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "14:01", "2024-09-01", "18:00"))
	assert.NoError(t, err)
}

// Concurrent creates for one farm must not both land: the overlap guard
// runs inside the single atomic write of the State document.
func TestCreateBooking_ConcurrentSameFarm(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	const workers = 12
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, newBooking("seaside", "2024-12-24", "4:00 PM", "2024-12-25", "10:00 AM"))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, farmEvents(t, f, "seaside"), 1)
	all, _ := f.bookings.List(ctx, domain.BookingFilter{})
	assert.Len(t, all, 1)
}

func TestUpdateBooking_CancelFreesFarm(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()
	calendar := services.NewCalendarService(f.calendar, zerolog.Nop())

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	q := rangeQuery(t, "2024-09-01T12:00:00Z", "2024-09-01T13:00:00Z")
	free, err := calendar.AvailableFarms(ctx, "Maharashtra", "Mumbai", q)
	require.NoError(t, err)
	assert.NotContains(t, farmIDs(free), "seaside")

	canceled := domain.BookingCanceled
	res, err = f.svc.Update(ctx, id, domain.BookingPatch{Status: &canceled})
	require.NoError(t, err)
	assert.Equal(t, domain.SyncCalendarWritten, res.State)

	stored, err := f.bookings.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, stored.Status)
	assert.Empty(t, eventByID(farmEvents(t, f, "seaside"), id))

	free, err = calendar.AvailableFarms(ctx, "Maharashtra", "Mumbai", q)
	require.NoError(t, err)
	assert.Contains(t, farmIDs(free), "seaside")
}

func farmIDs(farms []services.AvailableFarm) []string {
	ids := make([]string, 0, len(farms))
	for _, f := range farms {
		ids = append(ids, f.FarmID)
	}
	return ids
}

func TestUpdateBooking_ReplacesEvent(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	outTime := "6:00 PM"
	occasion := "Anniversary"
	paid := domain.BookingPaid
	res, err = f.svc.Update(ctx, id, domain.BookingPatch{CheckOutTime: &outTime, Occasion: &occasion, Status: &paid})
	require.NoError(t, err)

	events := eventByID(farmEvents(t, f, "seaside"), id)
	require.Len(t, events, 1)
	assert.Equal(t, "Anniversary", events[0].Title)
	assert.Equal(t, mustTime(t, "2024-09-02T18:00:00Z"), events[0].End)
	assert.Equal(t, domain.BookingPaid, res.Booking.Status)
}

func TestUpdateBooking_MovesEventToNewFarm(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	farmID := "gateway"
	_, err = f.svc.Update(ctx, id, domain.BookingPatch{FarmID: &farmID})
	require.NoError(t, err)

	assert.Empty(t, eventByID(farmEvents(t, f, "seaside"), id))
	assert.Len(t, eventByID(farmEvents(t, f, "gateway"), id), 1)
}

func TestUpdateBooking_CancelWithNewFarmRemovesEventFromOldFarm(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	canceled := domain.BookingCanceled
	farmID := "gateway"
	res, err = f.svc.Update(ctx, id, domain.BookingPatch{Status: &canceled, FarmID: &farmID})
	require.NoError(t, err)
	assert.Equal(t, domain.SyncCalendarWritten, res.State)

	assert.Empty(t, eventByID(farmEvents(t, f, "seaside"), id))
	assert.Empty(t, eventByID(farmEvents(t, f, "gateway"), id))

	stored, err := f.bookings.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, stored.Status)
	assert.Equal(t, "gateway", stored.FarmID)
}

func TestUpdateBooking_Fail_IllegalTransition(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	completed := domain.BookingCompleted
	_, err = f.svc.Update(ctx, id, domain.BookingPatch{Status: &completed})
	assert.ErrorIs(t, err, domain.ErrValidation, "Upcoming cannot jump to Completed")

	canceled := domain.BookingCanceled
	_, err = f.svc.Update(ctx, id, domain.BookingPatch{Status: &canceled})
	require.NoError(t, err)

	upcoming := domain.BookingUpcoming
	_, err = f.svc.Update(ctx, id, domain.BookingPatch{Status: &upcoming})
	assert.ErrorIs(t, err, domain.ErrValidation, "Canceled is terminal")
}

func TestUpdateBooking_Fail_NotFound(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})

	_, err := f.svc.Update(context.Background(), "missing", domain.BookingPatch{})

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, domain.SegmentBooking, notFound.Segment)
}

func storedBooking() *domain.Booking {
	b := newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00")
	b.ID = "b-1"
	b.Status = domain.BookingUpcoming
	_ = b.Normalize(time.UTC)
	return &b
}

func TestUpdateBooking_CalendarFailureKeepsRecord(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()
	current := storedBooking()

	bookingRepo.On("GetByID", ctx, "b-1").Return(current, nil)
	bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	calendarRepo.On("ReplaceEvent", ctx, current.FarmRef(), "b-1", mock.AnythingOfType("domain.Event")).
		Return(nil, domain.NewNotFoundError(domain.SegmentEvent, "b-1"))

	guest := "Asha R."
	res, err := svc.Update(ctx, "b-1", domain.BookingPatch{GuestName: &guest})

	var syncErr *domain.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.False(t, syncErr.Compensated)
	assert.Equal(t, domain.SyncBookingWritten, res.State)
	assert.Equal(t, "Asha R.", res.Booking.GuestName)
	bookingRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestUpdateBooking_CalendarFailureCompensatedWhenEnabled(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{CompensateUpdates: true})
	ctx := context.Background()
	current := storedBooking()

	bookingRepo.On("GetByID", ctx, "b-1").Return(current, nil)
	bookingRepo.On("Update", ctx, mock.MatchedBy(func(b *domain.Booking) bool { return b.GuestName == "Asha R." })).Return(nil).Once()
	bookingRepo.On("Update", ctx, current).Return(nil).Once()
	calendarRepo.On("ReplaceEvent", ctx, current.FarmRef(), "b-1", mock.AnythingOfType("domain.Event")).
		Return(nil, errors.New("network down"))

	guest := "Asha R."
	res, err := svc.Update(ctx, "b-1", domain.BookingPatch{GuestName: &guest})

	var syncErr *domain.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.True(t, syncErr.Compensated)
	assert.Equal(t, domain.SyncCompensated, res.State)
	assert.Equal(t, "Asha Rao", res.Booking.GuestName)
}

func TestDeleteBooking_RemovesBothRecords(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)
	id := res.Booking.ID

	res, err = f.svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncCalendarWritten, res.State)

	_, err = f.bookings.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, eventByID(farmEvents(t, f, "seaside"), id))
}

func TestDeleteBooking_CalendarFailureNotCompensated(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()
	current := storedBooking()

	bookingRepo.On("GetByID", ctx, "b-1").Return(current, nil)
	bookingRepo.On("Delete", ctx, "b-1").Return(nil)
	calendarRepo.On("RemoveEvent", ctx, current.FarmRef(), "b-1").
		Return(nil, domain.NewNotFoundError(domain.SegmentState, "Maharashtra"))

	res, err := svc.Delete(ctx, "b-1")

	assert.ErrorIs(t, err, domain.ErrSyncFailure)
	assert.Equal(t, domain.SyncBookingWritten, res.State)
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteBooking_CalendarFailureCompensatedWhenEnabled(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{CompensateUpdates: true})
	ctx := context.Background()
	current := storedBooking()

	bookingRepo.On("GetByID", ctx, "b-1").Return(current, nil)
	bookingRepo.On("Delete", ctx, "b-1").Return(nil)
	calendarRepo.On("RemoveEvent", ctx, current.FarmRef(), "b-1").Return(nil, errors.New("timeout"))
	bookingRepo.On("Create", ctx, current).Return(nil)

	res, err := svc.Delete(ctx, "b-1")

	assert.ErrorIs(t, err, domain.ErrSyncFailure)
	assert.Equal(t, domain.SyncCompensated, res.State)
}

func TestDeleteBooking_CanceledSkipsCalendar(t *testing.T) {
	bookingRepo := mocks.NewBookingRepository(t)
	calendarRepo := mocks.NewCalendarRepository(t)
	svc := services.NewBookingService(bookingRepo, calendarRepo, zerolog.Nop(), services.BookingOptions{})
	ctx := context.Background()
	current := storedBooking()
	current.Status = domain.BookingCanceled

	bookingRepo.On("GetByID", ctx, "b-1").Return(current, nil)
	bookingRepo.On("Delete", ctx, "b-1").Return(nil)

	res, err := svc.Delete(ctx, "b-1")

	require.NoError(t, err)
	assert.Equal(t, domain.SyncCalendarWritten, res.State)
}

// A booking that only names its farm by label loses its join once the
// farm is renamed; one carrying the farmId keeps working.
func TestLabelJoinBreaksAfterRename(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	byLabel, err := f.svc.Create(ctx, newBooking("Seaside Farm", "2024-09-01", "10:00", "2024-09-01", "12:00"))
	require.NoError(t, err)
	withID := newBooking("Seaside Farm", "2024-09-03", "10:00", "2024-09-03", "12:00")
	withID.FarmID = "seaside"
	byID, err := f.svc.Create(ctx, withID)
	require.NoError(t, err)

	states := f.calendar.Snapshot()
	states[0].Places[0].Farms[1].Details.Name = "Seaside Retreat"
	f.calendar.Restore(states)

	occasion := "Reunion"
	_, err = f.svc.Update(ctx, byLabel.Booking.ID, domain.BookingPatch{Occasion: &occasion})
	assert.ErrorIs(t, err, domain.ErrSyncFailure)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Update(ctx, byID.Booking.ID, domain.BookingPatch{Occasion: &occasion})
	assert.NoError(t, err)
}

type recordingObserver struct {
	mu     sync.Mutex
	states []domain.SyncState
}

func (o *recordingObserver) Observe(op string, state domain.SyncState, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = append(o.states, state)
}

func TestBookingService_PublishesAndObserves(t *testing.T) {
	publisher := mocks.NewEventPublisher(t)
	observer := &recordingObserver{}
	f := newFixture(t, services.BookingOptions{Publisher: publisher, Observer: observer})
	ctx := context.Background()

	publisher.On("Publish", ctx, "booking.created", mock.Anything).Return(nil).Once()
	publisher.On("Publish", ctx, "booking.canceled", mock.Anything).Return(errors.New("broker down")).Once()

	res, err := f.svc.Create(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"))
	require.NoError(t, err)

	canceled := domain.BookingCanceled
	_, err = f.svc.Update(ctx, res.Booking.ID, domain.BookingPatch{Status: &canceled})
	require.NoError(t, err, "publish failures never fail the operation")

	_, _ = f.svc.Create(ctx, newBooking("nowhere", "2024-09-01", "10:00", "2024-09-02", "10:00"))

	assert.Equal(t, []domain.SyncState{domain.SyncCalendarWritten, domain.SyncCalendarWritten, domain.SyncCompensated}, observer.states)
}

func TestCreateWithPhoto(t *testing.T) {
	photos := mocks.NewPhotoStore(t)
	f := newFixture(t, services.BookingOptions{Photos: photos})
	ctx := context.Background()
	body := bytes.NewBufferString("jpeg-bytes")

	photos.On("Save", ctx, "guest.jpg", "image/jpeg", body).Return("photos/abc.jpg", nil).Once()

	res, err := f.svc.CreateWithPhoto(ctx, newBooking("seaside", "2024-09-01", "10:00", "2024-09-02", "10:00"),
		&services.PhotoUpload{Filename: "guest.jpg", ContentType: "image/jpeg", Body: body})

	require.NoError(t, err)
	assert.Equal(t, "photos/abc.jpg", res.Booking.Photo)
}

func TestCreateWithPhoto_RemovesPhotoOnFailure(t *testing.T) {
	photos := mocks.NewPhotoStore(t)
	f := newFixture(t, services.BookingOptions{Photos: photos})
	ctx := context.Background()

	photos.On("Save", ctx, "guest.jpg", "image/jpeg", mock.Anything).Return("photos/abc.jpg", nil).Once()
	photos.On("Delete", ctx, "photos/abc.jpg").Return(nil).Once()

	_, err := f.svc.CreateWithPhoto(ctx, newBooking("nowhere", "2024-09-01", "10:00", "2024-09-02", "10:00"),
		&services.PhotoUpload{Filename: "guest.jpg", ContentType: "image/jpeg", Body: bytes.NewBufferString("x")})

	assert.ErrorIs(t, err, domain.ErrSyncFailure)
}

func TestListBookings_Filters(t *testing.T) {
	f := newFixture(t, services.BookingOptions{})
	ctx := context.Background()

	first := newBooking("seaside", "2024-09-01", "10:00", "2024-09-03", "10:00")
	_, err := f.svc.Create(ctx, first)
	require.NoError(t, err)
	second := newBooking("gateway", "2024-10-01", "10:00", "2024-10-01", "20:00")
	second.GuestName = "Kabir Singh"
	second.TotalBooking = 90000
	_, err = f.svc.Create(ctx, second)
	require.NoError(t, err)

	got, err := f.svc.List(ctx, domain.BookingFilter{Guest: "asha"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha Rao", got[0].GuestName)

	total := 60000.0
	got, err = f.svc.List(ctx, domain.BookingFilter{Total: &total, TotalOp: domain.AmountGt})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kabir Singh", got[0].GuestName)

	from := mustTime(t, "2024-09-02T00:00:00Z")
	to := mustTime(t, "2024-09-02T23:59:59Z")
	got, err = f.svc.List(ctx, domain.BookingFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 1, "a stay straddling the range matches")

	names, err := f.svc.Distinct(ctx, domain.DistinctGuests)
	require.NoError(t, err)
	assert.Equal(t, []string{"Asha Rao", "Kabir Singh"}, names)
}
