package domain

// SyncState is the outcome of one booking/calendar dual write.
type SyncState string

const (
	// SyncBookingWritten: the booking record changed, the calendar did not.
	SyncBookingWritten SyncState = "BOOKING_WRITTEN"
	// SyncCalendarWritten: both records were written.
	SyncCalendarWritten SyncState = "CALENDAR_WRITTEN"
	// SyncCompensated: the calendar write failed and the booking change was undone.
	SyncCompensated SyncState = "COMPENSATED"
	// SyncFailed: nothing durable happened, or the compensation itself failed.
	SyncFailed SyncState = "FAILED"
)
