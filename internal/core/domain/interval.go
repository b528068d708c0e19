package domain

import "time"

// Window is a closed interval [Start, End]. Touching endpoints overlap.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Overlaps(ev Event) bool {
	return !ev.Start.After(w.End) && !ev.End.Before(w.Start)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CoversDate reports whether day falls within the event's date-truncated
// span, both ends inclusive.
func (e Event) CoversDate(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(e.Start)) && !d.After(Day(e.End))
}

func (e Event) Window() Window {
	return Window{Start: e.Start, End: e.End}
}
