package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "Upcoming"
	BookingPaid      BookingStatus = "Paid"
	BookingCompleted BookingStatus = "Completed"
	BookingCanceled  BookingStatus = "Canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingUpcoming, BookingPaid, BookingCompleted, BookingCanceled:
		return true
	}
	return false
}

// CanTransitionTo: Upcoming -> Paid -> Completed, Upcoming|Paid -> Canceled.
// Completed and Canceled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case BookingUpcoming:
		return next == BookingPaid || next == BookingCanceled
	case BookingPaid:
		return next == BookingCompleted || next == BookingCanceled
	}
	return false
}

type Booking struct {
	ID                 string        `json:"id"`
	GuestName          string        `json:"guestName"`
	PhoneNumber        string        `json:"phoneNumber"`
	CheckInDate        string        `json:"checkInDate"`
	CheckInTime        string        `json:"checkInTime"`
	CheckOutDate       string        `json:"checkOutDate"`
	CheckOutTime       string        `json:"checkOutTime"`
	Adults             int           `json:"adults"`
	Kids               int           `json:"kids"`
	MaxPeople          int           `json:"maxPeople"`
	Occasion           string        `json:"occasion"`
	HostOwnerName      string        `json:"hostOwnerName"`
	HostNumber         string        `json:"hostNumber"`
	TotalBooking       float64       `json:"totalBooking"`
	FarmTariff         float64       `json:"farmTariff"`
	OtherServices      string        `json:"otherServices,omitempty"`
	Advance            float64       `json:"advance"`
	AdvanceCollectedBy string        `json:"advanceCollectedBy,omitempty"`
	AdvanceMode        string        `json:"advanceMode,omitempty"`
	ShowAdvanceDetails bool          `json:"showAdvanceDetails"`
	BalancePayment     float64       `json:"balancePayment"`
	SecurityAmount     float64       `json:"securityAmount"`
	Commission         float64       `json:"commission"`
	TermsConditions    string        `json:"termsConditions,omitempty"`
	PartnerID          string        `json:"partnerId,omitempty"`
	State              string        `json:"state"`
	Place              string        `json:"place"`
	FarmID             string        `json:"farmId,omitempty"`
	Venue              string        `json:"venue"`
	Address            Address       `json:"address"`
	Photo              string        `json:"photo,omitempty"`
	Status             BookingStatus `json:"status"`
	Start              time.Time     `json:"start"`
	End                time.Time     `json:"end"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// FarmRef joins on the stable farmId when the booking carries one and
// falls back to the venue label otherwise.
func (b Booking) FarmRef() FarmRef {
	farm := b.FarmID
	if farm == "" {
		farm = b.Venue
	}
	return FarmRef{State: b.State, Place: b.Place, Farm: farm}
}

// Event is the calendar footprint of the booking.
func (b Booking) Event() Event {
	return Event{ID: b.ID, Title: b.Occasion, Start: b.Start, End: b.End}
}

// Normalize validates the record and derives Start and End from the
// separate check-in/out date and clock fields.
func (b *Booking) Normalize(loc *time.Location) error {
	required := []struct{ field, value string }{
		{"guestName", b.GuestName},
		{"phoneNumber", b.PhoneNumber},
		{"checkInDate", b.CheckInDate},
		{"checkInTime", b.CheckInTime},
		{"checkOutDate", b.CheckOutDate},
		{"checkOutTime", b.CheckOutTime},
		{"occasion", b.Occasion},
		{"state", b.State},
		{"place", b.Place},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewValidationError(r.field, "is required")
		}
	}
	if strings.TrimSpace(b.Venue) == "" && strings.TrimSpace(b.FarmID) == "" {
		return NewValidationError("venue", "venue or farmId is required")
	}
	if b.Status == "" {
		b.Status = BookingUpcoming
	}
	if !b.Status.Valid() {
		return NewValidationError("status", "unknown status "+string(b.Status))
	}
	if b.TotalBooking < 0 || b.Advance < 0 {
		return NewValidationError("totalBooking", "amounts must not be negative")
	}

	start, err := CombineDateClock(b.CheckInDate, b.CheckInTime, loc)
	if err != nil {
		return withField(err, "checkIn")
	}
	end, err := CombineDateClock(b.CheckOutDate, b.CheckOutTime, loc)
	if err != nil {
		return withField(err, "checkOut")
	}
	if !start.Before(end) {
		return NewValidationError("checkOut", "check-out must be after check-in")
	}
	b.Start, b.End = start, end
	return nil
}

func withField(err error, field string) error {
	if ve, ok := err.(*ValidationError); ok {
		return NewValidationError(field, ve.Reason)
	}
	return err
}

// BookingPatch carries the fields an update may change; nil means keep.
type BookingPatch struct {
	GuestName          *string        `json:"guestName"`
	PhoneNumber        *string        `json:"phoneNumber"`
	CheckInDate        *string        `json:"checkInDate"`
	CheckInTime        *string        `json:"checkInTime"`
	CheckOutDate       *string        `json:"checkOutDate"`
	CheckOutTime       *string        `json:"checkOutTime"`
	Adults             *int           `json:"adults"`
	Kids               *int           `json:"kids"`
	MaxPeople          *int           `json:"maxPeople"`
	Occasion           *string        `json:"occasion"`
	HostOwnerName      *string        `json:"hostOwnerName"`
	HostNumber         *string        `json:"hostNumber"`
	TotalBooking       *float64       `json:"totalBooking"`
	FarmTariff         *float64       `json:"farmTariff"`
	OtherServices      *string        `json:"otherServices"`
	Advance            *float64       `json:"advance"`
	AdvanceCollectedBy *string        `json:"advanceCollectedBy"`
	AdvanceMode        *string        `json:"advanceMode"`
	ShowAdvanceDetails *bool          `json:"showAdvanceDetails"`
	BalancePayment     *float64       `json:"balancePayment"`
	SecurityAmount     *float64       `json:"securityAmount"`
	Commission         *float64       `json:"commission"`
	TermsConditions    *string        `json:"termsConditions"`
	PartnerID          *string        `json:"partnerId"`
	State              *string        `json:"state"`
	Place              *string        `json:"place"`
	FarmID             *string        `json:"farmId"`
	Venue              *string        `json:"venue"`
	Address            *Address       `json:"address"`
	Photo              *string        `json:"photo"`
	Status             *BookingStatus `json:"status"`
}

// Apply returns a copy of b with the patch applied, re-validated and with
// Start/End recomputed. Illegal status transitions are rejected.
func (p BookingPatch) Apply(b Booking, loc *time.Location) (Booking, error) {
	next := b
	if p.Status != nil {
		if !p.Status.Valid() {
			return Booking{}, NewValidationError("status", "unknown status "+string(*p.Status))
		}
		if !b.Status.CanTransitionTo(*p.Status) {
			return Booking{}, NewValidationError("status",
				"cannot move from "+string(b.Status)+" to "+string(*p.Status))
		}
		next.Status = *p.Status
	}

	setString(&next.GuestName, p.GuestName)
	setString(&next.PhoneNumber, p.PhoneNumber)
	setString(&next.CheckInDate, p.CheckInDate)
	setString(&next.CheckInTime, p.CheckInTime)
	setString(&next.CheckOutDate, p.CheckOutDate)
	setString(&next.CheckOutTime, p.CheckOutTime)
	setString(&next.Occasion, p.Occasion)
	setString(&next.HostOwnerName, p.HostOwnerName)
	setString(&next.HostNumber, p.HostNumber)
	setString(&next.OtherServices, p.OtherServices)
	setString(&next.AdvanceCollectedBy, p.AdvanceCollectedBy)
	setString(&next.AdvanceMode, p.AdvanceMode)
	setString(&next.TermsConditions, p.TermsConditions)
	setString(&next.PartnerID, p.PartnerID)
	setString(&next.State, p.State)
	setString(&next.Place, p.Place)
	setString(&next.FarmID, p.FarmID)
	setString(&next.Venue, p.Venue)
	setString(&next.Photo, p.Photo)

	if p.Adults != nil {
		next.Adults = *p.Adults
	}
	if p.Kids != nil {
		next.Kids = *p.Kids
	}
	if p.MaxPeople != nil {
		next.MaxPeople = *p.MaxPeople
	}
	if p.TotalBooking != nil {
		next.TotalBooking = *p.TotalBooking
	}
	if p.FarmTariff != nil {
		next.FarmTariff = *p.FarmTariff
	}
	if p.Advance != nil {
		next.Advance = *p.Advance
	}
	if p.ShowAdvanceDetails != nil {
		next.ShowAdvanceDetails = *p.ShowAdvanceDetails
	}
	if p.BalancePayment != nil {
		next.BalancePayment = *p.BalancePayment
	}
	if p.SecurityAmount != nil {
		next.SecurityAmount = *p.SecurityAmount
	}
	if p.Commission != nil {
		next.Commission = *p.Commission
	}
	if p.Address != nil {
		next.Address = *p.Address
	}

	if err := next.Normalize(loc); err != nil {
		return Booking{}, err
	}
	return next, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type AmountOp string

const (
	AmountEq  AmountOp = "eq"
	AmountGt  AmountOp = "gt"
	AmountGte AmountOp = "gte"
	AmountLt  AmountOp = "lt"
	AmountLte AmountOp = "lte"
)

func (op AmountOp) Compare(value, target float64) bool {
	switch op {
	case AmountGt:
		return value > target
	case AmountGte:
		return value >= target
	case AmountLt:
		return value < target
	case AmountLte:
		return value <= target
	}
	return value == target
}

type BookingFilter struct {
	Guest     string
	Owner     string
	Venue     string
	Phone     string
	Status    BookingStatus
	Occasion  string
	PartnerID string
	Total     *float64
	TotalOp   AmountOp
	From      *time.Time
	To        *time.Time
}

// Matches applies the filter in memory. Guest and owner are
// case-insensitive substrings; the date range keeps bookings whose check-in
// or check-out falls inside it or whose stay straddles it.
func (f BookingFilter) Matches(b Booking) bool {
	if f.Guest != "" && !containsFold(b.GuestName, f.Guest) {
		return false
	}
	if f.Owner != "" && !containsFold(b.HostOwnerName, f.Owner) {
		return false
	}
	if f.Venue != "" && !strings.EqualFold(b.Venue, f.Venue) {
		return false
	}
	if f.Phone != "" && b.PhoneNumber != f.Phone {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Occasion != "" && !strings.EqualFold(b.Occasion, f.Occasion) {
		return false
	}
	if f.PartnerID != "" && b.PartnerID != f.PartnerID {
		return false
	}
	if f.Total != nil && !f.TotalOp.Compare(b.TotalBooking, *f.Total) {
		return false
	}
	if f.From != nil && b.End.Before(*f.From) {
		return false
	}
	if f.To != nil && b.Start.After(*f.To) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type DistinctField string

const (
	DistinctGuests DistinctField = "guests"
	DistinctVenues DistinctField = "venues"
	DistinctOwners DistinctField = "owners"
	DistinctPhones DistinctField = "phones"
)

func ParseDistinctField(s string) (DistinctField, error) {
	switch f := DistinctField(strings.ToLower(s)); f {
	case DistinctGuests, DistinctVenues, DistinctOwners, DistinctPhones:
		return f, nil
	}
	return "", NewValidationError("field", "unsupported distinct field "+s)
}

func (f DistinctField) Value(b Booking) string {
	switch f {
	case DistinctGuests:
		return b.GuestName
	case DistinctVenues:
		return b.Venue
	case DistinctOwners:
		return b.HostOwnerName
	case DistinctPhones:
		return b.PhoneNumber
	}
	return ""
}
