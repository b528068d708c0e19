package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

// BookingRepository stores the full invoice as a JSONB document next to the
// columns that filters and distinct lookups run against.
type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var distinctColumns = map[domain.DistinctField]string{
	domain.DistinctGuests: "guest_name",
	domain.DistinctVenues: "venue",
	domain.DistinctOwners: "host_owner_name",
	domain.DistinctPhones: "phone_number",
}

var amountOperators = map[domain.AmountOp]string{
	domain.AmountEq:  "=",
	domain.AmountGt:  ">",
	domain.AmountGte: ">=",
	domain.AmountLt:  "<",
	domain.AmountLte: "<=",
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	doc, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO bookings (id, guest_name, phone_number, host_owner_name, venue, occasion, status, partner_id, total_booking, start_at, end_at, document, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(ctx, query,
		booking.ID,
		booking.GuestName,
		booking.PhoneNumber,
		booking.HostOwnerName,
		booking.Venue,
		booking.Occasion,
		booking.Status,
		booking.PartnerID,
		booking.TotalBooking,
		booking.Start,
		booking.End,
		doc,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("booking %s already exists", booking.ID)
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM bookings WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError(domain.SegmentBooking, id)
		}
		return nil, err
	}

	var b domain.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	doc, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	query := `
	UPDATE bookings
	SET guest_name = $1,
		phone_number = $2,
		host_owner_name = $3,
		venue = $4,
		occasion = $5,
		status = $6,
		partner_id = $7,
		total_booking = $8,
		start_at = $9,
		end_at = $10,
		document = $11,
		updated_at = $12
	WHERE id = $13
	`

	result, err := r.db.ExecContext(ctx, query,
		booking.GuestName,
		booking.PhoneNumber,
		booking.HostOwnerName,
		booking.Venue,
		booking.Occasion,
		booking.Status,
		booking.PartnerID,
		booking.TotalBooking,
		booking.Start,
		booking.End,
		doc,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}

	return expectOne(result, domain.SegmentBooking, booking.ID)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}

	return expectOne(result, domain.SegmentBooking, id)
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	where, args := filterClause(filter)
	query := `SELECT document FROM bookings` + where + ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		var b domain.Booking
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) Distinct(ctx context.Context, field domain.DistinctField) ([]string, error) {
	column, ok := distinctColumns[field]
	if !ok {
		return nil, domain.NewValidationError("field", "unsupported distinct field "+string(field))
	}

	query := fmt.Sprintf(`SELECT DISTINCT %[1]s FROM bookings WHERE %[1]s <> '' ORDER BY %[1]s`, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// filterClause renders the filter as a WHERE clause with positional
// arguments, mirroring BookingFilter.Matches.
func filterClause(f domain.BookingFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Guest != "" {
		add("guest_name ILIKE $%d", "%"+escapeLike(f.Guest)+"%")
	}
	if f.Owner != "" {
		add("host_owner_name ILIKE $%d", "%"+escapeLike(f.Owner)+"%")
	}
	if f.Venue != "" {
		add("LOWER(venue) = LOWER($%d)", f.Venue)
	}
	if f.Phone != "" {
		add("phone_number = $%d", f.Phone)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Occasion != "" {
		add("LOWER(occasion) = LOWER($%d)", f.Occasion)
	}
	if f.PartnerID != "" {
		add("partner_id = $%d", f.PartnerID)
	}
	if f.Total != nil {
		op, ok := amountOperators[f.TotalOp]
		if !ok {
			op = "="
		}
		add("total_booking "+op+" $%d", *f.Total)
	}
	if f.From != nil {
		add("end_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("start_at <= $%d", *f.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
