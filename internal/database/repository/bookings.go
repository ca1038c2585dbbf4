package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database"
)

const dateLayout = "2006-01-02"

// BookingRepo persists the last successfully loaded booking set per user.
// The snapshot is only ever replaced wholesale, mirroring the in-memory
// cache policy; there is no row-level patching.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ReplaceForUser swaps the user's snapshot for the given set in one
// transaction. An empty set clears the snapshot.
func (r *BookingRepo) ReplaceForUser(ctx context.Context, userID string, set []booking.Booking) error {
	cachedAt := database.Now()
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookings_snapshot WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		for _, b := range set {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO bookings_snapshot(
			 id, user_id, vehicle_id, customer_name, pickup_location,
			 start_date, end_date, booking_date, with_driver, status, total_price, cached_at)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
			`,
				b.ID, b.UserID, b.VehicleID, b.CustomerName, b.PickupLocation,
				b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout),
				b.BookingDate.UTC(), b.WithDriver, string(b.Status), b.TotalPrice, cachedAt); err != nil {
				return fmt.Errorf("insert snapshot row %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

// ListForUser returns the cached snapshot, newest booking first.
func (r *BookingRepo) ListForUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, user_id, vehicle_id, customer_name, pickup_location,
	       start_date, end_date, booking_date, with_driver, status, total_price
	FROM bookings_snapshot
	WHERE user_id = ?
	ORDER BY booking_date DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CachedAt reports when the user's snapshot was last replaced; the zero time
// means no snapshot exists.
func (r *BookingRepo) CachedAt(ctx context.Context, userID string) (time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT cached_at FROM bookings_snapshot WHERE user_id = ? LIMIT 1`, userID)
	var at time.Time
	if err := row.Scan(&at); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return at, nil
}

func scanBooking(rows *sql.Rows) (booking.Booking, error) {
	var b booking.Booking
	var start, end, status string
	if err := rows.Scan(&b.ID, &b.UserID, &b.VehicleID, &b.CustomerName, &b.PickupLocation,
		&start, &end, &b.BookingDate, &b.WithDriver, &status, &b.TotalPrice); err != nil {
		return booking.Booking{}, err
	}
	b.Status = booking.Status(status)
	var err error
	if b.StartDate.Time, err = time.Parse(dateLayout, start); err != nil {
		return booking.Booking{}, fmt.Errorf("snapshot start_date %q: %w", start, err)
	}
	if b.EndDate.Time, err = time.Parse(dateLayout, end); err != nil {
		return booking.Booking{}, fmt.Errorf("snapshot end_date %q: %w", end, err)
	}
	b.BookingDate = b.BookingDate.UTC()
	return b, nil
}
