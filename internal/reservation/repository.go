package reservation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a READY_TO_PLAY reservation. The reservations table carries a
// partial unique index on schedule_id for READY_TO_PLAY rows, so two
// concurrent bookings of the same slot cannot both commit: the loser gets a
// unique violation, surfaced as ErrSlotAlreadyBooked.
func (r *repository) Create(ctx context.Context, guestID, scheduleID int, value decimal.Decimal) (*Reservation, error) {
	query := `
		INSERT INTO reservations (guest_id, schedule_id, value, refund_value, status)
		VALUES ($1, $2, $3, 0, 'READY_TO_PLAY')
		RETURNING id, guest_id, schedule_id, value, refund_value, status, created_at
	`

	var reservation Reservation
	err := r.db.GetContext(ctx, &reservation, query, guestID, scheduleID, value)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}

	return &reservation, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Reservation, error) {
	query := `
		SELECT id, guest_id, schedule_id, value, refund_value, status, created_at
		FROM reservations
		WHERE id = $1
	`

	var reservation Reservation
	err := r.db.GetContext(ctx, &reservation, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &reservation, nil
}

// Cancel applies the cancellation mutation in one statement: status, remaining
// value, and refund land together or not at all. The status guard makes the
// READY_TO_PLAY -> CANCELLED transition single-shot even under races.
func (r *repository) Cancel(ctx context.Context, id int, value, refundValue decimal.Decimal) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'CANCELLED', value = $2, refund_value = $3
		WHERE id = $1 AND status = 'READY_TO_PLAY'
		RETURNING id, guest_id, schedule_id, value, refund_value, status, created_at
	`

	var reservation Reservation
	err := r.db.GetContext(ctx, &reservation, query, id, value, refundValue)
	if err == sql.ErrNoRows {
		return nil, ErrNotReadyToPlay
	}
	if err != nil {
		return nil, err
	}

	return &reservation, nil
}

// MarkRescheduled overwrites the CANCELLED status set by the cancellation half
// of a reschedule. Only reachable from CANCELLED, within the same operation.
func (r *repository) MarkRescheduled(ctx context.Context, id int) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'RESCHEDULED'
		WHERE id = $1 AND status = 'CANCELLED'
		RETURNING id, guest_id, schedule_id, value, refund_value, status, created_at
	`

	var reservation Reservation
	err := r.db.GetContext(ctx, &reservation, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &reservation, nil
}

func (r *repository) ScheduleIsBooked(ctx context.Context, scheduleID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE schedule_id = $1 AND status = 'READY_TO_PLAY'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, scheduleID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListByGuest(ctx context.Context, guestID int) ([]Reservation, error) {
	query := `
		SELECT id, guest_id, schedule_id, value, refund_value, status, created_at
		FROM reservations
		WHERE guest_id = $1
		ORDER BY created_at DESC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, guestID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListBySchedule(ctx context.Context, scheduleID int) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			r.id,
			r.guest_id,
			r.schedule_id,
			r.value,
			r.refund_value,
			r.status,
			r.created_at,
			s.start_date_time AS schedule_start,
			s.end_date_time AS schedule_end,
			c.name AS court_name,
			g.name AS guest_name,
			g.email AS guest_email
		FROM reservations r
		JOIN schedules s ON r.schedule_id = s.id
		JOIN courts c ON s.court_id = c.id
		JOIN guests g ON r.guest_id = g.id
		WHERE r.schedule_id = $1
		ORDER BY r.created_at DESC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, scheduleID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListByCourt(ctx context.Context, courtID int) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			r.id,
			r.guest_id,
			r.schedule_id,
			r.value,
			r.refund_value,
			r.status,
			r.created_at,
			s.start_date_time AS schedule_start,
			s.end_date_time AS schedule_end,
			c.name AS court_name,
			g.name AS guest_name,
			g.email AS guest_email
		FROM reservations r
		JOIN schedules s ON r.schedule_id = s.id
		JOIN courts c ON s.court_id = c.id
		JOIN guests g ON r.guest_id = g.id
		WHERE c.id = $1
		ORDER BY s.start_date_time DESC, r.created_at DESC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, courtID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
