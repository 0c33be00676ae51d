package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation status values. A reservation leaves READY_TO_PLAY at most once:
// to CANCELLED on cancellation, or through CANCELLED to RESCHEDULED when it is
// replaced by a new reservation on another slot.
const (
	StatusReadyToPlay = "READY_TO_PLAY"
	StatusCancelled   = "CANCELLED"
	StatusRescheduled = "RESCHEDULED"
)

type Reservation struct {
	ID          int             `db:"id" json:"id"`
	GuestID     int             `db:"guest_id" json:"guest_id"`
	ScheduleID  int             `db:"schedule_id" json:"schedule_id"`
	Value       decimal.Decimal `db:"value" json:"value"`
	RefundValue decimal.Decimal `db:"refund_value" json:"refund_value"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type ReservationWithDetails struct {
	Reservation
	ScheduleStart time.Time `db:"schedule_start" json:"schedule_start"`
	ScheduleEnd   time.Time `db:"schedule_end" json:"schedule_end"`
	CourtName     string    `db:"court_name" json:"court_name"`
	GuestName     string    `db:"guest_name" json:"guest_name"`
	GuestEmail    string    `db:"guest_email" json:"guest_email"`
}

// RescheduledReservation is the response shape of a reschedule: the freshly
// booked reservation carrying the superseded one. The back-link is not stored.
type RescheduledReservation struct {
	Reservation
	PreviousReservation *Reservation `json:"previous_reservation"`
}

type BookReservationRequest struct {
	GuestID    int `json:"guest_id" binding:"required"`
	ScheduleID int `json:"schedule_id" binding:"required"`
}
