package reservation

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, guestID, scheduleID int, value decimal.Decimal) (*Reservation, error)
	GetByID(ctx context.Context, id int) (*Reservation, error)
	Cancel(ctx context.Context, id int, value, refundValue decimal.Decimal) (*Reservation, error)
	MarkRescheduled(ctx context.Context, id int) (*Reservation, error)
	ScheduleIsBooked(ctx context.Context, scheduleID int) (bool, error)
	ListByGuest(ctx context.Context, guestID int) ([]Reservation, error)
	ListBySchedule(ctx context.Context, scheduleID int) ([]ReservationWithDetails, error)
	ListByCourt(ctx context.Context, courtID int) ([]ReservationWithDetails, error)
}
