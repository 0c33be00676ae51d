package court

import (
	"context"
	"time"
)

type Repository interface {
	CreateCourt(ctx context.Context, name string) (*Court, error)
	GetCourtByID(ctx context.Context, id int) (*Court, error)
	ListCourts(ctx context.Context) ([]Court, error)
	CreateSchedule(ctx context.Context, courtID int, start time.Time) (*Schedule, error)
	GetScheduleByID(ctx context.Context, id int) (*Schedule, error)
	GetSchedulesByCourt(ctx context.Context, courtID int) ([]Schedule, error)
	FindFreeSchedules(ctx context.Context, from, to time.Time) ([]Schedule, error)
}
