package court

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrCourtNotFound    = errors.New("tennis court not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCourt(ctx context.Context, name string) (*Court, error) {
	query := `
		INSERT INTO courts (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, name)
	if err != nil {
		return nil, err
	}

	return &court, nil
}

func (r *repository) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	query := `
		SELECT id, name, created_at
		FROM courts
		WHERE id = $1
	`

	var court Court
	err := r.db.GetContext(ctx, &court, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, err
	}

	return &court, nil
}

func (r *repository) ListCourts(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, name, created_at
		FROM courts
		ORDER BY created_at DESC
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

// CreateSchedule derives the end time from the start; slots are always one hour.
func (r *repository) CreateSchedule(ctx context.Context, courtID int, start time.Time) (*Schedule, error) {
	query := `
		INSERT INTO schedules (court_id, start_date_time, end_date_time)
		VALUES ($1, $2, $3)
		RETURNING id, court_id, start_date_time, end_date_time, created_at
	`

	var schedule Schedule
	err := r.db.GetContext(ctx, &schedule, query, courtID, start, start.Add(ScheduleDuration))
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *repository) GetScheduleByID(ctx context.Context, id int) (*Schedule, error) {
	query := `
		SELECT id, court_id, start_date_time, end_date_time, created_at
		FROM schedules
		WHERE id = $1
	`

	var schedule Schedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *repository) GetSchedulesByCourt(ctx context.Context, courtID int) ([]Schedule, error) {
	query := `
		SELECT id, court_id, start_date_time, end_date_time, created_at
		FROM schedules
		WHERE court_id = $1
		ORDER BY start_date_time ASC
	`

	var schedules []Schedule
	err := r.db.SelectContext(ctx, &schedules, query, courtID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

// FindFreeSchedules returns schedules inside [from, to] with no active reservation.
func (r *repository) FindFreeSchedules(ctx context.Context, from, to time.Time) ([]Schedule, error) {
	query := `
		SELECT s.id, s.court_id, s.start_date_time, s.end_date_time, s.created_at
		FROM schedules s
		WHERE s.start_date_time > $1
		  AND s.end_date_time < $2
		  AND NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.schedule_id = s.id AND r.status = 'READY_TO_PLAY'
		  )
		ORDER BY s.start_date_time ASC
	`

	var schedules []Schedule
	err := r.db.SelectContext(ctx, &schedules, query, from, to)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}
