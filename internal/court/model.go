package court

import "time"

// ScheduleDuration is the fixed length of a bookable slot. A schedule's
// end time is always derived from its start time, never supplied by the caller.
const ScheduleDuration = time.Hour

type Court struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Schedule struct {
	ID            int       `db:"id" json:"id"`
	CourtID       int       `db:"court_id" json:"court_id"`
	StartDateTime time.Time `db:"start_date_time" json:"start_date_time"`
	EndDateTime   time.Time `db:"end_date_time" json:"end_date_time"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CourtWithSchedules struct {
	Court
	Schedules []Schedule `json:"schedules"`
}

type CreateCourtRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type CreateScheduleRequest struct {
	CourtID       int    `json:"court_id" binding:"required"`
	StartDateTime string `json:"start_date_time" binding:"required"`
}
