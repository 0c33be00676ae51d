package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func reservationColumns() []string {
	return []string{"id", "guest_id", "schedule_id", "value", "refund_value", "status", "created_at"}
}

func TestRepository_Create(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO reservations (guest_id, schedule_id, value, refund_value, status) VALUES ($1, $2, $3, 0, 'READY_TO_PLAY') RETURNING id, guest_id, schedule_id, value, refund_value, status, created_at`)

	t.Run("inserts ready to play reservation", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewRepository(db)

		rows := sqlmock.NewRows(reservationColumns()).
			AddRow(10, 1, 2, "10", "0", StatusReadyToPlay, time.Now())
		mock.ExpectQuery(query).
			WithArgs(1, 2, SlotPrice).
			WillReturnRows(rows)

		reservation, err := repo.Create(context.Background(), 1, 2, SlotPrice)
		require.NoError(t, err)
		assert.Equal(t, 10, reservation.ID)
		assert.Equal(t, StatusReadyToPlay, reservation.Status)
		assert.True(t, reservation.Value.Equal(SlotPrice))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to slot already booked", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewRepository(db)

		mock.ExpectQuery(query).
			WithArgs(1, 2, SlotPrice).
			WillReturnError(&pq.Error{Code: uniqueViolation})

		_, err := repo.Create(context.Background(), 1, 2, SlotPrice)
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, guest_id, schedule_id, value, refund_value, status, created_at FROM reservations WHERE id = $1`)

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewRepository(db)

		rows := sqlmock.NewRows(reservationColumns()).
			AddRow(3, 1, 2, "10", "0", StatusReadyToPlay, time.Now())
		mock.ExpectQuery(query).WithArgs(3).WillReturnRows(rows)

		reservation, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, reservation.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewRepository(db)

		mock.ExpectQuery(query).WithArgs(99).WillReturnRows(sqlmock.NewRows(reservationColumns()))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_Cancel(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE reservations SET status = 'CANCELLED', value = $2, refund_value = $3 WHERE id = $1 AND status = 'READY_TO_PLAY' RETURNING id, guest_id, schedule_id, value, refund_value, status, created_at`)

	t.Run("cancels a ready to play reservation", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewRepository(db)

		rows := sqlmock.NewRows(reservationColumns()).
			AddRow(3, 1, 2, "0", "10", StatusCancelled, time.Now())
		mock.ExpectQuery(query).
			WithArgs(3, decimal.Zero, decimal.NewFromInt(10)).
			WillReturnRows(rows)

		reservation, err := repo.Cancel(context.Background(), 3, decimal.Zero, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, reservation.Status)
		assert.True(t, reservation.RefundValue.Equal(decimal.NewFromInt(10)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ready to play row matches", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewRepository(db)

		mock.ExpectQuery(query).
			WithArgs(3, decimal.Zero, decimal.NewFromInt(10)).
			WillReturnRows(sqlmock.NewRows(reservationColumns()))

		_, err := repo.Cancel(context.Background(), 3, decimal.Zero, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrNotReadyToPlay)
	})
}

func TestRepository_MarkRescheduled(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE reservations SET status = 'RESCHEDULED' WHERE id = $1 AND status = 'CANCELLED' RETURNING id, guest_id, schedule_id, value, refund_value, status, created_at`)

	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(reservationColumns()).
		AddRow(3, 1, 2, "0", "10", StatusRescheduled, time.Now())
	mock.ExpectQuery(query).WithArgs(3).WillReturnRows(rows)

	reservation, err := repo.MarkRescheduled(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, reservation.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ScheduleIsBooked(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT EXISTS( SELECT 1 FROM reservations WHERE schedule_id = $1 AND status = 'READY_TO_PLAY' )`)

	tests := []struct {
		name   string
		exists bool
	}{
		{"booked", true},
		{"free", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewRepository(db)

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists)
			mock.ExpectQuery(query).WithArgs(2).WillReturnRows(rows)

			booked, err := repo.ScheduleIsBooked(context.Background(), 2)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, booked)
		})
	}
}

func TestRepository_ListByGuest(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, guest_id, schedule_id, value, refund_value, status, created_at FROM reservations WHERE guest_id = $1 ORDER BY created_at DESC`)

	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(reservationColumns()).
		AddRow(3, 1, 2, "0", "10", StatusCancelled, time.Now()).
		AddRow(4, 1, 5, "10", "0", StatusReadyToPlay, time.Now())
	mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)

	reservations, err := repo.ListByGuest(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, StatusCancelled, reservations[0].Status)
	assert.Equal(t, StatusReadyToPlay, reservations[1].Status)
}

func TestRepository_ListByCourt(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)

	columns := append(reservationColumns(),
		"schedule_start", "schedule_end", "court_name", "guest_name", "guest_email")
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).
		AddRow(3, 1, 2, "10", "0", StatusReadyToPlay, time.Now(),
			start, start.Add(time.Hour), "Center Court", "Roger", "roger@example.com")
	mock.ExpectQuery("SELECT (.+) FROM reservations r JOIN schedules s").
		WithArgs(1).
		WillReturnRows(rows)

	reservations, err := repo.ListByCourt(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "Center Court", reservations[0].CourtName)
	assert.Equal(t, "Roger", reservations[0].GuestName)
}
