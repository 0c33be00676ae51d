package court

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) CreateCourt(ctx context.Context, name string) (*Court, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepository) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepository) ListCourts(ctx context.Context) ([]Court, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Court), args.Error(1)
}

func (m *MockRepository) CreateSchedule(ctx context.Context, courtID int, start time.Time) (*Schedule, error) {
	args := m.Called(ctx, courtID, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Schedule), args.Error(1)
}

func (m *MockRepository) GetScheduleByID(ctx context.Context, id int) (*Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Schedule), args.Error(1)
}

func (m *MockRepository) GetSchedulesByCourt(ctx context.Context, courtID int) ([]Schedule, error) {
	args := m.Called(ctx, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Schedule), args.Error(1)
}

func (m *MockRepository) FindFreeSchedules(ctx context.Context, from, to time.Time) ([]Schedule, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Schedule), args.Error(1)
}

func setupHandlerTest(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{repo: repo}

	router := gin.New()
	router.GET("/courts", h.ListCourts)
	router.GET("/courts/:courtID", h.FindCourt)
	router.GET("/courts/:courtID/full", h.FindCourtWithSchedules)
	router.GET("/courts/:courtID/schedules", h.ListSchedulesByCourt)
	router.GET("/schedules/:scheduleID", h.FindSchedule)
	router.GET("/schedules", h.FindFreeSchedules)
	router.POST("/admin/courts", h.CreateCourt)
	router.POST("/admin/schedules", h.CreateSchedule)
	return router
}

func TestHandler_CreateCourt(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreateCourt", mock.Anything, "Center Court").Return(&Court{ID: 1, Name: "Center Court"}, nil)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/courts", bytes.NewBufferString(`{"name": "Center Court"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got Court
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Center Court", got.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		router := setupHandlerTest(new(MockRepository))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/courts", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_FindCourt(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCourtByID", mock.Anything, 1).Return(&Court{ID: 1, Name: "Center Court"}, nil)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/courts/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCourtByID", mock.Anything, 99).Return(nil, ErrCourtNotFound)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/courts/99", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		router := setupHandlerTest(new(MockRepository))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/courts/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_FindCourtWithSchedules(t *testing.T) {
	repo := new(MockRepository)
	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	repo.On("GetCourtByID", mock.Anything, 1).Return(&Court{ID: 1, Name: "Center Court"}, nil)
	repo.On("GetSchedulesByCourt", mock.Anything, 1).Return([]Schedule{
		{ID: 2, CourtID: 1, StartDateTime: start, EndDateTime: start.Add(time.Hour)},
	}, nil)

	router := setupHandlerTest(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courts/1/full", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got CourtWithSchedules
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Center Court", got.Name)
	require.Len(t, got.Schedules, 1)
	assert.Equal(t, 2, got.Schedules[0].ID)
}

func TestHandler_CreateSchedule(t *testing.T) {
	t.Run("created with derived end time", func(t *testing.T) {
		repo := new(MockRepository)
		start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
		repo.On("GetCourtByID", mock.Anything, 1).Return(&Court{ID: 1, Name: "Center Court"}, nil)
		repo.On("CreateSchedule", mock.Anything, 1, start).Return(&Schedule{
			ID:            2,
			CourtID:       1,
			StartDateTime: start,
			EndDateTime:   start.Add(time.Hour),
		}, nil)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		body := `{"court_id": 1, "start_date_time": "2026-09-02T10:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/schedules", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got Schedule
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, start.Add(time.Hour), got.EndDateTime.UTC())
	})

	t.Run("bad start time format", func(t *testing.T) {
		router := setupHandlerTest(new(MockRepository))
		w := httptest.NewRecorder()
		body := `{"court_id": 1, "start_date_time": "tomorrow at ten"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/schedules", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown court", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCourtByID", mock.Anything, 99).Return(nil, ErrCourtNotFound)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		body := `{"court_id": 99, "start_date_time": "2026-09-02T10:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/schedules", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_FindFreeSchedules(t *testing.T) {
	t.Run("returns free slots in range", func(t *testing.T) {
		repo := new(MockRepository)
		from := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1).Add(23*time.Hour + 59*time.Minute)
		repo.On("FindFreeSchedules", mock.Anything, from, to).Return([]Schedule{
			{ID: 2, CourtID: 1},
		}, nil)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedules?startDate=2026-09-02&endDate=2026-09-03", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("missing params", func(t *testing.T) {
		router := setupHandlerTest(new(MockRepository))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedules?startDate=2026-09-02", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		router := setupHandlerTest(new(MockRepository))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedules?startDate=02-09-2026&endDate=03-09-2026", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_FindSchedule(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetScheduleByID", mock.Anything, 99).Return(nil, ErrScheduleNotFound)

		router := setupHandlerTest(repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedules/99", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
