package court

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo: NewRepository(db),
	}
}

// CreateCourt godoc
// @Summary      Create tennis court
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCourtRequest  true  "Court data"
// @Success      201      {object}  Court
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	court, err := h.repo.CreateCourt(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, court)
}

// ListCourts godoc
// @Summary      List tennis courts
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Court
// @Failure      500  {object}  gin.H
// @Router       /courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	courts, err := h.repo.ListCourts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// FindCourt godoc
// @Summary      Find tennis court by id
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  Court
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /courts/{courtID} [get]
func (h *Handler) FindCourt(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	court, err := h.repo.GetCourtByID(c.Request.Context(), courtID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tennis court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, court)
}

// FindCourtWithSchedules godoc
// @Summary      Find tennis court with its schedules
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  CourtWithSchedules
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /courts/{courtID}/full [get]
func (h *Handler) FindCourtWithSchedules(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	court, err := h.repo.GetCourtByID(c.Request.Context(), courtID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tennis court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	schedules, err := h.repo.GetSchedulesByCourt(c.Request.Context(), courtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, CourtWithSchedules{
		Court:     *court,
		Schedules: schedules,
	})
}

// CreateSchedule godoc
// @Summary      Add schedule to tennis court
// @Description  Creates a one-hour slot starting at the given time.
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateScheduleRequest  true  "Schedule data"
// @Success      201      {object}  Schedule
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/schedules [post]
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date_time format, use RFC3339"})
		return
	}

	if _, err := h.repo.GetCourtByID(c.Request.Context(), req.CourtID); err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tennis court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	schedule, err := h.repo.CreateSchedule(c.Request.Context(), req.CourtID, start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// FindSchedule godoc
// @Summary      Find schedule by id
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Schedule ID"
// @Success      200         {object}  Schedule
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Router       /schedules/{scheduleID} [get]
func (h *Handler) FindSchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	schedule, err := h.repo.GetScheduleByID(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// ListSchedulesByCourt godoc
// @Summary      List schedules of a court
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {array}   Schedule
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /courts/{courtID}/schedules [get]
func (h *Handler) ListSchedulesByCourt(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	schedules, err := h.repo.GetSchedulesByCourt(c.Request.Context(), courtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// FindFreeSchedules godoc
// @Summary      Find free schedules between dates
// @Description  Returns schedules without an active reservation, between the start of startDate and the end of endDate.
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        startDate  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        endDate    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200        {array}   Schedule
// @Failure      400        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /schedules [get]
func (h *Handler) FindFreeSchedules(c *gin.Context) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")

	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate query params are required"})
		return
	}

	startDate, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate format, use YYYY-MM-DD"})
		return
	}

	endDate, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, use YYYY-MM-DD"})
		return
	}

	from := startDate
	to := endDate.Add(23*time.Hour + 59*time.Minute)

	schedules, err := h.repo.FindFreeSchedules(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}
