package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"courtside/internal/auth"
	"courtside/internal/court"
	"courtside/internal/email"
	"courtside/internal/guest"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
	repo    Repository
}

func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	repo := NewRepository(db)
	return &Handler{
		service: NewService(repo, court.NewRepository(db), guest.NewRepository(db), emailService),
		repo:    repo,
	}
}

// respondError maps the engine's failure kinds onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGuestNotFound),
		errors.Is(err, ErrScheduleNotFound),
		errors.Is(err, ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrSlotAlreadyBooked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotReadyToPlay), errors.Is(err, ErrPastSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Book godoc
// @Summary      Book a reservation
// @Description  Books the given schedule slot for a guest at the flat slot price.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BookReservationRequest  true  "Booking data"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /reservations [post]
func (h *Handler) Book(c *gin.Context) {
	var req BookReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.service.Book(c.Request.Context(), req.GuestID, req.ScheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// Find godoc
// @Summary      Find a reservation by id
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  Reservation
// @Failure      400            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Router       /reservations/{reservationID} [get]
func (h *Handler) Find(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	reservation, err := h.service.Find(c.Request.Context(), reservationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// Cancel godoc
// @Summary      Cancel a reservation
// @Description  Cancels a READY_TO_PLAY reservation on a future slot and computes the refund.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  Reservation
// @Failure      400            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Router       /reservations/{reservationID} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	reservation, err := h.service.Cancel(c.Request.Context(), reservationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// Reschedule godoc
// @Summary      Reschedule a reservation
// @Description  Cancels the previous reservation and books the new schedule for the same guest.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Previous reservation ID"
// @Param        scheduleID     path      int  true  "New schedule ID"
// @Success      200            {object}  RescheduledReservation
// @Failure      400            {object}  gin.H
// @Failure      404            {object}  gin.H
// @Failure      409            {object}  gin.H
// @Router       /reservations/{reservationID}/schedules/{scheduleID} [put]
func (h *Handler) Reschedule(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	result, err := h.service.Reschedule(c.Request.Context(), reservationID, scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMyReservations godoc
// @Summary      List my reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /my/reservations [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	guestID, exists := auth.GetGuestID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Guest not authenticated"})
		return
	}

	reservations, err := h.repo.ListByGuest(c.Request.Context(), guestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListBySchedule godoc
// @Summary      List reservations by schedule
// @Description  Returns all reservations (history included) for a schedule slot. Admin only.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Schedule ID"
// @Success      200         {array}   ReservationWithDetails
// @Failure      400         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /admin/schedules/{scheduleID}/reservations [get]
func (h *Handler) ListBySchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	reservations, err := h.repo.ListBySchedule(c.Request.Context(), scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListByCourt godoc
// @Summary      List reservations by court
// @Description  Returns all reservations for a court's schedules. Admin only.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {array}   ReservationWithDetails
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/courts/{courtID}/reservations [get]
func (h *Handler) ListByCourt(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	reservations, err := h.repo.ListByCourt(c.Request.Context(), courtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
