package guest

import (
	"errors"
	"net/http"
	"strconv"

	"courtside/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo      Repository
	jwtSecret string
}

func NewHandler(db *sqlx.DB, jwtSecret string) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		jwtSecret: jwtSecret,
	}
}

// Register godoc
// @Summary      Register new guest
// @Description  Creates a guest account and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Guest registration data"
// @Success      201      {object}  LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.repo.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	guest, err := h.repo.Create(c.Request.Context(), req.Name, req.Email, passwordHash, auth.RoleGuest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(guest.ID, guest.Email, guest.Role, h.jwtSecret, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Guest:        *guest,
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticates a guest and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPassword(guest.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(guest.ID, guest.Email, guest.Role, h.jwtSecret, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Guest:        *guest,
	})
}

// GetMe godoc
// @Summary      Current guest
// @Description  Returns the authenticated guest's record.
// @Tags         guests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Guest
// @Failure      401  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	guestID, exists := auth.GetGuestID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Guest not authenticated"})
		return
	}

	guest, err := h.repo.FindByID(c.Request.Context(), guestID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
		return
	}

	c.JSON(http.StatusOK, guest)
}

// FindGuest godoc
// @Summary      Find guest by id
// @Tags         guests
// @Security     BearerAuth
// @Produce      json
// @Param        guestID  path      int  true  "Guest ID"
// @Success      200      {object}  Guest
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/guests/{guestID} [get]
func (h *Handler) FindGuest(c *gin.Context) {
	guestID, err := strconv.Atoi(c.Param("guestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest ID"})
		return
	}

	guest, err := h.repo.FindByID(c.Request.Context(), guestID)
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, guest)
}

// FindGuestByName godoc
// @Summary      Find guest by name
// @Tags         guests
// @Security     BearerAuth
// @Produce      json
// @Param        name  query     string  true  "Guest name"
// @Success      200   {object}  Guest
// @Failure      400   {object}  gin.H
// @Failure      404   {object}  gin.H
// @Router       /admin/guests/filter [get]
func (h *Handler) FindGuestByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query param is required"})
		return
	}

	guest, err := h.repo.FindByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, guest)
}

// ListGuests godoc
// @Summary      List all guests
// @Tags         guests
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Guest
// @Failure      500  {object}  gin.H
// @Router       /admin/guests [get]
func (h *Handler) ListGuests(c *gin.Context) {
	guests, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guests"})
		return
	}

	c.JSON(http.StatusOK, guests)
}

// UpdateGuest godoc
// @Summary      Update guest name
// @Tags         guests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        guestID  path      int                 true  "Guest ID"
// @Param        request  body      UpdateGuestRequest  true  "New guest data"
// @Success      200      {object}  Guest
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/guests/{guestID} [patch]
func (h *Handler) UpdateGuest(c *gin.Context) {
	guestID, err := strconv.Atoi(c.Param("guestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest ID"})
		return
	}

	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := h.repo.UpdateName(c.Request.Context(), guestID, req.Name)
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guest"})
		return
	}

	c.JSON(http.StatusOK, guest)
}

// DeleteGuest godoc
// @Summary      Delete guest
// @Tags         guests
// @Security     BearerAuth
// @Produce      json
// @Param        guestID  path  int  true  "Guest ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /admin/guests/{guestID} [delete]
func (h *Handler) DeleteGuest(c *gin.Context) {
	guestID, err := strconv.Atoi(c.Param("guestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), guestID); err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete guest"})
		return
	}

	c.Status(http.StatusNoContent)
}
