package server

import (
	"context"
	"net/http"
	"time"

	"courtside/internal/auth"
	"courtside/internal/config"
	"courtside/internal/court"
	"courtside/internal/email"
	"courtside/internal/guest"
	"courtside/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	guestHandler := guest.NewHandler(db, cfg.JWTSecret)
	courtHandler := court.NewHandler(db)
	reservationHandler := reservation.NewHandler(db, emailService)

	public := router.Group("/auth")
	{
		public.POST("/register", guestHandler.Register)
		public.POST("/login", guestHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", guestHandler.GetMe)

		protected.GET("/courts", courtHandler.ListCourts)
		protected.GET("/courts/:courtID", courtHandler.FindCourt)
		protected.GET("/courts/:courtID/schedules", courtHandler.ListSchedulesByCourt)
		protected.GET("/schedules", courtHandler.FindFreeSchedules)
		protected.GET("/schedules/:scheduleID", courtHandler.FindSchedule)

		protected.POST("/reservations", reservationHandler.Book)
		protected.GET("/reservations/:reservationID", reservationHandler.Find)
		protected.DELETE("/reservations/:reservationID", reservationHandler.Cancel)
		protected.PUT("/reservations/:reservationID/schedules/:scheduleID", reservationHandler.Reschedule)
		protected.GET("/my/reservations", reservationHandler.ListMyReservations)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/courts", courtHandler.CreateCourt)
		admin.GET("/courts/:courtID/full", courtHandler.FindCourtWithSchedules)
		admin.POST("/schedules", courtHandler.CreateSchedule)

		admin.GET("/guests", guestHandler.ListGuests)
		admin.GET("/guests/filter", guestHandler.FindGuestByName)
		admin.GET("/guests/:guestID", guestHandler.FindGuest)
		admin.PATCH("/guests/:guestID", guestHandler.UpdateGuest)
		admin.DELETE("/guests/:guestID", guestHandler.DeleteGuest)

		admin.GET("/schedules/:scheduleID/reservations", reservationHandler.ListBySchedule)
		admin.GET("/courts/:courtID/reservations", reservationHandler.ListByCourt)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
