package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikededo/hubbl-sub002/internal/auth"
	"github.com/mikededo/hubbl-sub002/internal/booking"
	"github.com/mikededo/hubbl-sub002/internal/config"
	"github.com/mikededo/hubbl-sub002/internal/user"
	"github.com/mikededo/hubbl-sub002/internal/zone"
)

type Server struct {
	router     *gin.Engine
	config     *config.Config
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	userHandler *user.Handler,
	zoneHandler *zone.Handler,
	bookingHandler *booking.Handler,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimitPerSec, cfg.RateLimitBurst))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/zones", zoneHandler.ListZones)
		protected.GET("/zones/:zoneID", zoneHandler.GetZone)
		protected.GET("/zones/:zoneID/availability", bookingHandler.GetAvailability)
		protected.POST("/appointments", bookingHandler.BookAppointment)
		protected.GET("/appointments", bookingHandler.ListMyAppointments)
		protected.POST("/appointments/:appointmentID/cancel", bookingHandler.CancelAppointment)
	}

	// Zone management is open to staff; deleting appointments goes through
	// the booking service's authorizer, which is stricter.
	staffMiddleware := auth.RequireRole(user.RoleOwner, user.RoleWorker)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, staffMiddleware)
	{
		admin.POST("/zones", zoneHandler.CreateZone)
		admin.PUT("/zones/:zoneID", zoneHandler.UpdateZone)
		admin.DELETE("/appointments/:appointmentID", bookingHandler.DeleteAppointment)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying engine, mainly for httptest servers.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
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
