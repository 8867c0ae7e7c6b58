package api

import (
	"strings"
	"time"

	"alertwatch/internal/api/handlers"
	"alertwatch/internal/api/middleware"
	"alertwatch/internal/api/validation"
	"alertwatch/internal/config"
	"alertwatch/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services holds everything the HTTP surface depends on.
type Services struct {
	Roles  *service.RoleService
	Alerts *service.AlertService
	Phones *service.PhoneService
	SMS    *service.SMSService
	Users  *service.UserService
}

type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	services Services
}

func NewServer(cfg *config.Config, services Services) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		services: services,
	}

	validation.RegisterValidators()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.AllowedOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	server.router.Use(cors.New(corsConfig))

	server.initializeRoutes()

	return server
}

func (s *Server) initializeRoutes() {
	alertHandler := handlers.NewAlertHandler(s.services.Alerts)
	phoneHandler := handlers.NewPhoneHandler(s.services.Phones)
	smsHandler := handlers.NewSMSHandler(s.services.SMS, s.services.Roles)
	adminHandler := handlers.NewAdminHandler(s.services.Users)
	setupHandler := handlers.NewSetupHandler(s.services.Users)
	healthHandler := handlers.NewHealthHandler()

	// Public routes
	public := s.router.Group("/api/v1")
	{
		public.GET("/health", healthHandler.Check)
		public.GET("/alerts/active", alertHandler.ListActive)
		public.GET("/alerts/stream", alertHandler.StreamActive)
		public.POST("/setup", setupHandler.Setup)
	}

	// Protected routes
	protected := s.router.Group("/api/v1")
	protected.Use(middleware.RequireAuth(s.services.Roles))
	{
		protected.GET("/alerts/mine", alertHandler.ListMine)
		protected.POST("/alerts/:id/vote", alertHandler.Vote)

		smsLimiter := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			RPS:   s.cfg.SMSRateRPS,
			Burst: s.cfg.SMSRateBurst,
		})
		protected.POST("/sms", smsLimiter, smsHandler.Send)
	}

	// Admin routes
	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/alerts", alertHandler.Create)
		admin.GET("/alerts", alertHandler.List)
		admin.GET("/alerts/history/stream", alertHandler.StreamHistory)
		admin.GET("/alerts/:id", alertHandler.Get)
		admin.POST("/alerts/:id/resolve", alertHandler.Resolve)
		admin.POST("/alerts/:id/false", alertHandler.MarkFalse)

		admin.GET("/phones", phoneHandler.List)
		admin.GET("/phones/stream", phoneHandler.StreamMine)
		admin.POST("/phones", phoneHandler.Register)
		admin.PATCH("/phones/:id", phoneHandler.Update)
		admin.DELETE("/phones/:id", phoneHandler.Deactivate)
	}

	// Superadmin routes
	super := protected.Group("/admin")
	super.Use(middleware.RequireSuperAdmin())
	{
		super.POST("/role", adminHandler.SetRole)
		super.POST("/user", adminHandler.UpdateUser)
		super.GET("/users", adminHandler.ListUsers)
	}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
