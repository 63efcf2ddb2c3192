// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/surfshop-backend/internal/config"
	"github.com/your-org/surfshop-backend/internal/domain/cart"
	"github.com/your-org/surfshop-backend/internal/domain/catalog"
	"github.com/your-org/surfshop-backend/internal/domain/order"
	"github.com/your-org/surfshop-backend/internal/domain/property"
	"github.com/your-org/surfshop-backend/internal/domain/rental"
	"github.com/your-org/surfshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/surfshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/surfshop-backend/internal/interfaces/http/routes"
	"github.com/your-org/surfshop-backend/internal/pkg/auth"
	"github.com/your-org/surfshop-backend/internal/pkg/email"
	"github.com/your-org/surfshop-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	logger      *logrus.Logger
	startedAt   time.Time
}

// NewServer wires services onto a gin engine. redisClient may be nil when
// carts are kept in memory.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:      cfg,
		gin:         gin.New(),
		db:          db,
		redisClient: redisClient,
		logger:      logger,
		startedAt:   time.Now(),
	}

	if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		logger.WithError(err).Warn("Invalid trusted proxies, trusting none")
		_ = s.gin.SetTrustedProxies(nil)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the engine, for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"base_url": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.redisClient, s.logger))
	s.gin.Use(middleware.RequestSizeLimit(1 << 20))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// cartStorage picks Redis when configured and connected
func (s *Server) cartStorage() cart.Storage {
	if s.config.UsesRedis() && s.redisClient != nil {
		return cart.NewRedisStorage(s.redisClient, s.config.Cart.TTL)
	}
	s.logger.Warn("Carts are kept in process memory and will not survive a restart")
	return cart.NewMemoryStorage()
}

// buildHandlers constructs repositories, services and handlers
func (s *Server) buildHandlers() *routes.Handlers {
	mailer := email.NewEmailService(s.config.Email, s.logger)

	catalogService := catalog.NewService(catalog.NewGormRepository(s.db), s.logger)
	fleetService := rental.NewService(rental.NewGormRepository(s.db), s.logger)
	cartService := cart.NewService(s.cartStorage(), s.config.Cart.Namespace, s.logger)
	shackService := property.NewService(property.NewGormRepository(s.db), mailer, s.logger)

	orderService := order.NewService(
		order.NewGormRepository(s.db),
		order.NewGormTransactor(s.db),
		cartService,
		s.logger,
	)
	orderService.SetNotifier(mailer)

	return &routes.Handlers{
		Cart:     handlers.NewCartHandler(cartService, catalogService, fleetService, s.config, s.logger),
		Product:  handlers.NewProductHandler(catalogService, s.logger),
		Rental:   handlers.NewRentalHandler(fleetService, s.logger),
		Checkout: handlers.NewCheckoutHandler(orderService, pdf.NewService(s.config), s.config, s.logger),
		Shack:    handlers.NewShackHandler(shackService, s.logger),
	}
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, s.buildHandlers(), auth.NewJWTManager(s.config))

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     s.config.App.Name,
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"products": "/api/v1/products",
					"rentals":  "/api/v1/rentals",
					"cart":     "/api/v1/cart",
					"checkout": "/api/v1/checkout",
					"shack":    "/api/v1/shack",
					"admin":    "/api/v1/admin",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database connection error",
		})
		return
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
		return
	}

	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}
