// internal/mockapi/server.go
package mockapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// Server is a self-contained mock of the remote commerce API. It serves
// the exact endpoint surface the client consumes from an in-memory
// seeded catalog, so development and integration tests need no external
// service. Clients should not read anything into its behavior beyond
// the documented API contract.
type Server struct {
	config     *config.Config
	log        *logrus.Logger
	gin        *gin.Engine
	httpServer *http.Server
	store      *memoryStore
	jwt        *auth.JWTManager
	passwords  *auth.PasswordManager
}

// NewServer creates a mock API server with the seeded catalog.
func NewServer(cfg *config.Config, log *logrus.Logger) *Server {
	s := &Server{
		config:    cfg,
		log:       log,
		store:     newMemoryStore(),
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg.Mock.BcryptCost),
	}
	s.store.seed(s.passwords)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	s.gin = gin.New()
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the underlying handler, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Mock.Port,
		Handler: s.gin,
	}

	s.log.WithField("port", s.config.Mock.Port).Info("Mock commerce API starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start mock API server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown mock API server: %w", err)
	}
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(s.requestLogger())
	s.gin.Use(cors())
}

// setupRoutes configures the endpoint surface the client consumes. The
// trailing slashes mirror the real API's URL style.
func (s *Server) setupRoutes() {
	s.gin.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.gin.Group("/api/v1")
	{
		v1.GET("/products/", s.listProducts)
		v1.GET("/products/:slug/", s.getProduct)
		v1.GET("/products/:slug/reviews/", s.listReviews)
		v1.POST("/products/:slug/reviews/", s.authRequired(), s.createReview)

		v1.GET("/categories/", s.listCategories)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register/", s.register)
			authGroup.POST("/login/", s.login)
		}

		orders := v1.Group("/orders", s.authRequired())
		{
			orders.GET("/", s.listOrders)
			orders.POST("/place/", s.placeOrder)
			orders.POST("/:id/cancel/", s.cancelOrder)
		}
	}
}
