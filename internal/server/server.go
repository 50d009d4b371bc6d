package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/config"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/events"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/mailer"
	custommiddleware "github.com/Shreyam1010/roar-emporium-gradient/internal/middleware"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/repository"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/service"
	"github.com/Shreyam1010/roar-emporium-gradient/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Redis backs rate limiting on the public endpoints
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)

	// Shared collaborators
	bus := events.NewBus()
	mail := mailer.NewResendClient(cfg.Mail)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, refreshTokenRepo, cfg.JWT.Secret, logger)
	productService := service.NewProductService(productRepo)
	enquiryService := service.NewEnquiryService(enquiryRepo, productRepo, mail, bus, logger)
	dashboardService := service.NewDashboardService(productRepo, enquiryRepo)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	enquiryHandler := transport.NewEnquiryHandler(enquiryService, bus, logger)
	dashboardHandler := transport.NewDashboardHandler(dashboardService, logger)
	notifyHandler := transport.NewNotifyHandler(mail, logger)

	// Route guards
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(roleRepo, logger)
	rateLimitMiddleware := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		KeyPrefix:         "enquiry_rate_limit",
	}, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	enquiryHandler.RegisterRoutes(router, authMiddleware, adminMiddleware, rateLimitMiddleware)
	dashboardHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	notifyHandler.RegisterRoutes(router, rateLimitMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			// No write timeout: the admin enquiry stream is long-lived SSE
			WriteTimeout: 0,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
