package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/beautycare/scheduling-api/internal/config"
	appointmentHandler "github.com/beautycare/scheduling-api/internal/handler/appointment"
	authHandler "github.com/beautycare/scheduling-api/internal/handler/auth"
	catalogHandler "github.com/beautycare/scheduling-api/internal/handler/catalog"
	clientHandler "github.com/beautycare/scheduling-api/internal/handler/client"
	healthHandler "github.com/beautycare/scheduling-api/internal/handler/health"
	staffHandler "github.com/beautycare/scheduling-api/internal/handler/staff"
	userHandler "github.com/beautycare/scheduling-api/internal/handler/user"
	"github.com/beautycare/scheduling-api/internal/middleware"
	"github.com/beautycare/scheduling-api/internal/repository/mysql"
	"github.com/beautycare/scheduling-api/internal/router"
	appointmentService "github.com/beautycare/scheduling-api/internal/service/appointment"
	authService "github.com/beautycare/scheduling-api/internal/service/auth"
	catalogService "github.com/beautycare/scheduling-api/internal/service/catalog"
	clientService "github.com/beautycare/scheduling-api/internal/service/client"
	staffService "github.com/beautycare/scheduling-api/internal/service/staff"
	userService "github.com/beautycare/scheduling-api/internal/service/user"
	"github.com/beautycare/scheduling-api/pkg/auth"
	"github.com/beautycare/scheduling-api/pkg/logger"
	"github.com/beautycare/scheduling-api/pkg/messaging"
	redisBroker "github.com/beautycare/scheduling-api/pkg/messaging/redis"
	"github.com/beautycare/scheduling-api/pkg/metrics"
	"github.com/beautycare/scheduling-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})
	zl := appLogger.Zerolog()

	if err := validator.RegisterCustomValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := mysql.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("scheduling_api")
	store := mysql.NewStore(db, m)

	// Repositories
	appointmentRepo := mysql.NewAppointmentRepository(store)
	lineRepo := mysql.NewAppointmentLineRepository(store)
	clientRepo := mysql.NewClientRepository(store)
	staffRepo := mysql.NewStaffRepository(store)
	serviceRepo := mysql.NewServiceRepository(store)
	userRepo := mysql.NewUserRepository(store)

	// Message broker is optional; without Redis the API runs but skips
	// lifecycle events.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour, cfg.JWT.Issuer)
	authSvc := authService.NewService(userRepo, jwtSvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo, lineRepo, broker, m, zl)
	clientSvc := clientService.NewService(clientRepo)
	staffSvc := staffService.NewService(staffRepo)
	catalogSvc := catalogService.NewService(serviceRepo)
	userSvc := userService.NewService(userRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		router.Config{
			CORSConfig:        middleware.DefaultCORSConfig(),
			RequestTimeout:    30 * time.Second,
			RateLimitEnabled:  cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			RateBurst:         cfg.RateLimit.Burst,
		},
		m,
		authMiddleware,
		zl,
		authHandler.NewHandler(authSvc),
		[]router.Handler{
			appointmentHandler.NewHandler(appointmentSvc),
			clientHandler.NewHandler(clientSvc),
			staffHandler.NewHandler(staffSvc),
			catalogHandler.NewHandler(catalogSvc),
		},
		[]router.Handler{
			userHandler.NewHandler(userSvc),
		},
	)

	healthHandler.NewHandler(db).RegisterRoutes(r.Engine())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
