package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/beautycare/scheduling-api/internal/middleware"
	"github.com/beautycare/scheduling-api/pkg/metrics"
)

// Handler registers its routes on the versioned API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	CORSConfig        middleware.CORSConfig
	RequestTimeout    time.Duration
	RateLimitEnabled  bool
	RequestsPerSecond float64
	RateBurst         int
}

type Router struct {
	engine *gin.Engine
}

// NewRouter builds the gin engine with the shared middleware chain and
// mounts every handler under /api/v1. The auth handler stays outside the
// authenticated group so login works without a token; admin handlers
// additionally require the admin role.
func NewRouter(
	cfg Config,
	m *metrics.Metrics,
	auth *middleware.AuthMiddleware,
	logger *zerolog.Logger,
	authH Handler,
	protected []Handler,
	admin []Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.CORSConfig))
	if m != nil {
		engine.Use(middleware.Metrics(m))
	}
	if cfg.RateLimitEnabled {
		engine.Use(middleware.NewRateLimiter(cfg.RequestsPerSecond, cfg.RateBurst).RateLimit())
	}
	if cfg.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := engine.Group("/api/v1")
	authH.RegisterRoutes(public)

	api := engine.Group("/api/v1")
	api.Use(auth.Authenticate())
	for _, h := range protected {
		h.RegisterRoutes(api)
	}

	adminAPI := engine.Group("/api/v1")
	adminAPI.Use(auth.Authenticate(), auth.RequireRole("admin"))
	for _, h := range admin {
		h.RegisterRoutes(adminAPI)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
