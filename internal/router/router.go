package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	agentHandler "github.com/healthline/voice-agent/internal/handler/agent"
	"github.com/healthline/voice-agent/internal/handler/health"
	"github.com/healthline/voice-agent/internal/handler/tools"
	"github.com/healthline/voice-agent/internal/middleware"
)

type Config struct {
	RateLimit rate.Limit
	RateBurst int
}

type Router struct {
	engine *gin.Engine
}

// New assembles the gin engine: open health and metrics endpoints, then the
// authenticated /v1 tool surface behind the rate limiter.
func New(cfg Config, auth *middleware.Auth, toolsH *tools.Handler, agentH *agentHandler.Handler, healthH *health.Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	healthH.RegisterRoutes(engine.Group(""))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 50
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 100
	}
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})

	v1 := engine.Group("/v1", limiter.RateLimit(), auth.Authenticate())
	toolsH.RegisterRoutes(v1)
	agentH.RegisterRoutes(v1)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
