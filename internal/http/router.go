package http

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/quotation-service/internal/http/middleware"
)

type RouterConfig struct {
	Environment    string
	AllowedOrigins []string
	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
}

// NewRouter builds the engine. Only X-Forwarded-For hops added by
// cfg.TrustedProxies count toward the client IP; nil trusts none.
func NewRouter(handler *Handler, sessionMiddleware gin.HandlerFunc, cfg RouterConfig, log zerolog.Logger) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
	)

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	router.Use(cors.New(corsCfg))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, log))

	handler.Register(router, sessionMiddleware)
	return router, nil
}
