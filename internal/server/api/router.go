package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"convertd/internal/server/config"
)

// SetupRouter creates and configures the echo router with all routes and middleware.
func SetupRouter(handler *Handler, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	e.Use(RequestLogger())

	// Conversions are rate-limited; the cheap read endpoints are not.
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	e.POST("/convert", handler.HandleConvert, limiter.Middleware())
	e.POST("/batch-convert", handler.HandleBatchConvert, limiter.Middleware())

	e.GET("/supported-formats", handler.HandleSupportedFormats)
	e.GET("/conversion-options", handler.HandleConversionOptions)

	e.GET("/health", handler.HandleHealth)
	e.GET("/stats", handler.HandleStats)

	return e
}
