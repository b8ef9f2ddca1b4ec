package server

import (
	"net/http"
	"time"

	"escrow/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// New builds the echo instance with the boundary middleware applied:
// request logging, panic recovery, CORS and the per-client rate limit.
func New(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	origins := []string{"*"}
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	e.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.RateLimitMax) / window.Seconds()),
			Burst:     cfg.RateLimitMax,
			ExpiresIn: window,
		}),
	}))

	return e
}

func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
