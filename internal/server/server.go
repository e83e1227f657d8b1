// Package server exposes catalog search over HTTP.
package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vegasq/catfilter/query"
)

// New builds the echo instance with middleware and routes
func New(catalog *Catalog, engine *query.Engine, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "http_request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.Any("error", v.Error),
			)
			return nil
		},
	}))

	NewHandler(catalog, engine, logger).RegisterRoutes(e)
	return e
}

// LoadAsync starts the server-side load in the background so the API is up
// immediately and answers 503 until the first load finishes.
func LoadAsync(catalog *Catalog, logger *slog.Logger) <-chan error {
	done := make(chan error, 1)
	go func() {
		logger.Info("catalog_loading")
		t, err := catalog.Reload()
		if err != nil {
			logger.Error("catalog_load_failed", "error", err)
			done <- err
			return
		}
		logger.Info("catalog_loaded", "rows", t.Len())
		done <- nil
	}()
	return done
}
