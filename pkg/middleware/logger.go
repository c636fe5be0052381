package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// Logger bridges echo's request logger onto slog, one line per request.
func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	cfg := defaultLoggerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return middleware.RequestLoggerWithConfig(cfg)
}

func defaultLoggerConfig() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
				slog.ErrorContext(c.Request().Context(), "REQUEST_ERROR", attrs...)
				return nil
			}
			slog.InfoContext(c.Request().Context(), "REQUEST", attrs...)
			return nil
		},
	}
}
