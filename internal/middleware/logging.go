package middleware

import (
	"time"

	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs one line per served request
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log := logger.FromContext(c)
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}
			switch {
			case c.Response().Status >= 500:
				log.Error("Request failed", append(fields, zap.Error(err))...)
			case c.Response().Status >= 400:
				log.Warn("Request rejected", fields...)
			default:
				log.Info("Request served", fields...)
			}
			return nil
		}
	}
}
