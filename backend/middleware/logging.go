package middleware

import (
	"strconv"
	"time"

	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every request and feeds the request metrics. The
// route pattern is used as the path label to keep cardinality bounded.
func LoggingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Let the app's error handler write the response so the status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := c.Response().StatusCode()
		duration := time.Since(start).Seconds()

		utils.ReqCount.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		utils.ReqDuration.WithLabelValues(c.Method(), path).Observe(duration)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Float64("duration", duration),
			zap.String("client_ip", c.IP()),
		}
		if userID := UserID(c); userID != 0 {
			fields = append(fields, zap.Uint("user_id", userID))
		}
		logger.Info("http_request", fields...)
		return nil
	}
}
