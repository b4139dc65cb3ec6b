package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// requestIDHeader carries the id assigned to each request, echoed back to
// the caller for log correlation.
const requestIDHeader = "X-Request-ID"

// RequestLogger assigns a request id and logs one structured line per
// request with method, path, status, and duration.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, requestID)

			start := time.Now()
			err := next(c)

			entry := logger.WithFields(log.Fields{
				"request_id": requestID,
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"duration":   time.Since(start).String(),
			})
			if err != nil {
				entry.WithError(err).Error("request")
				return err
			}
			entry.Debug("request")
			return nil
		}
	}
}
