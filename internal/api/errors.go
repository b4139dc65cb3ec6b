package api

// Error-to-status mapping for the request boundary. Validation failures and
// missing rows surface their own messages; everything else is logged and
// collapsed into a generic 500.

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// errorResponse is the shape of every error body.
type errorResponse struct {
	Message string `json:"message"`
}

// writeError maps a store or validation error onto the response.
func writeError(c echo.Context, logger *log.Logger, err error) error {
	switch {
	case types.IsValidation(err):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, types.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: types.ErrNotFound.Error()})
	default:
		logger.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "server error"})
	}
}

// writeInvalidBody rejects bodies that fail to decode.
func writeInvalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid body"})
}
