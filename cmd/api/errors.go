package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-location/internal/cascade"
	"storefront-location/internal/location"
	"storefront-location/internal/session"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"invalid ISO code"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, location.ErrInvalidCode),
		errors.Is(err, location.ErrInvalidCoordinates),
		errors.Is(err, location.ErrInvariantViolation):
		return http.StatusBadRequest
	case errors.Is(err, location.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, cascade.ErrNotRunning):
		return http.StatusNotFound
	case errors.Is(err, location.ErrGeocode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, location.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Validation errors carry the error text.
// Geocoding and server side failures wrap upstream detail, so they are logged
// with args and answered with msg.
func (app *App) fail(c *gin.Context, err error, msg string, args ...any) {
	status := statusFor(err)
	if status == http.StatusUnprocessableEntity {
		app.logger.Warn(msg, append(args, "error", err)...)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	if status < http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	app.logger.Error(msg, append(args, "error", err)...)
	c.JSON(status, ErrorResponse{Error: msg})
}
