package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/core"
)

const (
	msgInvalidRequest     = "Invalid request"
	msgMissingFields      = "Missing required fields"
	msgInvalidCredentials = "Invalid credentials"
	msgNoToken            = "No token provided"
	msgInvalidToken       = "Invalid token"
	msgInternal           = "Internal server error"
)

// respondError maps err onto a status and a client-facing message. The
// entity names the resource in NotFound and Conflict messages. Only
// internal failures are logged; their detail never reaches the client.
func respondError(c *gin.Context, logger *slog.Logger, entity string, err error) {
	status, msg := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, core.ErrMissingField):
		status, msg = http.StatusBadRequest, msgMissingFields
	case errors.Is(err, core.ErrUnknownEnrollment):
		status, msg = http.StatusNotFound, "Enrollment number not found in the institution"
	case errors.Is(err, core.ErrUnknownPerson):
		status, msg = http.StatusBadRequest, "Invalid person ID. Person not found."
	case errors.Is(err, core.ErrPasswordMismatch):
		status, msg = http.StatusUnprocessableEntity, "Passwords do not match."
	case errors.Is(err, core.ErrValidation):
		status, msg = http.StatusUnprocessableEntity, msgInvalidRequest
	case errors.Is(err, core.ErrNotFound):
		status, msg = http.StatusNotFound, entity+" not found"
	case errors.Is(err, core.ErrConflict):
		status, msg = http.StatusConflict, entity+" already exists"
	case errors.Is(err, core.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, core.ErrMissingToken):
		status, msg = http.StatusUnauthorized, msgNoToken
	case core.IsUnauthorized(err):
		status, msg = http.StatusUnauthorized, msgInvalidToken
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
