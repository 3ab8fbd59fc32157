package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftlink/platform-api/pkg/errors"
)

// H is a response body builder for success payloads. The public API
// contract is a flat object with a boolean `success` plus call-specific
// fields, so handlers compose bodies rather than wrapping them in an
// envelope.
type H = gin.H

// OK sends a 200 success body.
func OK(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 success body.
func Created(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(http.StatusCreated, body)
}

// Error translates err into the public `{error: string}` shape. AppErrors
// carry their own status; anything else is an opaque 500.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		status = appErr.StatusCode()
		message = appErr.Message
	}

	// Attach for the error middleware to log with request context.
	c.Error(err) //nolint:errcheck

	c.JSON(status, gin.H{"error": message})
}

// BadRequest reports a malformed request body or query.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
