package response

import (
	"errors"
	"net/http"

	"github.com/cinetix/service-booking/internal/domain"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body every endpoint returns.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Error maps a domain error to its HTTP status. Unclassified errors are
// internal server errors with a generic message so storage details never
// leak to clients.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, Envelope{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusConflict, Envelope{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrUnprocessable):
		c.JSON(http.StatusUnprocessableEntity, Envelope{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "internal server error"})
	}
}
