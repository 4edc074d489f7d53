package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response represents the standard success response structure
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OK sends a 200 response with the standard envelope
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 response with the standard envelope
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// NoContent sends a 204 response with an empty body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail sends an error response with the specified HTTP status
func Fail(c *gin.Context, httpStatus int, message, details string) {
	c.JSON(httpStatus, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// FailErr sends an error response from an AppError
// If AppError.Err is not nil, it is logged but not returned to the client
func FailErr(c *gin.Context, err *AppError) {
	if err.Err != nil {
		logrus.WithFields(logrus.Fields{
			"status": err.HTTPStatus,
			"path":   c.FullPath(),
		}).Errorf("%s: %v", err.Message, err.Err)
	}

	c.JSON(err.HTTPStatus, ErrorResponse{
		Success: false,
		Error:   err.Message,
		Details: err.Details,
	})
}
