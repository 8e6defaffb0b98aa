package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "thooral.backend/internal/domain/errors"
)

// Envelope is the uniform JSON wrapper returned by every endpoint
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Results *int        `json:"results,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SuccessList sends a success envelope carrying a result count
func SuccessList(c *gin.Context, status int, results int, data interface{}) {
	c.JSON(status, Envelope{
		Status:  "success",
		Data:    data,
		Results: &results,
	})
}

// Error sends an error envelope. Anything that is not an AppError is
// surfaced as a generic 500; the details field carries only the coarse
// error category, never internals.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, Envelope{
		Status:  "error",
		Message: appErr.Message,
		Details: appErr.Code,
	})
}
