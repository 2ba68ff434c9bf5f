package response

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors is the body of a rejected registration: {"errors": {field: message}}.
type FieldErrors struct {
	Errors map[string]string `json:"errors"`
}

// JSON writes data as the body without an envelope.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Success wraps data in the standard envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Fields writes a 400 with per-field messages.
func Fields(c *gin.Context, statusCode int, fields map[string]string) {
	c.JSON(statusCode, FieldErrors{Errors: fields})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest is the envelope for malformed query or path input.
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, 400, "BAD_REQUEST", message)
}
