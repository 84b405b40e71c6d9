package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the standardized API response envelope.
type Response struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Code    ErrCode      `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Count   *int         `json:"count,omitempty"`
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

// SuccessMessage sends a successful response carrying data and a message.
func SuccessMessage(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, Response{Success: true, Data: data, Message: message})
}

// SuccessList sends a list together with its length.
func SuccessList(c *gin.Context, data interface{}, count int) {
	c.JSON(200, Response{Success: true, Data: data, Count: &count})
}

// SuccessWith sends a successful response whose body is fields plus success=true.
// It serves endpoints that return top-level values such as id or token.
func SuccessWith(c *gin.Context, statusCode int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Fail sends an error response with the default message of code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Response{Code: code, Message: GetMessage(code)})
}

// FailMessage sends an error response with a specific message.
func FailMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.JSON(statusCode, Response{Code: code, Message: message})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields []FieldError) {
	c.JSON(statusCode, Response{Code: code, Message: GetMessage(code), Errors: fields})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{Code: code, Message: GetMessage(code)})
}
