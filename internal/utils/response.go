// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stable machine-readable error codes. Clients switch on these, the message
// text is for humans.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeInvalidFileType     = "INVALID_FILE_TYPE"
	CodeUploadTimeout       = "UPLOAD_TIMEOUT"
	CodeUploadError         = "UPLOAD_ERROR"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeIncompleteProduct   = "PRODUCT_DATA_INCOMPLETE"
	CodeInternalServerError = "SERVER_ERROR"
)

// devMode widens error responses with internal detail. Never enabled in
// production.
var devMode = false

func SetDevMode(enabled bool) {
	devMode = enabled
}

func MessageResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func ErrorResponse(c *gin.Context, status int, code, message string, detail error) {
	body := gin.H{"message": message, "error": code}
	if devMode && detail != nil {
		body["detail"] = detail.Error()
	}
	c.JSON(status, body)
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, message, nil)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func NotFoundResponse(c *gin.Context, message string) {
	MessageResponse(c, http.StatusNotFound, message)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnprocessableEntity, CodeConflict, message, nil)
}

func InternalErrorResponse(c *gin.Context, detail error) {
	ErrorResponse(c, http.StatusInternalServerError, CodeInternalServerError, "Internal server error", detail)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	body := gin.H{
		"message": "Invalid input",
		"error":   CodeValidationError,
		"details": errors,
	}
	c.JSON(http.StatusBadRequest, body)
}

// Context helpers. The auth middleware stores the decoded manufacturer
// identity once; everything downstream reads it through these.

func GetManufacturerIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	idStr, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func GetEmailFromContext(c *gin.Context) (string, bool) {
	if email, exists := c.Get("email"); exists {
		if emailStr, ok := email.(string); ok {
			return emailStr, true
		}
	}
	return "", false
}
