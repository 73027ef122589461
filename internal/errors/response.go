package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // stable code for client mapping
	Message string `json:"message"` // client-safe message
}

// RespondWithError writes a standard error payload.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Respond parses err and writes it with an appropriate status code.
func Respond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	c.JSON(statusFor(info.Code), ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}

func statusFor(code string) int {
	switch code {
	case ValidationInvalidInput, ValidationInvalidID, ValidationInvalidRating,
		ValidationRequired, CategoryUnknownSlug, UploadInvalidFileType:
		return http.StatusBadRequest
	case AuthUnauthorized, AuthTokenInvalid, AuthTokenExpired:
		return http.StatusUnauthorized
	case ResourceNotFound, ShopNotFound, DrinkNotFound, ReviewNotFound,
		CategoryNotFound, PlaceNotFound:
		return http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Shortcut responders for the common cases.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Login required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal error occurred, please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
