package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a client-safe message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts an error into a code + client-safe message. Sensitive
// detail stays out of the message; the full error is for logs.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	// 1. Typed errors from the core engine.
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrorInfo{Code: validationCode(ve), Message: ve.Error()}
	}
	if pe, ok := AsPipeline(err); ok {
		return ErrorInfo{
			Code:    ReviewPartialFailure,
			Message: "Review was saved but the " + string(pe.Stage) + " step failed",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 2. GORM base errors.
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// 3. Postgres constraint errors.
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "A referenced record does not exist",
		}
	}
	if strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{Code: ValidationInvalidRating, Message: "Rating must be between 0 and 5"}
		}
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Invalid input value"}
	}

	// 4. Network / external API errors.
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service is unavailable, please try again later",
		}
	}

	// 5. Store errors keep the operation name for diagnosis.
	var se *StoreError
	if errors.As(err, &se) {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Database operation failed: " + se.Op,
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred, please try again later",
	}
}

func validationCode(ve *ValidationError) string {
	switch ve.Field {
	case "rating":
		return ValidationInvalidRating
	case "drink_name", "comment":
		return ValidationRequired
	case "slugs":
		return CategoryUnknownSlug
	default:
		return ValidationInvalidInput
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "place_id") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A shop with this place identifier already exists",
		}
	}
	if strings.Contains(errLower, "canonical_key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A shop with this name and address already exists",
		}
	}
	if strings.Contains(errLower, "drinks") && strings.Contains(errLower, "name") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This drink already exists",
		}
	}
	if strings.Contains(errLower, "idx_shop_drink") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This drink is already listed at this shop",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "shop_drink"), strings.Contains(contextLower, "shopdrink"):
		return "Drink listing not found"
	case strings.Contains(contextLower, "shop"):
		return "Shop not found"
	case strings.Contains(contextLower, "drink"):
		return "Drink not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	default:
		return "The requested record was not found"
	}
}
