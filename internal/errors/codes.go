package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login required
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidRating = "VALIDATION_INVALID_RATING" // rating outside 0-5
	ValidationRequired      = "VALIDATION_REQUIRED"       // blank required field

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Shop (SHOP_) ====================
	ShopNotFound      = "SHOP_NOT_FOUND"
	ShopResolveFailed = "SHOP_RESOLVE_FAILED"
	ShopArchived      = "SHOP_ARCHIVED"

	// ==================== Drink (DRINK_) ====================
	DrinkNotFound = "DRINK_NOT_FOUND"

	// ==================== Review (REVIEW_) ====================
	ReviewNotFound       = "REVIEW_NOT_FOUND"
	ReviewPartialFailure = "REVIEW_PARTIAL_FAILURE" // review committed, later stage failed

	// ==================== Category (CATEGORY_) ====================
	CategoryNotFound    = "CATEGORY_NOT_FOUND"
	CategoryUnknownSlug = "CATEGORY_UNKNOWN_SLUG"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Places (PLACES_) ====================
	PlacesLookupFailed = "PLACES_LOOKUP_FAILED"
	PlaceNotFound      = "PLACE_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
