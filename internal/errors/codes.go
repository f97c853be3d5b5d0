package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Restaurants (RESTAURANT_) ====================
	RestaurantNotFound       = "RESTAURANT_NOT_FOUND"
	RestaurantClosed         = "RESTAURANT_CLOSED"
	RestaurantSlugExists     = "RESTAURANT_SLUG_EXISTS"
	RestaurantNoReservations = "RESTAURANT_NO_RESERVATIONS"

	// ==================== Menu (MENU_) ====================
	MenuItemNotFound    = "MENU_ITEM_NOT_FOUND"
	MenuItemUnavailable = "MENU_ITEM_UNAVAILABLE"

	// ==================== Cart (CART_) ====================
	CartEmpty              = "CART_EMPTY"
	CartInvalidQuantity    = "CART_INVALID_QUANTITY"
	CartInvalidItem        = "CART_INVALID_ITEM"
	CartRestaurantConflict = "CART_RESTAURANT_CONFLICT"
	CartLineNotFound       = "CART_LINE_NOT_FOUND"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderPaymentFailed = "ORDER_PAYMENT_FAILED"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"
	OrderCannotCancel  = "ORDER_CANNOT_CANCEL"

	// ==================== Reservations (RESERVATION_) ====================
	ReservationNotFound     = "RESERVATION_NOT_FOUND"
	ReservationPastDate     = "RESERVATION_PAST_DATE"
	ReservationInvalidParty = "RESERVATION_INVALID_PARTY_SIZE"
	ReservationNotPending   = "RESERVATION_NOT_PENDING"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
