package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a machine-readable code with a safe user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw database or service error into an ErrorInfo.
// Sensitive details stay out of the message; the context string (e.g.
// "create restaurant") selects a more specific fallback.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "Rating must be between 1 and 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Invalid input",
		}
	}

	// Network / connection failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "slug") || strings.Contains(errLower, "idx_restaurants_slug") {
		return ErrorInfo{
			Code:    RestaurantSlugExists,
			Message: "A restaurant with this identifier already exists",
		}
	}
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already registered",
		}
	}
	if strings.Contains(errLower, "idx_reviews_user_restaurant") ||
		(strings.Contains(errLower, "reviews") && strings.Contains(errLower, "user_id")) {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "You have already reviewed this restaurant",
		}
	}
	if strings.Contains(errLower, "order_number") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Order number collision. Please retry",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is in use and cannot be deleted",
		}
	}
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "User not found",
		}
	}
	if strings.Contains(errLower, "restaurant_id") || strings.Contains(errLower, "fk_restaurants") {
		return ErrorInfo{
			Code:    RestaurantNotFound,
			Message: "Restaurant not found",
		}
	}
	if strings.Contains(errLower, "menu_item_id") || strings.Contains(errLower, "fk_menu_items") {
		return ErrorInfo{
			Code:    MenuItemNotFound,
			Message: "Menu item not found",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Referenced record not found",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "restaurant"):
		return "Restaurant not found"
	case strings.Contains(contextLower, "menu"):
		return "Menu item not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "reservation"):
		return "Reservation not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "notification"):
		return "Notification not found"
	}

	return "Requested record not found"
}

// ParseAndRespond parses err and writes the standard error payload.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create the record. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the record. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the record. Please try again later"
	case strings.Contains(contextLower, "checkout"):
		return "Failed to place the order. Please try again later"
	}

	return "Something went wrong. Please try again later"
}
