package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to their own display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Session (SESSION_) ====================
	SessionNotFound = "SESSION_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Optimization (OPTIMIZE_) ====================
	OptimizeInvalidMode      = "OPTIMIZE_INVALID_MODE"
	OptimizeNoGroceryItems   = "OPTIMIZE_NO_GROCERY_ITEMS"
	OptimizeFetchFailed      = "OPTIMIZE_FETCH_FAILED"
	OptimizeInvalidDirection = "OPTIMIZE_INVALID_DIRECTION"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutCartEmpty       = "CHECKOUT_CART_EMPTY"
	CheckoutPaymentRequired = "CHECKOUT_PAYMENT_REQUIRED"
	CheckoutInvalidTip      = "CHECKOUT_INVALID_TIP"

	// ==================== Catalog (CATALOG_) ====================
	CatalogRestaurantNotFound = "CATALOG_RESTAURANT_NOT_FOUND"
	CatalogProductNotFound    = "CATALOG_PRODUCT_NOT_FOUND"

	// ==================== Complaints (COMPLAINT_) ====================
	ComplaintImageRequired   = "COMPLAINT_IMAGE_REQUIRED"
	ComplaintDetectionFailed = "COMPLAINT_DETECTION_FAILED"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
