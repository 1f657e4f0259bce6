package i18n

// Request and auth failures.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyConflict           = "error.conflict"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyTimeout            = "error.timeout"

	// ErrKeyRequestInProgress is sent for a retry whose first attempt
	// has not finished yet.
	ErrKeyRequestInProgress = "error.request_in_progress"
)

// Picking failures.
const (
	ErrKeySessionNotFound = "error.session_not_found"
	ErrKeyPickingNotFound = "error.picking_not_found"
	// ErrKeyPickingClosed rejects edits of done or cancelled transfers.
	ErrKeyPickingClosed      = "error.picking_closed"
	ErrKeyLineNotFound       = "error.line_not_found"
	ErrKeyBackendUnavailable = "error.backend_unavailable"
	ErrKeyInvalidQuantity    = "error.invalid_quantity"
)
