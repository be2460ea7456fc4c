package apperrors

// ErrorCode is the machine-readable code surfaced in the error envelope.
type ErrorCode string

const (
	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	// Generic business codes
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"

	// Authentication and authorization
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeEmailUnverified  ErrorCode = "EMAIL_UNVERIFIED"
	CodeAccountSuspended ErrorCode = "ACCOUNT_SUSPENDED"
	CodeAccountInactive  ErrorCode = "ACCOUNT_INACTIVE"

	// Domain-specific
	CodeProfileNotFound         ErrorCode = "PROFILE_NOT_FOUND"
	CodeInvalidCategory         ErrorCode = "INVALID_CATEGORY"
	CodeCategoryInUse           ErrorCode = "CATEGORY_IN_USE"
	CodeTutorUnavailable        ErrorCode = "TUTOR_UNAVAILABLE"
	CodeReviewAlreadyExists     ErrorCode = "REVIEW_ALREADY_EXISTS"
	CodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"
)
