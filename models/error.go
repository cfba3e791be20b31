package models

import "net/http"

// Error type codes returned in the __type field of ErrorResponse. Handlers map
// these onto HTTP status codes with StatusFor.
const (
	ErrTypeValidation         = "ValidationException"
	ErrTypeMissingAuthToken   = "MissingAuthenticationToken"
	ErrTypeInvalidAuthToken   = "InvalidAuthenticationToken"
	ErrTypeAccessDenied       = "AccessDeniedException"
	ErrTypeReviewNotFound     = "ReviewNotFoundException"
	ErrTypeReviewExists       = "ReviewAlreadyExistsException"
	ErrTypeTranslationFailure = "TranslationServiceException"
	ErrTypeInternalFailure    = "InternalFailure"
)

// APIError is a custom error type that pairs a wire-level error code with a
// message. Services return it so the HTTP layer can build the error envelope
// without inspecting storage or translator internals.
type APIError struct {
	Type    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func New(typ, msg string) *APIError {
	return &APIError{Type: typ, Message: msg}
}

// StatusFor maps an error type code onto its HTTP status. Unknown codes are
// treated as internal failures.
func StatusFor(typ string) int {
	switch typ {
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeMissingAuthToken:
		return http.StatusUnauthorized
	case ErrTypeInvalidAuthToken, ErrTypeAccessDenied:
		return http.StatusForbidden
	case ErrTypeReviewNotFound:
		return http.StatusNotFound
	case ErrTypeReviewExists:
		return http.StatusConflict
	case ErrTypeTranslationFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
