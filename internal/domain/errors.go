package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidOTP   = errors.New("invalid or expired otp")

	// ErrDeliveryFailure marks notification send failures. It is logged, never returned to callers.
	ErrDeliveryFailure = errors.New("delivery failure")
)

// Error kinds reported to clients next to the message.
const (
	KindValidation         = "ValidationError"
	KindDuplicateAccount   = "DuplicateAccount"
	KindNotFound           = "NotFound"
	KindInvalidCredentials = "InvalidCredentials"
	KindForbidden          = "Forbidden"
	KindInvalidOTP         = "InvalidOrExpiredOtp"
	KindRateLimited        = "RateLimited"
	KindInternal           = "InternalError"
)

// Kind classifies err into one of the client-facing error kinds.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidOTP):
		return KindInvalidOTP
	case errors.Is(err, ErrBadRequest):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindDuplicateAccount
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindInvalidCredentials
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}
