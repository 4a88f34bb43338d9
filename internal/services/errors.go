package services

import "errors"

// Checkout error taxonomy. Handlers map these to HTTP statuses;
// everything else coming out of a service is treated as an internal
// failure.
var (
	// ErrAuthenticationRequired means no authenticated identity reached
	// the service at all.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrAuthorizationMismatch means the request named an identity other
	// than the authenticated caller.
	ErrAuthorizationMismatch = errors.New("you can only place orders for yourself")

	// ErrEmptyCart means checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidCredentials is the uniform login failure; it never
	// reveals whether the email is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports the first request field that failed
// validation. Checks run in a fixed order, so the caller always sees a
// single field-specific message, never an aggregate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}
