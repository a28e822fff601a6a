package domain

import "errors"

var (
	// ErrInvalidDuration is returned when the stay is not start < end or
	// runs longer than MaxReservationDays.
	ErrInvalidDuration = errors.New("invalid reservation duration")

	// ErrMissingReference is returned when a credit-card reservation carries
	// no payment reference.
	ErrMissingReference = errors.New("payment reference is required for credit card payments")

	// ErrUnsupportedMode is returned for a payment mode outside
	// CASH/BANK_TRANSFER/CREDIT_CARD.
	ErrUnsupportedMode = errors.New("unsupported payment mode")

	// ErrReservationNotFound is returned by lookups for an unknown id.
	ErrReservationNotFound = errors.New("reservation not found")

	// Verifier failure kinds. The first three mean "we tried and it failed";
	// ErrPaymentServiceUnavailable also covers "we didn't try" (open breaker).
	ErrPaymentRejected           = errors.New("credit card payment was rejected")
	ErrPaymentReferenceNotFound  = errors.New("payment reference not found or invalid")
	ErrPaymentServiceUnavailable = errors.New("payment verification service unavailable")
	ErrPaymentUnknownStatus      = errors.New("unknown payment status")
)

// IsValidationError reports whether err should map to a bad-request class
// response at the transport boundary.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrMissingReference) ||
		errors.Is(err, ErrUnsupportedMode)
}

// IsVerificationError reports whether err came out of the credit-card
// verification path (including the circuit breaker short-circuit).
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrPaymentRejected) ||
		errors.Is(err, ErrPaymentReferenceNotFound) ||
		errors.Is(err, ErrPaymentServiceUnavailable) ||
		errors.Is(err, ErrPaymentUnknownStatus)
}
