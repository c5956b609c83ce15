package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrClassMismatch    = errors.New("class does not match schedule")
	ErrNoSeatsAvailable = errors.New("no seats available")

	// Booking errors
	ErrBookingNotFound          = errors.New("booking not found")
	ErrDuplicateBooking         = errors.New("duplicate booking")
	ErrAlreadyCancelled         = errors.New("booking already cancelled")
	ErrCancellationWindowClosed = errors.New("cancellation window closed")
	ErrNotPayable               = errors.New("booking not in payable state")

	// Payment errors
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")

	// Review errors
	ErrDuplicateReview   = errors.New("duplicate review")
	ErrReviewNotEligible = errors.New("booking not eligible for review")
	ErrReviewNotFound    = errors.New("review not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
