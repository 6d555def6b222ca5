package reservation

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the booking lifecycle. Controllers map these onto
// HTTP statuses; anything else passes through as an internal error.
var (
	ErrEmptySelection    = errors.New("seat selection is empty")
	ErrDuplicateSeat     = errors.New("seat selection contains duplicate seats")
	ErrSeatShowMismatch  = errors.New("one or more seats do not belong to the show")
	ErrNotFound          = errors.New("booking not found")
	ErrNotOwner          = errors.New("booking does not belong to user")
	ErrInvalidTransition = errors.New("invalid booking state transition")
	ErrHoldExpired       = errors.New("hold has expired")
	ErrPaymentFailed     = errors.New("payment failed")
)

// SeatsUnavailableError reports exactly which seats blocked an
// all-or-nothing hold attempt.
type SeatsUnavailableError struct {
	SeatLabels []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.SeatLabels, ", "))
}

// AsSeatsUnavailable unwraps a SeatsUnavailableError if err carries one
func AsSeatsUnavailable(err error) (*SeatsUnavailableError, bool) {
	var target *SeatsUnavailableError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
