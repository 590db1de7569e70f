package booking

import (
	"errors"
	"fmt"
)

// BookingError is a typed failure of the commit protocol.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	// CodeSlotTaken means the chosen slot conflicts with the live busy
	// state; the caller should re-fetch fresh slots. Expected, not a fault.
	CodeSlotTaken = "slotNoLongerAvailable"
	// CodeValidation covers malformed commits: duration mismatch,
	// inactive event type, slot outside any valid window.
	CodeValidation = "validationError"
	// CodeRangeTooLarge mirrors the resolution-side range bound.
	CodeRangeTooLarge = "rangeTooLarge"
)

func NewSlotTakenError(msg string) error {
	return &BookingError{Code: CodeSlotTaken, Message: msg}
}

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

// ErrorCode extracts the booking error code, or "" for other errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
