package availability

import (
	"errors"
	"fmt"
)

// ResolutionError is a typed failure of a resolution request.
type ResolutionError struct {
	Code    string
	Message string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	// CodeRangeTooLarge rejects query ranges beyond the configured bound
	// before any fetch is attempted.
	CodeRangeTooLarge = "rangeTooLarge"
	// CodeValidation covers malformed requests: inactive event types,
	// inverted ranges, unknown timezones.
	CodeValidation = "validationError"
)

func NewRangeTooLargeError(msg string) error {
	return &ResolutionError{Code: CodeRangeTooLarge, Message: msg}
}

func NewValidationError(msg string) error {
	return &ResolutionError{Code: CodeValidation, Message: msg}
}

// ErrorCode extracts the resolution error code, or "" for other errors.
func ErrorCode(err error) string {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
