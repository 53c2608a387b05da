package scheduling

import (
	"errors"
	"fmt"
)

// Error codes surfaced at the booking boundary.
const (
	CodeInvalidDate          = "invalidDate"
	CodeTokenExpired         = "tokenExpired"
	CodeCalendarNotConnected = "calendarNotConnected"
	CodeSchedulingDisabled   = "schedulingDisabled"
	CodeNoAvailableSlots     = "noAvailableSlots"
	CodeProviderInsertFailed = "providerInsertFailed"
	CodePersistenceFailed    = "persistenceFailed"
)

// SchedulingError is a typed error carried across the booking boundary.
type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSchedulingError(code, msg string) error {
	return &SchedulingError{Code: code, Message: msg}
}

// ErrTokenExpired signals that the provider rejected a call with an auth
// error. It aborts the whole scan; the token refresher deals with it on the
// next call.
var ErrTokenExpired = &SchedulingError{
	Code:    CodeTokenExpired,
	Message: "calendar provider rejected the access token",
}

// IsCode reports whether err is a SchedulingError with the given code.
func IsCode(err error, code string) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == code
}
