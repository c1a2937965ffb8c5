// internal/form/errors.go
//
// Onboard – Forms subsystem: error taxonomy.
//
// Context
//   Two families of errors leave this package.  *FieldError is user input
//   that failed a schema rule; it is rendered next to the field and never
//   treated as a system failure.  *SubmissionError wraps anything that went
//   wrong talking to the remote API.  Sentinels cover the submit gate.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned for a field name the schema does not declare.
	ErrUnknownField = errors.New("form: unknown field")

	// ErrFieldKind is returned when an event's value has the wrong kind for a
	// known field, e.g. a checkbox event naming a text field.
	ErrFieldKind = errors.New("form: wrong value kind for field")

	// ErrSubmitBlocked is returned by Submit while the form is invalid.
	ErrSubmitBlocked = errors.New("form: submit blocked, form is invalid")

	// ErrSubmitInFlight is returned by Submit while another submission is pending.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
)

// FieldError describes a single validation failure so the front-end can
// render a field-level message.
type FieldError struct {
	Field   string // field name
	Rule    string // validator tag that failed, e.g. "email"
	Message string // user-facing message
}

func (fe *FieldError) Error() string { return fe.Message }

// StatusError is a non-2xx answer from the remote API.
type StatusError struct {
	Code int
	Body []byte
}

func (se *StatusError) Error() string {
	return fmt.Sprintf("remote API answered %d", se.Code)
}

// SubmissionError wraps a transport or status failure of Submit.
type SubmissionError struct{ Err error }

func (se *SubmissionError) Error() string { return "submission failed: " + se.Err.Error() }
func (se *SubmissionError) Unwrap() error { return se.Err }

// IsSubmissionError reports whether err came from the remote call.
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}
