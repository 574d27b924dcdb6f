package orchestrators

import (
	"errors"

	"clubadmin/internal/adapters/clubapi"
)

// MsgTransport is shown when the club API cannot be reached.
const MsgTransport = "No se pudo contactar el servidor"

// CommandError is a failed upstream call together with the text shown
// above the form. Unwrap exposes the underlying *clubapi.APIError.
type CommandError struct {
	Message string
	Err     error
}

// Error implements error.
func (e *CommandError) Error() string {
	return e.Message
}

// Unwrap returns the upstream error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// upstreamFailure wraps err with the server's message, the transport banner
// or fallback, in that order of preference.
func upstreamFailure(err error, fallback string) error {
	msg := clubapi.ErrorMessage(err, fallback)
	if clubapi.IsTransport(err) {
		msg = MsgTransport
	}
	return &CommandError{Message: msg, Err: err}
}

// Message returns the text shown to the user for a failed command: the
// CommandError message, or the local validation text.
// PRE: err is non-nil
func Message(err error) string {
	var cmd *CommandError
	if errors.As(err, &cmd) {
		return cmd.Message
	}
	return err.Error()
}
