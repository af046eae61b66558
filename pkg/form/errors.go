package form

import "errors"

var (
	// ErrInvalid is returned by Submit when at least one field fails its rules.
	ErrInvalid = errors.New("form: invalid")
	// ErrSubmitting rejects a second Submit while one is in flight.
	ErrSubmitting = errors.New("form: submission in progress")
	// ErrClosed is returned once the form has been closed. A submission that
	// completes after Close reports it instead of its own outcome.
	ErrClosed = errors.New("form: closed")
	// ErrUnknownField is returned for names the schema does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrNotToggle is returned when ToggleOption targets a non checkbox-group
	// field.
	ErrNotToggle = errors.New("form: field is not a checkbox group")
	// ErrUnknownOption is returned when ToggleOption receives an option the
	// field does not offer.
	ErrUnknownOption = errors.New("form: unknown option")
	// ErrNoSubmitter is returned when Submit runs without a collaborator.
	ErrNoSubmitter = errors.New("form: no submitter configured")
)

// UserMessenger is implemented by collaborator errors that carry a message
// fit for display.
type UserMessenger interface {
	UserMessage() string
}

func userMessage(err error) string {
	var messenger UserMessenger
	if errors.As(err, &messenger) {
		return messenger.UserMessage()
	}
	return ""
}
