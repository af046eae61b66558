package tui

import "errors"

var (
	// ErrAborted is returned when the user interrupts a prompt.
	ErrAborted = errors.New("tui: aborted")
	// ErrCancelled is returned when the user declines to submit, retry or
	// confirm.
	ErrCancelled = errors.New("tui: cancelled")
)
