package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C or declining
	// to retry).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalid is returned when the form is still invalid after the last
	// permitted attempt.
	ErrInvalid = errors.New("tui: form is invalid")
)
