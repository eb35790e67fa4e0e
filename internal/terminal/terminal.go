// Package terminal owns the line discipline of the input terminal and polls
// it for single keystrokes.
package terminal

import "errors"

var (
	// ErrNotTerminal is returned when the input is not attached to a terminal.
	ErrNotTerminal = errors.New("input is not a terminal")
	// ErrUnsupported is returned on platforms without termios.
	ErrUnsupported = errors.New("terminal control is not supported on this platform")
)

// Mode is the line discipline last applied by a controller.
type Mode int

// Terminal modes.
const (
	ModeUnknown Mode = iota
	ModeOriginal
	ModeCanonical
	ModeRawPolling
)

func (m Mode) String() string {
	switch m {
	case ModeOriginal:
		return "original"
	case ModeCanonical:
		return "canonical"
	case ModeRawPolling:
		return "raw-polling"
	default:
		return "unknown"
	}
}

// Nop satisfies the controller contract without touching any terminal. It is
// used when input comes from a pipe or file.
type Nop struct{}

// CaptureOriginal implements the controller contract.
func (Nop) CaptureOriginal() error { return nil }

// EnterRawPolling implements the controller contract.
func (Nop) EnterRawPolling() error { return nil }

// EnterCanonical implements the controller contract.
func (Nop) EnterCanonical() error { return nil }

// RestoreOriginal implements the controller contract.
func (Nop) RestoreOriginal() error { return nil }
