//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Controller switches a terminal between canonical and raw polling mode and
// puts it back the way it was found. It is safe for concurrent use so a
// signal handler can restore the terminal while the game loop runs.
type Controller struct {
	fd int

	mu       sync.Mutex
	original *unix.Termios
	mode     Mode
}

// New returns a controller for f, which must be a terminal.
func New(f *os.File) (*Controller, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	return &Controller{fd: fd}, nil
}

// Mode returns the mode last applied.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// CaptureOriginal records the current settings. Only the first call has an effect.
func (c *Controller) CaptureOriginal() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captureLocked()
}

func (c *Controller) captureLocked() error {
	if c.original != nil {
		return nil
	}
	tio, err := unix.IoctlGetTermios(c.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("failed to read terminal settings: %w", err)
	}
	c.original = tio
	c.mode = ModeOriginal
	return nil
}

// EnterRawPolling turns off line buffering and echo. Signal keys keep working
// and reads stay blocking; callers poll before reading.
func (c *Controller) EnterRawPolling() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.captureLocked(); err != nil {
		return err
	}
	raw := *c.original
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := c.applyLocked(&raw); err != nil {
		return err
	}
	c.mode = ModeRawPolling
	return nil
}

// EnterCanonical restores line-buffered, echoing input for prompts.
func (c *Controller) EnterCanonical() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.captureLocked(); err != nil {
		return err
	}
	canon := *c.original
	canon.Lflag |= unix.ICANON | unix.ECHO
	if err := c.applyLocked(&canon); err != nil {
		return err
	}
	c.mode = ModeCanonical
	return nil
}

// RestoreOriginal reverts to the captured settings. Without a capture it does nothing.
func (c *Controller) RestoreOriginal() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.original == nil {
		return nil
	}
	if err := c.applyLocked(c.original); err != nil {
		return err
	}
	c.mode = ModeOriginal
	return nil
}

func (c *Controller) applyLocked(tio *unix.Termios) error {
	if err := unix.IoctlSetTermios(c.fd, ioctlWriteTermios, tio); err != nil {
		return fmt.Errorf("failed to apply terminal settings: %w", err)
	}
	return nil
}
