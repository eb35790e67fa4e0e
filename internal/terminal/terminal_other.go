//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd)

package terminal

import (
	"os"
	"time"
)

// Controller is unavailable on this platform.
type Controller struct{}

// New always fails with ErrUnsupported.
func New(*os.File) (*Controller, error) {
	return nil, ErrUnsupported
}

// Mode implements the controller contract.
func (c *Controller) Mode() Mode { return ModeUnknown }

// CaptureOriginal implements the controller contract.
func (c *Controller) CaptureOriginal() error { return ErrUnsupported }

// EnterRawPolling implements the controller contract.
func (c *Controller) EnterRawPolling() error { return ErrUnsupported }

// EnterCanonical implements the controller contract.
func (c *Controller) EnterCanonical() error { return ErrUnsupported }

// RestoreOriginal implements the controller contract.
func (c *Controller) RestoreOriginal() error { return nil }

// Poller is unavailable on this platform.
type Poller struct{}

// NewPoller returns a poller whose operations fail with ErrUnsupported.
func NewPoller(*os.File) *Poller { return &Poller{} }

// HasPendingInput implements the poller contract.
func (p *Poller) HasPendingInput(time.Duration) (bool, error) { return false, ErrUnsupported }

// ReadByte implements the poller contract.
func (p *Poller) ReadByte() (byte, error) { return 0, ErrUnsupported }

// Poll implements the poller contract.
func (p *Poller) Poll(time.Duration) (byte, bool, error) { return 0, false, ErrUnsupported }

// Read implements io.Reader.
func (p *Poller) Read([]byte) (int, error) { return 0, ErrUnsupported }
