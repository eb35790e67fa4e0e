//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Poller reads single bytes from a file descriptor without waiting longer
// than a caller-chosen timeout.
type Poller struct {
	fd int
}

// NewPoller returns a poller reading from f.
func NewPoller(f *os.File) *Poller {
	return &Poller{fd: int(f.Fd())}
}

// HasPendingInput reports whether a byte can be read without blocking,
// waiting at most timeout. A zero timeout only checks.
func (p *Poller) HasPendingInput(timeout time.Duration) (bool, error) {
	var rfds unix.FdSet
	rfds.Zero()
	rfds.Set(p.fd)
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(p.fd+1, &rfds, nil, nil, &tv)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("failed to poll input: %w", err)
	}
	return n > 0 && rfds.IsSet(p.fd), nil
}

// ReadByte reads exactly one byte. It returns io.EOF once the input is closed.
func (p *Poller) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(p.fd, buf[:])
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

// Poll waits up to timeout for one byte. ok is false when nothing arrived.
func (p *Poller) Poll(timeout time.Duration) (b byte, ok bool, err error) {
	pending, err := p.HasPendingInput(timeout)
	if err != nil || !pending {
		return 0, false, err
	}
	b, err = p.ReadByte()
	if err != nil {
		return 0, false, err
	}
	return b, true, nil
}

// Read implements io.Reader one byte at a time so prompt answers never
// swallow keystrokes meant for the round that follows.
func (p *Poller) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	b, err := p.ReadByte()
	if err != nil {
		return 0, err
	}
	buf[0] = b
	return 1, nil
}
