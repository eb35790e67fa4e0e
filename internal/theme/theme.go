// Package theme provides the color palette and screen control sequences.
package theme

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	clearScreenSeq = "\x1b[H\x1b[2J"
	clearLineSeq   = "\r\x1b[2K"
)

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var colorEnabled = true

// Configure turns color output on or off for the whole process.
func Configure(color bool) {
	colorEnabled = color
	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorEnabled reports whether color codes are emitted.
func ColorEnabled() bool {
	return colorEnabled
}

func paint(style lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

// Green renders success text.
func Green(s string) string { return paint(greenStyle, s) }

// Blue renders headings.
func Blue(s string) string { return paint(blueStyle, s) }

// Cyan renders labels and the countdown.
func Cyan(s string) string { return paint(cyanStyle, s) }

// Yellow renders warnings.
func Yellow(s string) string { return paint(yellowStyle, s) }

// Red renders hints and failures.
func Red(s string) string { return paint(redStyle, s) }

// Faint renders secondary text.
func Faint(s string) string { return paint(faintStyle, s) }

// ClearScreen wipes the screen and homes the cursor. Without ANSI support a
// blank line is written instead.
func ClearScreen(w io.Writer, ansi bool) error {
	if !ansi {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := io.WriteString(w, clearScreenSeq)
	return err
}

// LineEraser rewrites a single terminal line in place.
type LineEraser struct {
	ANSI    bool
	lastLen int
}

// Redraw replaces the current line with s. Without ANSI support the previous
// content is blanked with spaces after a carriage return.
func (e *LineEraser) Redraw(w io.Writer, s string, plainLen int) error {
	if e.ANSI {
		_, err := io.WriteString(w, clearLineSeq+s)
		return err
	}
	pad := ""
	if e.lastLen > plainLen {
		pad = fmt.Sprintf("%*s\r", e.lastLen, "")
	}
	e.lastLen = plainLen
	_, err := io.WriteString(w, "\r"+pad+s)
	return err
}
