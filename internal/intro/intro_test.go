package intro

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/guessnum/internal/theme"
)

func TestPlayWritesBannerAndLoader(t *testing.T) {
	theme.Configure(false)
	var buf bytes.Buffer
	var slept time.Duration
	calls := 0
	p := New(&buf, Options{Width: 40, Sleep: func(d time.Duration) {
		slept += d
		calls++
	}})
	if err := p.Play(); err != nil {
		t.Fatalf("play: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "GUESS THE NUMBER") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "["+strings.Repeat("#", LoaderCells)+"] 100%") {
		t.Fatalf("missing loader bar:\n%s", out)
	}
	for _, l := range letters {
		if !strings.Contains(out, l.tagline) {
			t.Fatalf("missing tagline %q", l.tagline)
		}
	}
	if calls == 0 || slept < 5*time.Second {
		t.Fatalf("expected paced output, got %d sleeps totalling %v", calls, slept)
	}
}

func TestCenterPad(t *testing.T) {
	if got := centerPad("abcd", 10); got != "   " {
		t.Fatalf("expected 3 spaces, got %q", got)
	}
	if got := centerPad("界界", 8); got != "  " {
		t.Fatalf("expected wide runes to count double, got %q", got)
	}
	if got := centerPad(strings.Repeat("x", 90), 80); got != "" {
		t.Fatalf("expected no padding for overlong text, got %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPlayReportsWriteError(t *testing.T) {
	err := New(failWriter{}, Options{}).Play()
	if err == nil || !strings.Contains(err.Error(), "failed to write intro") {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}
