package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/theme"
)

// PollInterval bounds how long one tick waits for a key. It is also the
// refresh granularity of the on-screen countdown.
const PollInterval = 100 * time.Millisecond

const promptLabel = "Guess: "

// KeySource delivers single input bytes without blocking longer than timeout.
// ok is false when no byte arrived in time; io.EOF marks a closed stream.
type KeySource interface {
	Poll(timeout time.Duration) (b byte, ok bool, err error)
}

// PlayOptions tunes the round loop. Zero values fall back to the wall clock.
type PlayOptions struct {
	PollInterval time.Duration
	Now          func() time.Time
	Sleep        func(time.Duration)
	ANSI         bool
}

func (o PlayOptions) withDefaults() PlayOptions {
	if o.PollInterval <= 0 {
		o.PollInterval = PollInterval
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return o
}

// Play runs round to completion, reading keys from keys and drawing to out.
// The terminal is expected to be in raw polling mode already.
func Play(ctx context.Context, keys KeySource, out io.Writer, round *Round, opts PlayOptions) (model.RoundResult, error) {
	opts = opts.withDefaults()
	eraser := &theme.LineEraser{ANSI: opts.ANSI}
	keysDone := false

	for {
		if err := ctx.Err(); err != nil {
			return round.Result(), err
		}
		remaining, changed := round.Tick(opts.Now())
		if changed {
			if err := drawPrompt(out, eraser, remaining, round.Input()); err != nil {
				return round.Result(), err
			}
		}
		if round.State() == TimedOut {
			msg := theme.Red(fmt.Sprintf("Time expired. The number was %d", round.Secret()))
			if _, err := fmt.Fprintf(out, "\n%s\n", msg); err != nil {
				return round.Result(), fmt.Errorf("failed to write output: %w", err)
			}
			return round.Result(), nil
		}

		if keysDone {
			opts.Sleep(opts.PollInterval)
			continue
		}
		b, ok, err := keys.Poll(opts.PollInterval)
		if err != nil {
			if errors.Is(err, io.EOF) {
				keysDone = true
				continue
			}
			return round.Result(), fmt.Errorf("failed to read input: %w", err)
		}
		if !ok {
			continue
		}

		fb := round.Feed(b)
		if err := drawFeedback(out, eraser, round, fb); err != nil {
			return round.Result(), err
		}
		if round.State() == Solved {
			return round.Result(), nil
		}
	}
}

func drawPrompt(out io.Writer, eraser *theme.LineEraser, remaining int, input string) error {
	timer := fmt.Sprintf("[Time %2ds] ", remaining)
	line := theme.Cyan(timer) + promptLabel + input
	plainLen := len(timer) + len(promptLabel) + len(input)
	if err := eraser.Redraw(out, line, plainLen); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Message returns the text shown after fb, or "" when nothing is said.
func Message(round *Round, fb Feedback) string {
	switch fb.Event {
	case EventOutOfRange:
		return fmt.Sprintf("Out of range. Use 1..%d", round.Preset().MaxNumber)
	case EventTooLow:
		return fmt.Sprintf("Hint: GREATER than %d", fb.Guess)
	case EventTooHigh:
		return fmt.Sprintf("Hint: SMALLER than %d", fb.Guess)
	case EventSolved:
		return fmt.Sprintf("Correct. %d found in %d seconds", round.Secret(), round.Elapsed())
	default:
		return ""
	}
}

func drawFeedback(out io.Writer, eraser *theme.LineEraser, round *Round, fb Feedback) error {
	switch fb.Event {
	case EventIgnored:
		return nil
	case EventEdited:
		return drawPrompt(out, eraser, round.Remaining(), round.Input())
	}
	msg := Message(round, fb)
	switch fb.Event {
	case EventOutOfRange:
		msg = theme.Yellow(msg)
	case EventTooLow, EventTooHigh:
		msg = theme.Red(msg)
	case EventSolved:
		msg = theme.Green(msg)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if msg != "" {
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if fb.Event == EventSolved {
		return nil
	}
	// A fresh line has no previous content to blank.
	*eraser = theme.LineEraser{ANSI: eraser.ANSI}
	return drawPrompt(out, eraser, round.Remaining(), round.Input())
}
