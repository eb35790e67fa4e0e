// Package game implements the timed guessing round.
package game

import (
	"strconv"
	"time"

	"github.com/verte-zerg/guessnum/internal/model"
)

// MaxInput caps the number of digits a guess may hold.
const MaxInput = 63

// State is the position of a round in its lifecycle.
type State int

// Round states. Evaluating is transient and only observable inside Feed.
const (
	AwaitingInput State = iota
	Evaluating
	Solved
	TimedOut
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case Evaluating:
		return "evaluating"
	case Solved:
		return "solved"
	case TimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Event describes what a single keystroke did to the round.
type Event int

// Keystroke events.
const (
	EventIgnored Event = iota
	EventEdited
	EventEmptySubmit
	EventOutOfRange
	EventTooLow
	EventTooHigh
	EventSolved
)

// Feedback is returned for every fed byte. Guess is set for evaluated input.
type Feedback struct {
	Event Event
	Guess int
}

const (
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// Round owns the state of one guessing round. Rounds never share state.
type Round struct {
	preset    model.Preset
	secret    int
	start     time.Time
	buf       []byte
	state     State
	remaining int
	ticked    bool
	elapsed   int
	guesses   int
}

// NewRound creates a round for preset with a fixed secret, started at start.
func NewRound(preset model.Preset, secret int, start time.Time) *Round {
	return &Round{
		preset:    preset,
		secret:    secret,
		start:     start,
		buf:       make([]byte, 0, MaxInput),
		state:     AwaitingInput,
		remaining: preset.TimeLimit,
	}
}

// Preset returns the preset the round was created with.
func (r *Round) Preset() model.Preset { return r.preset }

// Secret returns the number to find.
func (r *Round) Secret() int { return r.secret }

// State returns the current state.
func (r *Round) State() State { return r.state }

// Remaining returns the seconds left as of the last tick.
func (r *Round) Remaining() int { return r.remaining }

// Input returns the digits typed so far.
func (r *Round) Input() string { return string(r.buf) }

// Finished reports whether the round reached Solved or TimedOut.
func (r *Round) Finished() bool {
	return r.state == Solved || r.state == TimedOut
}

// Tick recomputes the remaining time. changed is true on the first tick and
// whenever the remaining second count differs from the previous tick.
func (r *Round) Tick(now time.Time) (remaining int, changed bool) {
	if r.Finished() {
		return r.remaining, false
	}
	left := r.preset.TimeLimit - int(now.Sub(r.start)/time.Second)
	if left < 0 {
		left = 0
	}
	if left > r.preset.TimeLimit {
		left = r.preset.TimeLimit
	}
	changed = !r.ticked || left != r.remaining
	r.ticked = true
	r.remaining = left
	if left == 0 {
		r.state = TimedOut
		r.buf = r.buf[:0]
	}
	return left, changed
}

// Feed applies one input byte.
func (r *Round) Feed(b byte) Feedback {
	if r.Finished() {
		return Feedback{Event: EventIgnored}
	}
	switch {
	case b >= '0' && b <= '9':
		if len(r.buf) >= MaxInput {
			return Feedback{Event: EventIgnored}
		}
		r.buf = append(r.buf, b)
		return Feedback{Event: EventEdited}
	case b == keyBackspace || b == keyDelete:
		if len(r.buf) == 0 {
			return Feedback{Event: EventIgnored}
		}
		r.buf = r.buf[:len(r.buf)-1]
		return Feedback{Event: EventEdited}
	case b == '\r' || b == '\n':
		if len(r.buf) == 0 {
			return Feedback{Event: EventEmptySubmit}
		}
		return r.evaluate()
	default:
		// Escape sequences (arrow keys) arrive byte by byte and are dropped.
		return Feedback{Event: EventIgnored}
	}
}

func (r *Round) evaluate() Feedback {
	r.state = Evaluating
	guess, err := strconv.Atoi(string(r.buf))
	r.buf = r.buf[:0]
	if err != nil || guess < 1 || guess > r.preset.MaxNumber {
		r.state = AwaitingInput
		return Feedback{Event: EventOutOfRange, Guess: guess}
	}
	r.guesses++
	switch {
	case guess == r.secret:
		r.state = Solved
		r.elapsed = r.preset.TimeLimit - r.remaining
		return Feedback{Event: EventSolved, Guess: guess}
	case guess < r.secret:
		r.state = AwaitingInput
		return Feedback{Event: EventTooLow, Guess: guess}
	default:
		r.state = AwaitingInput
		return Feedback{Event: EventTooHigh, Guess: guess}
	}
}

// Elapsed returns the seconds used. For an unfinished round it is derived
// from the last tick.
func (r *Round) Elapsed() int {
	if r.state == Solved {
		return r.elapsed
	}
	return r.preset.TimeLimit - r.remaining
}

// Result reports the outcome of a finished round.
func (r *Round) Result() model.RoundResult {
	outcome := model.OutcomeTimedOut
	if r.state == Solved {
		outcome = model.OutcomeSolved
	}
	return model.RoundResult{
		Outcome:    outcome,
		Secret:     r.secret,
		ElapsedSec: r.Elapsed(),
		Guesses:    r.guesses,
	}
}
