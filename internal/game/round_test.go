package game

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/guessnum/internal/model"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func normalRound(secret int) *Round {
	return NewRound(model.DefaultPreset(), secret, testStart)
}

func feedString(r *Round, s string) []Feedback {
	out := make([]Feedback, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, r.Feed(s[i]))
	}
	return out
}

func TestFeedDigitsAndBackspace(t *testing.T) {
	r := normalRound(10)
	feedString(r, "123")
	if r.Input() != "123" {
		t.Fatalf("expected input 123, got %q", r.Input())
	}
	if fb := r.Feed(0x7f); fb.Event != EventEdited {
		t.Fatalf("expected edit on delete, got %v", fb.Event)
	}
	if fb := r.Feed(0x08); fb.Event != EventEdited {
		t.Fatalf("expected edit on backspace, got %v", fb.Event)
	}
	if r.Input() != "1" {
		t.Fatalf("expected input 1, got %q", r.Input())
	}
}

func TestBackspaceOnEmptyIsNoop(t *testing.T) {
	r := normalRound(10)
	if fb := r.Feed(0x7f); fb.Event != EventIgnored {
		t.Fatalf("expected ignored backspace on empty buffer, got %v", fb.Event)
	}
	if r.Input() != "" || r.State() != AwaitingInput {
		t.Fatalf("unexpected state after backspace: %q %v", r.Input(), r.State())
	}
}

func TestEnterOnEmptyDoesNotEvaluate(t *testing.T) {
	r := normalRound(10)
	for _, b := range []byte{'\r', '\n'} {
		if fb := r.Feed(b); fb.Event != EventEmptySubmit {
			t.Fatalf("expected empty submit, got %v", fb.Event)
		}
	}
	if got := r.Result().Guesses; got != 0 {
		t.Fatalf("expected no evaluated guesses, got %d", got)
	}
}

func TestInputCappedAtMax(t *testing.T) {
	r := normalRound(10)
	feedString(r, strings.Repeat("9", MaxInput+5))
	if len(r.Input()) != MaxInput {
		t.Fatalf("expected %d digits, got %d", MaxInput, len(r.Input()))
	}
	fb := r.Feed('\r')
	if fb.Event != EventOutOfRange {
		t.Fatalf("expected overflowing guess to be out of range, got %v", fb.Event)
	}
}

func TestNonDigitBytesIgnored(t *testing.T) {
	r := normalRound(10)
	// Arrow up, letters and space.
	for _, fb := range feedString(r, "\x1b[Aab ") {
		if fb.Event != EventIgnored {
			t.Fatalf("expected ignored byte, got %v", fb.Event)
		}
	}
	if r.Input() != "" {
		t.Fatalf("expected empty input, got %q", r.Input())
	}
}

func TestOutOfRangeNeverComparedToSecret(t *testing.T) {
	r := NewRound(model.Preset{MaxNumber: 50, TimeLimit: 30}, 50, testStart)
	for _, guess := range []string{"0", "51", "000", "9999"} {
		feedString(r, guess)
		fb := r.Feed('\r')
		if fb.Event != EventOutOfRange {
			t.Fatalf("guess %s: expected out of range, got %v", guess, fb.Event)
		}
		if r.Input() != "" {
			t.Fatalf("guess %s: expected buffer cleared", guess)
		}
	}
	if r.Result().Guesses != 0 {
		t.Fatalf("out of range guesses must not count")
	}
	if r.State() != AwaitingInput {
		t.Fatalf("expected awaiting input, got %v", r.State())
	}
}

func TestHints(t *testing.T) {
	r := normalRound(42)
	feedString(r, "10")
	if fb := r.Feed('\r'); fb.Event != EventTooLow || fb.Guess != 10 {
		t.Fatalf("expected too low for 10, got %+v", fb)
	}
	feedString(r, "90")
	if fb := r.Feed('\n'); fb.Event != EventTooHigh || fb.Guess != 90 {
		t.Fatalf("expected too high for 90, got %+v", fb)
	}
	if r.Input() != "" {
		t.Fatalf("expected buffer cleared after hint")
	}
	if r.Result().Guesses != 2 {
		t.Fatalf("expected 2 guesses, got %d", r.Result().Guesses)
	}
}

func TestSolvedElapsed(t *testing.T) {
	r := normalRound(42)
	r.Tick(testStart.Add(5500 * time.Millisecond))
	feedString(r, "042")
	fb := r.Feed('\r')
	if fb.Event != EventSolved {
		t.Fatalf("expected solved, got %v", fb.Event)
	}
	res := r.Result()
	if res.Outcome != model.OutcomeSolved || res.ElapsedSec != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if fb := r.Feed('1'); fb.Event != EventIgnored {
		t.Fatalf("expected finished round to ignore input")
	}
}

func TestTickChangedOnlyOnSecondBoundary(t *testing.T) {
	r := normalRound(42)
	if left, changed := r.Tick(testStart); left != 20 || !changed {
		t.Fatalf("first tick: got %d %v", left, changed)
	}
	if _, changed := r.Tick(testStart.Add(900 * time.Millisecond)); changed {
		t.Fatalf("expected no change within the same second")
	}
	if left, changed := r.Tick(testStart.Add(time.Second)); left != 19 || !changed {
		t.Fatalf("expected 19 and changed, got %d %v", left, changed)
	}
}

func TestTimeoutOverridesInput(t *testing.T) {
	r := normalRound(42)
	feedString(r, "42")
	left, _ := r.Tick(testStart.Add(25 * time.Second))
	if left != 0 {
		t.Fatalf("expected remaining clamped to 0, got %d", left)
	}
	if r.State() != TimedOut {
		t.Fatalf("expected timed out, got %v", r.State())
	}
	if fb := r.Feed('\r'); fb.Event != EventIgnored {
		t.Fatalf("expected input ignored after timeout")
	}
	res := r.Result()
	if res.Outcome != model.OutcomeTimedOut || res.ElapsedSec != 20 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestElapsedWithinLimit(t *testing.T) {
	for offset := 0; offset <= 25; offset++ {
		r := normalRound(7)
		r.Tick(testStart.Add(time.Duration(offset) * time.Second))
		if r.Finished() {
			continue
		}
		feedString(r, "7\r")
		res := r.Result()
		if res.ElapsedSec < 0 || res.ElapsedSec > 20 {
			t.Fatalf("elapsed %d outside [0,20]", res.ElapsedSec)
		}
	}
}

func TestScore(t *testing.T) {
	if got := Score(20, 5); got != 145 {
		t.Fatalf("expected 145, got %d", got)
	}
	if got := Score(12, 12); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestImprovesOn(t *testing.T) {
	cases := []struct {
		elapsed int
		best    int
		hasBest bool
		want    bool
	}{
		{elapsed: 25, best: 30, hasBest: true, want: true},
		{elapsed: 35, best: 30, hasBest: true, want: false},
		{elapsed: 30, best: 30, hasBest: true, want: false},
		{elapsed: 35, hasBest: false, want: true},
	}
	for _, tc := range cases {
		if got := ImprovesOn(tc.elapsed, tc.best, tc.hasBest); got != tc.want {
			t.Fatalf("ImprovesOn(%d, %d, %v) = %v, want %v", tc.elapsed, tc.best, tc.hasBest, got, tc.want)
		}
	}
}

func TestMessage(t *testing.T) {
	r := NewRound(model.DefaultPreset(), 42, testStart)
	r.Tick(testStart)
	cases := []struct {
		fb   Feedback
		want string
	}{
		{Feedback{Event: EventOutOfRange}, "Out of range. Use 1..100"},
		{Feedback{Event: EventTooLow, Guess: 10}, "Hint: GREATER than 10"},
		{Feedback{Event: EventTooHigh, Guess: 90}, "Hint: SMALLER than 90"},
		{Feedback{Event: EventEdited}, ""},
		{Feedback{Event: EventEmptySubmit}, ""},
	}
	for _, tc := range cases {
		if got := Message(r, tc.fb); got != tc.want {
			t.Fatalf("Message(%+v) = %q, want %q", tc.fb, got, tc.want)
		}
	}
}
