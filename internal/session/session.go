// Package session runs the menu, round and replay loop of the classic
// line-oriented frontend.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/guessnum/internal/game"
	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/theme"
)

// Terminal switches the input between prompt and gameplay modes.
type Terminal interface {
	EnterRawPolling() error
	EnterCanonical() error
}

// SecretSource draws the number to guess.
type SecretSource interface {
	Secret(maxNumber int) int
}

// Session wires the collaborators of one interactive run.
type Session struct {
	In          io.Reader
	Out         io.Writer
	Term        Terminal
	Keys        game.KeySource
	Secrets     SecretSource
	Recorder    *Recorder
	RecordLabel string
	ANSI        bool
	Now         func() time.Time
	Sleep       func(time.Duration)
}

// Run plays rounds until the player declines a replay or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	if s.Recorder == nil {
		s.Recorder = &Recorder{}
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		again, err := s.playOnce(ctx)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) playOnce(ctx context.Context) (bool, error) {
	if err := s.Term.EnterCanonical(); err != nil {
		return false, err
	}
	w := &errWriter{w: s.Out}
	if err := theme.ClearScreen(s.Out, s.ANSI); err != nil {
		return false, fmt.Errorf("failed to write output: %w", err)
	}
	w.println(theme.Blue("=== Guess-the-Number ==="))
	if best, ok := s.Recorder.Best(); ok {
		w.printf("Fastest solve: %d s (stored in %s)\n", best, s.RecordLabel)
	} else {
		w.println("No record yet.")
	}
	w.printf("\nSelect difficulty:\n")
	for i, p := range model.Presets {
		w.printf(" %d) %-7s(1-%d, %ds)\n", i+1, p.Label, p.MaxNumber, p.TimeLimit)
	}
	w.printf("Choose [1-3]: ")
	if w.err != nil {
		return false, w.err
	}

	line, _ := readLine(s.In)
	preset := ParseDifficulty(line)
	w.printf("\nYou have %d seconds to guess a number between 1 and %d.\n", preset.TimeLimit, preset.MaxNumber)
	w.printf("Press Enter to start...")
	if w.err != nil {
		return false, w.err
	}
	if _, err := readLine(s.In); err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	result, startedAt, err := s.playRound(ctx, preset)
	if err != nil {
		return false, err
	}
	settlement := s.Recorder.Finish(ctx, preset, result, startedAt, s.Now())
	if result.Solved() {
		w.printf("Score: %d\n", settlement.Score)
		if settlement.NewRecord {
			w.println(theme.Green("New record! Saving..."))
		}
	}

	w.printf("\nPlay again? (y/n): ")
	if w.err != nil {
		return false, w.err
	}
	line, _ = readLine(s.In)
	return ParseReplay(line), nil
}

func (s *Session) playRound(ctx context.Context, preset model.Preset) (model.RoundResult, time.Time, error) {
	if err := s.Term.EnterRawPolling(); err != nil {
		return model.RoundResult{}, time.Time{}, err
	}
	startedAt := s.Now()
	round := game.NewRound(preset, s.Secrets.Secret(preset.MaxNumber), startedAt)
	result, playErr := game.Play(ctx, s.Keys, s.Out, round, game.PlayOptions{
		Now:   s.Now,
		Sleep: s.Sleep,
		ANSI:  s.ANSI,
	})
	if err := s.Term.EnterCanonical(); err != nil && playErr == nil {
		playErr = err
	}
	return result, startedAt, playErr
}

// ParseDifficulty reads a leading integer the way scanf("%d") would. Any
// answer other than 1 or 3, including unparseable input, selects Normal.
func ParseDifficulty(line string) model.Preset {
	choice, ok := leadingInt(line)
	if !ok {
		return model.DefaultPreset()
	}
	return model.PresetForChoice(choice)
}

// ParseReplay reports whether the answer's first non-space character is y or Y.
func ParseReplay(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return trimmed[0] == 'y' || trimmed[0] == 'Y'
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// readLine reads up to and including the next newline one byte at a time, so
// nothing past the line is consumed.
func readLine(r io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return strings.TrimRight(b.String(), "\r"), nil
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			return strings.TrimRight(b.String(), "\r"), err
		}
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	if _, err := fmt.Fprintf(e.w, format, args...); err != nil {
		e.err = fmt.Errorf("failed to write output: %w", err)
	}
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	if _, err := fmt.Fprintln(e.w, args...); err != nil {
		e.err = fmt.Errorf("failed to write output: %w", err)
	}
}
