package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/verte-zerg/guessnum/internal/game"
	"github.com/verte-zerg/guessnum/internal/model"
)

// RecordStore keeps the single best solve time.
type RecordStore interface {
	Load() (int, bool)
	Save(v int) error
}

// HistoryStore appends finished rounds.
type HistoryStore interface {
	InsertRound(ctx context.Context, r model.RoundRecord) (int64, error)
}

// Settlement is what a finished round earned.
type Settlement struct {
	Score        int
	NewRecord    bool
	PreviousBest int
	HadBest      bool
}

// Settle scores a result against the stored best. Timed out rounds score nothing.
func Settle(preset model.Preset, result model.RoundResult, best int, hasBest bool) Settlement {
	s := Settlement{PreviousBest: best, HadBest: hasBest}
	if !result.Solved() {
		return s
	}
	s.Score = game.Score(preset.TimeLimit, result.ElapsedSec)
	s.NewRecord = game.ImprovesOn(result.ElapsedSec, best, hasBest)
	return s
}

// Recorder persists the outcome of rounds. History is optional.
type Recorder struct {
	Records   RecordStore
	History   HistoryStore
	SessionID string
}

// Best returns the stored best time.
func (r *Recorder) Best() (int, bool) {
	if r == nil || r.Records == nil {
		return 0, false
	}
	return r.Records.Load()
}

// Finish settles a round, saving a new record and appending history. Storage
// failures are reported on stderr and never stop play.
func (r *Recorder) Finish(ctx context.Context, preset model.Preset, result model.RoundResult, startedAt, endedAt time.Time) Settlement {
	best, hasBest := r.Best()
	s := Settle(preset, result, best, hasBest)
	if s.NewRecord && r.Records != nil {
		if err := r.Records.Save(result.ElapsedSec); err != nil {
			logErrf("failed to save record: %v\n", err)
		}
	}
	if r.History != nil {
		rec := model.RoundRecord{
			SessionID:  r.SessionID,
			StartedAt:  startedAt,
			EndedAt:    endedAt,
			Difficulty: preset.Difficulty,
			MaxNumber:  preset.MaxNumber,
			TimeLimit:  preset.TimeLimit,
			Secret:     result.Secret,
			Guesses:    result.Guesses,
			Outcome:    result.Outcome,
			ElapsedSec: result.ElapsedSec,
			Score:      s.Score,
		}
		if _, err := r.History.InsertRound(ctx, rec); err != nil {
			logErrf("failed to save round history: %v\n", err)
		}
	}
	return s
}

// logOutput receives best-effort storage diagnostics.
var logOutput io.Writer = os.Stderr

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(logOutput, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
