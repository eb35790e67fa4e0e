package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/guessnum/internal/model"
)

func TestFastestSolves(t *testing.T) {
	base := time.Unix(0, 0)
	rounds := []model.RoundAggregate{
		{RoundID: 1, Outcome: model.OutcomeSolved, ElapsedSec: 9, EndedAt: base},
		{RoundID: 2, Outcome: model.OutcomeTimedOut, ElapsedSec: 1, EndedAt: base.Add(time.Minute)},
		{RoundID: 3, Outcome: model.OutcomeSolved, ElapsedSec: 4, EndedAt: base.Add(2 * time.Minute)},
		{RoundID: 4, Outcome: model.OutcomeSolved, ElapsedSec: 4, EndedAt: base.Add(-time.Minute)},
	}
	top := FastestSolves(rounds, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(top))
	}
	if top[0].RoundID != 4 || top[1].RoundID != 3 {
		t.Fatalf("unexpected order: %+v", top)
	}
	if got := FastestSolves(rounds, 10); len(got) != 3 {
		t.Fatalf("timed out rounds must be skipped, got %d", len(got))
	}
	if FastestSolves(rounds, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}
