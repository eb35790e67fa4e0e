package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/guessnum/internal/model"
)

func TestSummarize(t *testing.T) {
	rounds := []model.RoundAggregate{
		{Outcome: model.OutcomeSolved, ElapsedSec: 8, Score: 136, Guesses: 5},
		{Outcome: model.OutcomeTimedOut, ElapsedSec: 20, Score: 0, Guesses: 7},
		{Outcome: model.OutcomeSolved, ElapsedSec: 4, Score: 148, Guesses: 3},
		{Outcome: model.OutcomeTimedOut, ElapsedSec: 20, Score: 0, Guesses: 1},
	}
	want := RoundMetrics{
		Rounds:      4,
		Solved:      2,
		SolveRate:   0.5,
		BestElapsed: 4,
		HasBest:     true,
		AvgElapsed:  6,
		AvgScore:    142,
		AvgGuesses:  4,
	}
	if diff := cmp.Diff(want, Summarize(rounds)); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(RoundMetrics{}, Summarize(nil)); diff != "" {
		t.Fatalf("expected zero metrics (-want +got):\n%s", diff)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	if diff := cmp.Diff([]float64{2, 3, 5, 7}, got); diff != "" {
		t.Fatalf("moving average mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 5}, MovingAverage([]float64{1, 5}, 1)); diff != "" {
		t.Fatalf("window 1 must copy input (-want +got):\n%s", diff)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderTrendWithoutSolves(t *testing.T) {
	var buf bytes.Buffer
	rounds := []model.RoundAggregate{{Outcome: model.OutcomeTimedOut}}
	if err := RenderTrend(&buf, rounds, 3); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	if !strings.Contains(buf.String(), "No solved rounds yet.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
