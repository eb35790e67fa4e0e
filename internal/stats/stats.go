// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/guessnum/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RoundMetrics aggregates a set of rounds.
type RoundMetrics struct {
	Rounds      int
	Solved      int
	SolveRate   float64
	BestElapsed int
	HasBest     bool
	AvgElapsed  float64 // solved rounds only
	AvgScore    float64 // solved rounds only
	AvgGuesses  float64
}

// Summarize computes metrics for rounds.
func Summarize(rounds []model.RoundAggregate) RoundMetrics {
	var m RoundMetrics
	m.Rounds = len(rounds)
	if m.Rounds == 0 {
		return m
	}
	var elapsed, score, guesses int
	for _, r := range rounds {
		guesses += r.Guesses
		if r.Outcome != model.OutcomeSolved {
			continue
		}
		m.Solved++
		elapsed += r.ElapsedSec
		score += r.Score
		if !m.HasBest || r.ElapsedSec < m.BestElapsed {
			m.BestElapsed = r.ElapsedSec
			m.HasBest = true
		}
	}
	m.SolveRate = float64(m.Solved) / float64(m.Rounds)
	m.AvgGuesses = float64(guesses) / float64(m.Rounds)
	if m.Solved > 0 {
		m.AvgElapsed = float64(elapsed) / float64(m.Solved)
		m.AvgScore = float64(score) / float64(m.Solved)
	}
	return m
}

// SolveTimes returns the elapsed seconds of solved rounds in order.
func SolveTimes(rounds []model.RoundAggregate) []float64 {
	out := make([]float64, 0, len(rounds))
	for _, r := range rounds {
		if r.Outcome == model.OutcomeSolved {
			out = append(out, float64(r.ElapsedSec))
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatBest renders a best time or a dash.
func FormatBest(m RoundMetrics) string {
	if !m.HasBest {
		return "-"
	}
	return fmt.Sprintf("%ds", m.BestElapsed)
}

// RenderSummary prints overall metrics.
func RenderSummary(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	m := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", m.Rounds),
		fmt.Sprintf("Solved: %d (%.1f%%)", m.Solved, m.SolveRate*100),
		fmt.Sprintf("Best time: %s", FormatBest(m)),
		fmt.Sprintf("Avg time: %.1fs", m.AvgElapsed),
		fmt.Sprintf("Avg score: %.1f", m.AvgScore),
		fmt.Sprintf("Avg guesses: %.1f", m.AvgGuesses),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDifficultyTable prints one row of metrics per difficulty.
func RenderDifficultyTable(w io.Writer, groups []DifficultyGroup) error {
	if len(groups) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per Difficulty"); err != nil {
		return err
	}
	headers, rows := DifficultyRows(groups)
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// DifficultyRows formats groups as table cells.
func DifficultyRows(groups []DifficultyGroup) ([]string, [][]string) {
	headers := []string{"Difficulty", "Rounds", "Solved", "Best", "Avg Time", "Avg Score"}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		m := g.Metrics
		rows = append(rows, []string{
			string(g.Difficulty),
			fmt.Sprintf("%d", m.Rounds),
			fmt.Sprintf("%.0f%%", m.SolveRate*100),
			FormatBest(m),
			fmt.Sprintf("%.1fs", m.AvgElapsed),
			fmt.Sprintf("%.1f", m.AvgScore),
		})
	}
	return headers, rows
}

// RenderTrend prints a sparkline of the moving average of solve times.
func RenderTrend(w io.Writer, rounds []model.RoundAggregate, window int) error {
	times := SolveTimes(rounds)
	if len(times) == 0 {
		_, err := fmt.Fprintln(w, "No solved rounds yet.")
		return err
	}
	avg := MovingAverage(times, window)
	if _, err := fmt.Fprintf(w, "Solve time trend (window %d)\n", window); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "[%s]\n", Sparkline(avg)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "first %.1fs  last %.1fs\n\n", avg[0], avg[len(avg)-1])
	return err
}
