package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds  []model.RoundAggregate
	Overall RoundMetrics
	Groups  []DifficultyGroup
}

// DifficultyGroup holds the rounds played on one difficulty.
type DifficultyGroup struct {
	Difficulty model.Difficulty
	Rounds     []model.RoundAggregate
	Metrics    RoundMetrics
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}
	return Report{
		Rounds:  rounds,
		Overall: Summarize(rounds),
		Groups:  groupByDifficulty(rounds),
	}, nil
}

// groupByDifficulty returns groups in preset order, skipping empty ones.
func groupByDifficulty(rounds []model.RoundAggregate) []DifficultyGroup {
	buckets := map[model.Difficulty][]model.RoundAggregate{}
	for _, r := range rounds {
		buckets[r.Difficulty] = append(buckets[r.Difficulty], r)
	}
	groups := make([]DifficultyGroup, 0, len(buckets))
	for _, p := range model.Presets {
		rs, ok := buckets[p.Difficulty]
		if !ok {
			continue
		}
		groups = append(groups, DifficultyGroup{
			Difficulty: p.Difficulty,
			Rounds:     rs,
			Metrics:    Summarize(rs),
		})
	}
	return groups
}

// Render writes the plain text report.
func Render(w io.Writer, report Report, window int) error {
	if err := RenderSummary(w, report.Rounds); err != nil {
		return err
	}
	if len(report.Rounds) == 0 {
		return nil
	}
	if err := RenderDifficultyTable(w, report.Groups); err != nil {
		return err
	}
	if err := RenderTrend(w, report.Rounds, window); err != nil {
		return err
	}
	fastest := FastestSolves(report.Rounds, 5)
	if len(fastest) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Fastest Solves"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(fastest))
	for i, r := range fastest {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			string(r.Difficulty),
			fmt.Sprintf("%ds", r.ElapsedSec),
			fmt.Sprintf("%d", r.Guesses),
			r.EndedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	lines := formatTable([]string{"#", "Difficulty", "Time", "Guesses", "Played"}, rows, map[int]bool{0: true, 2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
