package stats

import (
	"sort"

	"github.com/verte-zerg/guessnum/internal/model"
)

// FastestSolves returns the n quickest solved rounds, earliest first on ties.
func FastestSolves(rounds []model.RoundAggregate, n int) []model.RoundAggregate {
	if n <= 0 || len(rounds) == 0 {
		return nil
	}
	items := make([]model.RoundAggregate, 0, len(rounds))
	for _, r := range rounds {
		if r.Outcome == model.OutcomeSolved {
			items = append(items, r)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ElapsedSec == items[j].ElapsedSec {
			return items[i].EndedAt.Before(items[j].EndedAt)
		}
		return items[i].ElapsedSec < items[j].ElapsedSec
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
