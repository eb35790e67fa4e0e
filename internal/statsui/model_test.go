package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestModelRendersRoundsAndWindowKeys(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	for i, elapsed := range []int{9, 6} {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		_, err := st.InsertRound(ctx, model.RoundRecord{
			SessionID:  "s",
			StartedAt:  start,
			EndedAt:    start.Add(time.Duration(elapsed) * time.Second),
			Difficulty: model.DifficultyNormal,
			MaxNumber:  100,
			TimeLimit:  20,
			Secret:     50,
			Guesses:    4,
			Outcome:    model.OutcomeSolved,
			ElapsedSec: elapsed,
			Score:      100 + (20-elapsed)*3,
		})
		if err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	m := NewModel(st, model.StatsConfig{TrendWindow: 3})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	if !strings.Contains(view, "Overview") || !strings.Contains(view, "window=3") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	if len(m.report.Rounds) != 2 || m.report.Overall.BestElapsed != 6 {
		t.Fatalf("unexpected report: %+v", m.report)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.TrendWindow != 5 {
		t.Fatalf("expected window 5, got %d", m.cfg.TrendWindow)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if m.cfg.TrendWindow != 1 {
		t.Fatalf("expected window 1, got %d", m.cfg.TrendWindow)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabRounds {
		t.Fatalf("expected rounds tab, got %d", m.activeTab)
	}
	if rows := m.roundsTable.Rows(); len(rows) != 2 || rows[0][3] != "6s" {
		t.Fatalf("expected newest round first, got %v", rows)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func filterInputs(values ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(values))
	for i, v := range values {
		inputs[i] = textinput.New()
		inputs[i].SetValue(v)
	}
	return inputs
}

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter(filterInputs("Hard", "2024-01-02", "10", "4"))
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Difficulty != model.DifficultyHard || cfg.Last != 10 || cfg.TrendWindow != 4 || cfg.Since == nil {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	bad := [][]string{
		{"extreme", "", "", ""},
		{"", "02/01/2024", "", ""},
		{"", "", "-3", ""},
		{"", "", "", "0"},
	}
	for _, values := range bad {
		if _, err := parseFilter(filterInputs(values...)); err == nil {
			t.Fatalf("expected error for %v", values)
		}
	}
}

func TestWindowSteps(t *testing.T) {
	if nextWindow(1) != 5 || nextWindow(5) != 10 || nextWindow(7) != 10 {
		t.Fatalf("unexpected next window steps")
	}
	if prevWindow(5) != 1 || prevWindow(10) != 5 || prevWindow(12) != 10 {
		t.Fatalf("unexpected prev window steps")
	}
}
