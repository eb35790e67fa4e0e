package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/guessnum/internal/game"
	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/session"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

type fixedSecret int

func (f fixedSecret) Secret(int) int { return int(f) }

type memRecords struct {
	value int
	ok    bool
}

func (m *memRecords) Load() (int, bool) { return m.value, m.ok }

func (m *memRecords) Save(v int) error {
	m.value, m.ok = v, true
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(records *memRecords) (*Model, *clock) {
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	rec := &session.Recorder{Records: records}
	return NewModel(rec, fixedSecret(42), c.Now), c
}

func TestSolveRoundUpdatesRecord(t *testing.T) {
	records := &memRecords{value: 10, ok: true}
	m, c := newTestModel(records)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Update(runes("3"))
	if m.phase != phaseReady || m.preset.Difficulty != model.DifficultyHard {
		t.Fatalf("expected hard preset ready, got phase %d %+v", m.phase, m.preset)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseRound || cmd == nil {
		t.Fatalf("expected round to start with a tick")
	}

	c.now = c.now.Add(2 * time.Second)
	m.Update(runes("50"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.log) != 1 || !strings.Contains(m.log[0], "SMALLER than 50") {
		t.Fatalf("unexpected log: %v", m.log)
	}
	m.Update(runes("41"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(runes("2"))
	c.now = c.now.Add(time.Second)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.phase != phaseResult {
		t.Fatalf("expected result phase, got %d", m.phase)
	}
	if m.result.ElapsedSec != 3 || m.result.Guesses != 2 {
		t.Fatalf("unexpected result: %+v", m.result)
	}
	if !m.settlement.NewRecord || records.value != 3 {
		t.Fatalf("expected record 3, got %+v %+v", m.settlement, records)
	}
	if m.settlement.Score != 100+(12-3)*3 {
		t.Fatalf("unexpected score %d", m.settlement.Score)
	}
	view := m.View()
	if !strings.Contains(view, "Score: 127") || !strings.Contains(view, "Best 3s") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m.Update(runes("y"))
	if m.phase != phaseMenu {
		t.Fatalf("expected menu after replay")
	}
}

func TestEraseKeysEditInput(t *testing.T) {
	m, _ := newTestModel(&memRecords{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(runes("2"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseRound {
		t.Fatalf("expected round phase, got %d", m.phase)
	}

	m.Update(runes("123"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	if got := m.round.Input(); got != "12" {
		t.Fatalf("ctrl+h must erase like the raw terminal, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.round.Input(); got != "1" {
		t.Fatalf("backspace must erase, got %q", got)
	}
}

func TestTickTimesOutRound(t *testing.T) {
	records := &memRecords{}
	m, c := newTestModel(records)
	m.Update(runes("1"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("7"))

	c.now = c.now.Add(29 * time.Second)
	_, cmd := m.Update(tickMsg{seq: m.roundSeq})
	if m.phase != phaseRound || cmd == nil {
		t.Fatalf("round must keep ticking before the limit")
	}
	if !strings.Contains(m.View(), "[Time  1s] Guess: 7") {
		t.Fatalf("unexpected prompt:\n%s", m.View())
	}

	c.now = c.now.Add(time.Second)
	_, cmd = m.Update(tickMsg{seq: m.roundSeq})
	if cmd != nil || m.phase != phaseResult {
		t.Fatalf("expected timeout to end the round")
	}
	if m.result.Outcome != model.OutcomeTimedOut || records.ok {
		t.Fatalf("timeout must not save a record: %+v %+v", m.result, records)
	}
	if !strings.Contains(m.View(), "Time expired. The number was 42") {
		t.Fatalf("missing timeout message:\n%s", m.View())
	}

	_, cmd = m.Update(runes("n"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit after declining replay")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, c := newTestModel(&memRecords{})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.preset.Difficulty != model.DifficultyNormal {
		t.Fatalf("enter must pick Normal")
	}
	c.now = c.now.Add(time.Hour)
	if _, cmd := m.Update(tickMsg{seq: m.roundSeq - 1}); cmd != nil || m.phase != phaseRound {
		t.Fatalf("stale tick must be ignored")
	}
	if m.round.State() != game.AwaitingInput {
		t.Fatalf("stale tick must not advance the round")
	}
}

func TestMenuQuit(t *testing.T) {
	m, _ := newTestModel(&memRecords{})
	_, cmd := m.Update(runes("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit from menu")
	}
	if !strings.Contains(m.renderFooter(), "No record yet") {
		t.Fatalf("unexpected footer %q", m.renderFooter())
	}
}
