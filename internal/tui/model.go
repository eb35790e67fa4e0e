// Package tui provides the full-screen Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/guessnum/internal/game"
	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/session"
)

type phase int

const (
	phaseMenu phase = iota
	phaseReady
	phaseRound
	phaseResult
)

const maxLogLines = 8

const (
	keyErase     = 0x08
	keyBackspace = 0x7f
	keyEnter     = '\r'
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	timerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// tickMsg carries the round it was scheduled for so stale ticks are dropped.
type tickMsg struct {
	seq int
}

// Model implements the Bubble Tea game UI.
type Model struct {
	recorder *session.Recorder
	secrets  session.SecretSource
	now      func() time.Time

	width  int
	height int

	phase     phase
	preset    model.Preset
	round     *game.Round
	roundSeq  int
	startedAt time.Time
	log       []string

	result     model.RoundResult
	settlement session.Settlement
	best       int
	hasBest    bool
}

// NewModel constructs the game UI. A nil now uses the wall clock.
func NewModel(recorder *session.Recorder, secrets session.SecretSource, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	if recorder == nil {
		recorder = &session.Recorder{}
	}
	m := &Model{
		recorder: recorder,
		secrets:  secrets,
		now:      now,
		preset:   model.DefaultPreset(),
	}
	m.best, m.hasBest = recorder.Best()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.phase != phaseRound || msg.seq != m.roundSeq {
			return m, nil
		}
		m.round.Tick(m.now())
		if m.round.State() == game.TimedOut {
			m.finishRound()
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseMenu:
			return m.updateMenu(msg)
		case phaseReady:
			if msg.Type == tea.KeyEnter {
				return m, m.startRound()
			}
			return m, nil
		case phaseRound:
			m.feedKey(msg)
			return m, nil
		case phaseResult:
			if session.ParseReplay(msg.String()) {
				m.phase = phaseMenu
				return m, nil
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		m.preset = model.DefaultPreset()
	default:
		if msg.Type != tea.KeyRunes {
			return m, nil
		}
		m.preset = session.ParseDifficulty(string(msg.Runes))
	}
	m.phase = phaseReady
	return m, nil
}

func (m *Model) startRound() tea.Cmd {
	m.roundSeq++
	m.startedAt = m.now()
	m.round = game.NewRound(m.preset, m.secrets.Secret(m.preset.MaxNumber), m.startedAt)
	m.round.Tick(m.startedAt)
	m.log = nil
	m.phase = phaseRound
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	seq := m.roundSeq
	return tea.Tick(game.PollInterval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// feedKey maps a key press to the bytes a raw terminal would deliver.
func (m *Model) feedKey(msg tea.KeyMsg) {
	var input []byte
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		input = []byte{keyBackspace}
	case tea.KeyCtrlH:
		input = []byte{keyErase}
	case tea.KeyEnter:
		input = []byte{keyEnter}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < 0x80 {
				input = append(input, byte(r))
			}
		}
	}
	m.round.Tick(m.now())
	for _, b := range input {
		if m.round.Finished() {
			break
		}
		fb := m.round.Feed(b)
		if text := game.Message(m.round, fb); text != "" {
			m.appendLog(styleFor(fb.Event).Render(text))
		}
	}
	if m.round.Finished() {
		m.finishRound()
	}
}

func styleFor(ev game.Event) lipgloss.Style {
	switch ev {
	case game.EventOutOfRange:
		return warnStyle
	case game.EventSolved:
		return successStyle
	default:
		return hintStyle
	}
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *Model) finishRound() {
	m.result = m.round.Result()
	if m.round.State() == game.TimedOut {
		m.appendLog(hintStyle.Render(fmt.Sprintf("Time expired. The number was %d", m.round.Secret())))
	}
	m.settlement = m.recorder.Finish(context.Background(), m.preset, m.result, m.startedAt, m.now())
	if m.settlement.NewRecord {
		m.best, m.hasBest = m.result.ElapsedSec, true
	}
	m.phase = phaseResult
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderContent() string {
	lines := []string{titleStyle.Render("=== Guess-the-Number ==="), ""}
	switch m.phase {
	case phaseMenu:
		lines = append(lines, "Select difficulty:")
		for i, p := range model.Presets {
			lines = append(lines, fmt.Sprintf(" %d) %-7s(1-%d, %ds)", i+1, p.Label, p.MaxNumber, p.TimeLimit))
		}
		lines = append(lines, "", "Choose [1-3], q to quit")
	case phaseReady:
		lines = append(lines,
			fmt.Sprintf("You have %d seconds to guess a number between 1 and %d.", m.preset.TimeLimit, m.preset.MaxNumber),
			"Press Enter to start...")
	case phaseRound:
		lines = append(lines, m.promptLine(), "")
		lines = append(lines, m.log...)
	case phaseResult:
		lines = append(lines, m.log...)
		lines = append(lines, "")
		if m.result.Solved() {
			lines = append(lines, fmt.Sprintf("Score: %d", m.settlement.Score))
			if m.settlement.NewRecord {
				lines = append(lines, successStyle.Render("New record!"))
			}
		}
		lines = append(lines, "", "Play again? (y/n)")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) promptLine() string {
	return timerStyle.Render(fmt.Sprintf("[Time %2ds]", m.round.Remaining())) + " Guess: " + m.round.Input()
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.hasBest {
		segments = append(segments, fmt.Sprintf("Best %ds", m.best))
	} else {
		segments = append(segments, "No record yet")
	}
	segments = append(segments, fmt.Sprintf("%s (1-%d, %ds)", m.preset.Label, m.preset.MaxNumber, m.preset.TimeLimit))
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}
