// Package model defines shared data structures.
package model

import "time"

// Difficulty names one of the fixed round presets.
type Difficulty string

// Difficulty presets offered by the menu.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Preset pairs a number range with a time limit.
type Preset struct {
	Difficulty Difficulty
	Label      string
	MaxNumber  int
	TimeLimit  int // seconds
}

// Presets lists the menu choices in display order (choice 1..3).
var Presets = []Preset{
	{Difficulty: DifficultyEasy, Label: "Easy", MaxNumber: 50, TimeLimit: 30},
	{Difficulty: DifficultyNormal, Label: "Normal", MaxNumber: 100, TimeLimit: 20},
	{Difficulty: DifficultyHard, Label: "Hard", MaxNumber: 200, TimeLimit: 12},
}

// DefaultPreset is used whenever the menu answer cannot be understood.
func DefaultPreset() Preset {
	return Presets[1]
}

// PresetForChoice maps a 1-based menu choice to a preset, falling back to Normal.
func PresetForChoice(choice int) Preset {
	switch choice {
	case 1:
		return Presets[0]
	case 3:
		return Presets[2]
	default:
		return DefaultPreset()
	}
}

// PresetByDifficulty looks up a preset by its difficulty name.
func PresetByDifficulty(d Difficulty) (Preset, bool) {
	for _, p := range Presets {
		if p.Difficulty == d {
			return p, true
		}
	}
	return Preset{}, false
}

// Outcome is the terminal state of a round.
type Outcome string

// Round outcomes.
const (
	OutcomeSolved   Outcome = "solved"
	OutcomeTimedOut Outcome = "timed_out"
)

// RoundResult captures how a finished round ended.
type RoundResult struct {
	Outcome    Outcome
	Secret     int
	ElapsedSec int
	Guesses    int
}

// Solved reports whether the round ended with the secret found.
func (r RoundResult) Solved() bool {
	return r.Outcome == OutcomeSolved
}

// RoundRecord is one finished round as stored in the history database.
type RoundRecord struct {
	SessionID  string
	StartedAt  time.Time
	EndedAt    time.Time
	Difficulty Difficulty
	MaxNumber  int
	TimeLimit  int
	Secret     int
	Guesses    int
	Outcome    Outcome
	ElapsedSec int
	Score      int
}

// RoundAggregate summarizes a stored round for reporting.
type RoundAggregate struct {
	RoundID    int64
	SessionID  string
	EndedAt    time.Time
	Difficulty Difficulty
	Outcome    Outcome
	TimeLimit  int
	ElapsedSec int
	Guesses    int
	Score      int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Difficulty  Difficulty
	Since       *time.Time
	Last        int
	TrendWindow int
}

// Config defines game settings resolved from flags and the config file.
type Config struct {
	Intro      bool
	Color      bool
	TUI        bool
	History    bool
	RecordPath string
	DBPath     string
}
