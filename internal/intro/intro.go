// Package intro draws the animated banner shown before the first menu.
package intro

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/guessnum/internal/theme"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// LoaderCells is the width of the loading bar.
const LoaderCells = 40

type letter struct {
	rows    []string
	caption string
	tagline string
}

var letters = []letter{
	{
		rows:    []string{" GGGG ", "G     ", "G  GG ", "G   G ", " GGGG "},
		caption: "Guess",
		tagline: "Every number is a clue",
	},
	{
		rows:    []string{"U   U ", "U   U ", "U   U ", "U   U ", " UUU  "},
		caption: "Under",
		tagline: "Beat the clock",
	},
	{
		rows:    []string{"EEEEE ", "E     ", "EEEE  ", "E     ", "EEEEE "},
		caption: "Every",
		tagline: "Halve the range each time",
	},
	{
		rows:    []string{" SSSS ", "S     ", " SSS  ", "    S ", "SSSS  "},
		caption: "Second",
		tagline: "Hints point the way",
	},
	{
		rows:    []string{" SSSS ", "S     ", " SSS  ", "    S ", "SSSS  "},
		caption: "Shaved",
		tagline: "Set a new record",
	},
}

var finalBanner = []string{
	" GGGG   U   U  EEEEE   SSSS   SSSS",
	"G       U   U  E      S      S    ",
	"G  GG   U   U  EEEE    SSS    SSS ",
	"G   G   U   U  E          S      S",
	" GGGG    UUU   EEEEE  SSSS   SSSS ",
}

// Options controls pacing and layout. A zero Sleep skips all pauses.
type Options struct {
	Width int
	ANSI  bool
	Sleep func(time.Duration)
}

// Player renders the intro to a writer.
type Player struct {
	out   io.Writer
	width int
	ansi  bool
	sleep func(time.Duration)
	err   error
}

// New prepares an intro player.
func New(out io.Writer, opts Options) *Player {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = func(time.Duration) {}
	}
	return &Player{out: out, width: width, ansi: opts.ANSI, sleep: sleep}
}

// TerminalWidth returns the column count of f, or DefaultWidth.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Play shows the per-letter frames, the final banner and the loader.
func (p *Player) Play() error {
	for _, l := range letters {
		p.clear()
		for _, row := range l.rows {
			p.center(row, theme.Green)
		}
		p.sleep(700 * time.Millisecond)

		p.clear()
		p.center("GUESS THE NUMBER", theme.Blue)
		p.write("\n")
		p.typeText(theme.Cyan, "Word : ", 20*time.Millisecond)
		p.typeText(nil, l.caption, 30*time.Millisecond)
		p.write("\n")
		p.typeText(theme.Cyan, " - ", 20*time.Millisecond)
		p.typeText(theme.Yellow, l.tagline, 25*time.Millisecond)
		p.write("\n")
		p.sleep(1100 * time.Millisecond)
	}

	p.clear()
	for _, row := range finalBanner {
		p.center(row, theme.Green)
	}
	p.sleep(900 * time.Millisecond)

	p.loader()
	return p.err
}

func (p *Player) loader() {
	p.typeText(theme.Cyan, "\nLoading Game...\n", 18*time.Millisecond)
	p.write("[")
	for i := 0; i < LoaderCells; i++ {
		p.write(theme.Green("#"))
		p.sleep(45 * time.Millisecond)
	}
	p.write("] 100%\n\n")
	p.sleep(300 * time.Millisecond)
}

// typeText writes s one rune at a time with delay between runes.
func (p *Player) typeText(style func(string) string, s string, delay time.Duration) {
	for _, r := range s {
		ch := string(r)
		if style != nil && ch != "\n" {
			ch = style(ch)
		}
		p.write(ch)
		p.sleep(delay)
	}
}

func (p *Player) center(s string, style func(string) string) {
	p.write(centerPad(s, p.width) + style(s) + "\n")
}

func centerPad(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return ""
	}
	return strings.Repeat(" ", pad)
}

func (p *Player) clear() {
	if p.err != nil {
		return
	}
	if err := theme.ClearScreen(p.out, p.ansi); err != nil {
		p.err = fmt.Errorf("failed to write intro: %w", err)
	}
}

func (p *Player) write(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.out, s); err != nil {
		p.err = fmt.Errorf("failed to write intro: %w", err)
	}
}
