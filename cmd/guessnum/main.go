// Package main provides the CLI entrypoint for guessnum.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/guessnum/internal/config"
	"github.com/verte-zerg/guessnum/internal/generator"
	"github.com/verte-zerg/guessnum/internal/intro"
	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/record"
	"github.com/verte-zerg/guessnum/internal/session"
	"github.com/verte-zerg/guessnum/internal/stats"
	"github.com/verte-zerg/guessnum/internal/statsui"
	"github.com/verte-zerg/guessnum/internal/store"
	"github.com/verte-zerg/guessnum/internal/terminal"
	"github.com/verte-zerg/guessnum/internal/theme"
	"github.com/verte-zerg/guessnum/internal/tui"
)

const defaultTrendWindow = 10

// exitInterrupted is the status for a SIGINT exit. Other signals exit with
// 128 plus the signal number (143 for SIGTERM). A signal exit restores the
// terminal only; deferred cleanup such as closing the history database is
// skipped.
const exitInterrupted = 130

var (
	gameTUI        bool
	gameNoIntro    bool
	gameNoColor    bool
	gameNoHistory  bool
	gameRecordFile string

	statsDifficulty string
	statsSince      string
	statsLast       int
	statsWindow     int
	statsPlain      bool

	recordReset bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "guessnum",
		Short:         "Timed guess-the-number game for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.Flags().BoolVar(&gameTUI, "tui", false, "use the full-screen interface")
	rootCmd.Flags().BoolVar(&gameNoIntro, "no-intro", false, "skip the intro animation")
	rootCmd.Flags().BoolVar(&gameNoColor, "no-color", false, "disable colors")
	rootCmd.Flags().BoolVar(&gameNoHistory, "no-history", false, "do not save rounds to the history database")
	rootCmd.PersistentFlags().StringVar(&gameRecordFile, "record-file", "", "best-time record file (default: XDG data dir)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRecordCmd())

	return rootCmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveGameConfig(cmd, fileCfg)
	theme.Configure(cfg.Color)

	records := record.New(cfg.RecordPath)
	recorder := &session.Recorder{Records: records, SessionID: uuid.NewString()}
	if cfg.History {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			logErrf("failed to open history db, rounds will not be saved: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			recorder.History = st
		}
	}

	ansi := term.IsTerminal(int(os.Stdout.Fd()))
	if cfg.Intro {
		player := intro.New(os.Stdout, intro.Options{
			Width: intro.TerminalWidth(os.Stdout),
			ANSI:  ansi,
			Sleep: time.Sleep,
		})
		if err := player.Play(); err != nil {
			logErrf("%v\n", err)
		}
	}

	if cfg.TUI {
		return runTUI(recorder)
	}

	var ctrl session.Terminal
	c, err := terminal.New(os.Stdin)
	switch {
	case errors.Is(err, terminal.ErrUnsupported):
		return runTUI(recorder)
	case errors.Is(err, terminal.ErrNotTerminal):
		ctrl = terminal.Nop{}
	case err != nil:
		return fmt.Errorf("failed to open terminal: %w", err)
	default:
		if err := c.CaptureOriginal(); err != nil {
			return err
		}
		defer func() {
			if rerr := c.RestoreOriginal(); rerr != nil {
				logErrf("failed to restore terminal: %v\n", rerr)
			}
		}()
		stop := watchSignals(c.RestoreOriginal)
		defer stop()
		ctrl = c
	}

	keys := terminal.NewPoller(os.Stdin)
	s := &session.Session{
		In:          keys,
		Out:         os.Stdout,
		Term:        ctrl,
		Keys:        keys,
		Secrets:     generator.New(),
		Recorder:    recorder,
		RecordLabel: records.Path(),
		ANSI:        ansi,
	}
	return s.Run(cmd.Context())
}

func runTUI(recorder *session.Recorder) error {
	m := tui.NewModel(recorder, generator.New(), nil)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// watchSignals restores the terminal and exits on SIGINT or SIGTERM. The
// returned function stops watching.
func watchSignals(restore func() error) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go handleSignal(sigCh, done, restore, os.Exit)
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// handleSignal waits for a signal or for done. On a signal it restores the
// terminal before calling exit.
func handleSignal(sigCh <-chan os.Signal, done <-chan struct{}, restore func() error, exit func(int)) {
	select {
	case sig := <-sigCh:
		if err := restore(); err != nil {
			logErrf("failed to restore terminal: %v\n", err)
		}
		logErrln()
		exit(signalExitCode(sig))
	case <-done:
	}
}

func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return exitInterrupted
}

func resolveGameConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	applyBoolConfig(cmd, "tui", &gameTUI, fileCfg.Game.TUI)
	applyNegatedConfig(cmd, "no-intro", &gameNoIntro, fileCfg.Game.Intro)
	applyNegatedConfig(cmd, "no-color", &gameNoColor, fileCfg.Game.Color)
	applyNegatedConfig(cmd, "no-history", &gameNoHistory, fileCfg.Game.History)
	applyStringConfig(cmd, "record-file", &gameRecordFile, fileCfg.Game.RecordFile)

	recordPath := gameRecordFile
	if recordPath == "" {
		recordPath = config.DefaultRecordPath()
	}
	return model.Config{
		Intro:      !gameNoIntro,
		Color:      !gameNoColor,
		TUI:        gameTUI,
		History:    !gameNoHistory,
		RecordPath: recordPath,
		DBPath:     config.DefaultDBPath(),
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show round history stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDifficulty, "difficulty", "", "difficulty filter (easy, normal, hard)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window for the trend")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "window", &statsWindow, fileCfg.Stats.Window)
	applyBoolConfig(cmd, "plain", &statsPlain, fileCfg.Stats.Plain)

	cfg, err := buildStatsConfig(statsDifficulty, statsSince, statsLast, statsWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := stats.Render(cmd.OutOrStdout(), report, cfg.TrendWindow); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig(difficulty, since string, last, window int) (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: last, TrendWindow: window}
	if difficulty != "" {
		p, ok := model.PresetByDifficulty(model.Difficulty(strings.ToLower(difficulty)))
		if !ok {
			return cfg, fmt.Errorf("invalid --difficulty %q (use easy, normal or hard)", difficulty)
		}
		cfg.Difficulty = p.Difficulty
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return cfg, fmt.Errorf("--window must be >= 1")
	}
	return cfg, nil
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Show or reset the best-time record",
		Args:  cobra.NoArgs,
		RunE:  runRecordCmd,
	}
	cmd.Flags().BoolVar(&recordReset, "reset", false, "delete the stored record")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveGameConfig(cmd, fileCfg)
	records := record.New(cfg.RecordPath)
	out := cmd.OutOrStdout()

	if recordReset {
		if err := records.Reset(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "Record cleared (%s).\n", records.Path())
		return err
	}

	var historyBest func(model.Difficulty) (int, bool)
	if _, err := os.Stat(cfg.DBPath); err == nil {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			logErrf("failed to open history db: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			historyBest = func(d model.Difficulty) (int, bool) {
				best, ok, err := st.BestElapsed(cmd.Context(), d)
				if err != nil {
					logErrf("failed to read history best: %v\n", err)
					return 0, false
				}
				return best, ok
			}
		}
	}
	best, ok := records.Load()
	if err := writeRecordReport(out, best, ok, records.Path(), historyBest); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeRecordReport(w io.Writer, best int, ok bool, label string, historyBest func(model.Difficulty) (int, bool)) error {
	if ok {
		if _, err := fmt.Fprintf(w, "Fastest solve: %d s (stored in %s)\n", best, label); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(w, "No record yet (%s).\n", label); err != nil {
		return err
	}
	if historyBest == nil {
		return nil
	}
	for _, p := range model.Presets {
		best, ok := historyBest(p.Difficulty)
		value := "-"
		if ok {
			value = fmt.Sprintf("%d s", best)
		}
		if _, err := fmt.Fprintf(w, "  %-7s %s\n", p.Label, value); err != nil {
			return err
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyNegatedConfig maps a positive file setting onto a --no-* flag.
func applyNegatedConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = !*value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# guessnum configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# intro = true            # Play the intro animation
# color = true            # Colorize output
# tui = false             # Use the full-screen interface
# history = true          # Save rounds to %s
# record-file = %q

[stats]
# window = %d             # Moving average window for the trend
# plain = false           # Print a plain text report
`,
		config.DefaultDBPath(),
		config.DefaultRecordPath(),
		defaultTrendWindow,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
