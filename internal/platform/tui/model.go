package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kitchen-defense/internal/coop"
	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
	"github.com/vovakirdan/kitchen-defense/internal/sim"
	"github.com/vovakirdan/kitchen-defense/internal/storage"
)

// Options configure a game model.
type Options struct {
	Store      *storage.Store
	Logger     *log.Logger
	Difficulty string
	Mode       coop.Mode
	// Standalone quits the program on back instead of returning to a menu.
	Standalone bool
}

// summarizer is implemented by games that can report a finished run.
type summarizer interface {
	Summary() (sim.Summary, bool)
}

// resizer is implemented by games that can relayout without restarting.
type resizer interface {
	Resize(w, h int)
}

// matcher is implemented by games with per-seat controllers.
type matcher interface {
	Match() *coop.Match
}

type matchSetter interface {
	SetMatch(*coop.Match)
}

// newMatch builds the match for a session, optionally with a CPU player 2.
func newMatch(mode coop.Mode, levelID string, session coop.SessionID, partner bool) *coop.Match {
	match := coop.NewMatch(mode, levelID, session)
	if partner {
		match.SetController(coop.Player2, coop.CPU)
	}
	return match
}

// Model is the Bubble Tea model for one level being played.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	saved      bool
	notice     string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenRows(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewMultiInputFrame(),
	}
}

// screenRows leaves room for the help bar.
func screenRows(h int) int {
	return max(h-1, 1)
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = screenRows(cfg.ScreenH)
	return cfg
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Route(msg, &m.inputFrame) {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit

	case CommandBack:
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case CommandPartner:
		if g, ok := m.game.(matcher); ok {
			c := g.Match().Toggle(coop.Player2)
			m.notice = fmt.Sprintf("P2 is now %s", c)
		}

	case CommandHelp:
		m.help.ShowAll = !m.help.ShowAll

	case CommandScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.notice = "screenshot failed"
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else {
			m.notice = "saved " + filepath.Base(path)
		}
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenRows(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, screenRows(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	// a restart clears the finished state
	if m.gameState.GameOver && !result.State.GameOver {
		m.saved = false
		m.notice = ""
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished run once.
func (m *Model) saveResult() {
	g, ok := m.game.(summarizer)
	if !ok {
		return
	}
	sum, ok := g.Summary()
	if !ok {
		return
	}
	res := ResultFrom(sum, m.opts.Difficulty, m.opts.Mode)
	m.opts.Logger.Info("level finished",
		"level", sum.Level, "outcome", sum.Outcome, "score", sum.Score, "ticks", sum.Ticks)

	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveResult(res); err != nil {
		m.opts.Logger.Warn("could not save result", "err", err)
		return
	}
	m.notice = "result saved"
}

// ResultFrom converts a run summary into a stored result.
func ResultFrom(sum sim.Summary, difficulty string, mode coop.Mode) storage.Result {
	return storage.Result{
		LevelID:    sum.Level,
		Outcome:    sum.Outcome.String(),
		Score:      sum.Score,
		Waves:      sum.Waves,
		Sated:      sum.Stats.Sated,
		Killed:     sum.Stats.Killed,
		Breaches:   sum.Stats.Breaches,
		Ticks:      int(sum.Ticks),
		Difficulty: difficulty,
		Mode:       mode.String(),
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".kitchen", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = m.notice + "  " + footer
	}
	return withFooter(RenderScreen(m.screen), footer)
}

// IsQuitting returns true if the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	opts.Standalone = true
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
