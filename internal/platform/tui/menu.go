package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kitchen-defense/internal/core"
	"github.com/vovakirdan/kitchen-defense/internal/level"
	"github.com/vovakirdan/kitchen-defense/internal/registry"
	"github.com/vovakirdan/kitchen-defense/internal/storage"
)

// MenuItem is a selectable level in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Waves       int
	Lives       int
	Best        int
	Won         int
	Lost        int
}

// leveled is implemented by games backed by a level file.
type leveled interface {
	Level() *level.Level
}

var menuTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 2)

var menuInfoStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var (
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	partner        bool
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, partner bool) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if inst, err := registry.Create(g.ID); err == nil {
			if lv, ok := inst.(leveled); ok {
				l := lv.Level()
				item.Description = l.Description
				item.Waves = len(l.Waves)
				item.Lives = l.PortalLives
			}
		}
		if store != nil {
			item.Best, _ = store.BestScore(g.ID)
			item.Won, item.Lost, _ = store.Record(g.ID)
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:   items,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		config:  cfg,
		keys:    DefaultMenuKeyMap(),
		help:    h,
		partner: partner,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Partner):
		m.partner = !m.partner

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("K I T C H E N   D E F E N S E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Pick a kitchen"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No levels found.", m.width))
		b.WriteString("\n")
	}

	var list strings.Builder
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	info := ""
	if len(m.items) > 0 {
		info = menuInfoStyle.Render(m.describe(m.items[m.cursor]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "    ", list.String(), "    ", info))
	b.WriteString("\n\n")

	partner := "Player 2: human"
	if m.partner {
		partner = "Player 2: CPU"
	}
	b.WriteString(centerText(partner, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) describe(item MenuItem) string {
	var b strings.Builder
	b.WriteString(menuSelectedStyle.Render(item.Title))
	b.WriteString("\n")
	if item.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(36).Render(item.Description))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d waves, %d lives\n", item.Waves, item.Lives)
	if item.Won+item.Lost > 0 {
		fmt.Fprintf(&b, "best %d  (won %d, lost %d)", item.Best, item.Won, item.Lost)
	} else {
		b.WriteString(menuDimStyle.Render("not played yet"))
	}
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Partner reports whether player 2 should be the CPU.
func (m MenuModel) Partner() bool {
	return m.partner
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Partner         bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes what the user chose.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config(), Partner: m.partner}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, partner bool) (MenuResult, error) {
	model := NewMenuModel(store, cfg, partner)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
