package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// MenuItem is one board in the picker, with its recorded history.
type MenuItem struct {
	GameID    string
	Title     string
	BestLines int
	Sessions  int
}

// MenuModel is the Bubble Tea model for the board picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
	openStats bool // Tab opens the statistics board
}

// NewMenuModel lists every registered board. History comes from store when
// it is available; read errors leave the counters at zero.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))

	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if store == nil {
			continue
		}
		if stats, err := store.GetGameStats(g.ID); err == nil {
			items[i].BestLines = stats.BestLines
			items[i].Sessions = stats.Sessions
		}
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit // Exit menu to show statistics
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).Padding(1, 2)
)

// logoColors is the default piece palette in I, J, L, O, S, T, Z order.
var logoColors = []core.Color{
	core.ColorCyan, core.ColorBlue, core.ColorOrange, core.ColorYellow,
	core.ColorGreen, core.ColorMagenta, core.ColorRed,
}

// logoStrip renders one block per piece color.
func logoStrip() string {
	var b strings.Builder
	for _, c := range logoColors {
		b.WriteString(colorStyles[c].Render("██"))
	}
	return b.String()
}

func (m MenuModel) itemLine(i int) string {
	item := m.items[i]
	history := "no sessions yet"
	if item.Sessions > 0 {
		history = fmt.Sprintf("best %d lines, %d played", item.BestLines, item.Sessions)
	}
	line := fmt.Sprintf("  %-14s %s", item.Title, history)
	if i == m.cursor {
		return menuSelectedStyle.Render("> " + line[2:])
	}
	return line
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := make([]string, len(m.items))
	for i := range m.items {
		lines[i] = m.itemLine(i)
	}
	if len(lines) == 0 {
		lines = []string{menuHintStyle.Render("no boards registered")}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(logoStrip(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B L O C K S"), m.width))
	b.WriteString("\n\n")
	for _, row := range strings.Split(menuBoxStyle.Render(strings.Join(lines, "\n")), "\n") {
		b.WriteString(centerText(row, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("↑/↓ choose · enter play · tab stats · q quit"), m.width))
	b.WriteString("\n")
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

// WantsStats returns true if user requested the statistics board.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID     string
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

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

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsStats():
		result.WantsStats = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}

	return result, nil
}
