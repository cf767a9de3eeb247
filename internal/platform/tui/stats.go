package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

const (
	statsSessionLimit  = 100
	statsPanelWidth    = 24
	statsMinSplitWidth = 76 // below this the totals panel goes under the table
)

// statsExit records how the statistics board was closed.
type statsExit int

const (
	statsOpen statsExit = iota
	statsBack
	statsQuit
)

// StatsKeyMap defines the key bindings for the statistics board.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Quit}
}

func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultStatsKeyMap returns the statistics board bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// StatsModel shows recorded sessions and totals, one board at a time.
type StatsModel struct {
	boards   []registry.GameInfo
	current  int
	store    *storage.Store
	sessions []storage.SessionRecord
	totals   *storage.GameStats
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	exit     statsExit
}

// NewStatsModel creates a statistics board opened on the first registered board.
// A nil store shows empty boards.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	m := StatsModel{
		boards: registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m StatsModel) split() bool {
	return m.width >= statsMinSplitWidth
}

func (m StatsModel) newTable() table.Model {
	playerWidth := 10
	if m.split() {
		playerWidth += min(12, max(0, m.width-statsMinSplitWidth))
	}
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: playerWidth},
		{Title: "Lines", Width: 6},
		{Title: "Pieces", Width: 7},
		{Title: "Date", Width: 13},
	}

	rows := m.height - 9 // title, tabs, borders, help
	if !m.split() {
		rows -= 8 // totals panel below
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, rows)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

// load reads sessions and totals for the current board. Read errors leave it empty.
func (m *StatsModel) load() {
	m.sessions, m.totals = nil, nil
	if m.store != nil && len(m.boards) > 0 {
		id := m.boards[m.current].ID
		if sessions, err := m.store.TopSessions(id, statsSessionLimit); err == nil {
			m.sessions = sessions
		}
		if totals, err := m.store.GetGameStats(id); err == nil {
			m.totals = totals
		}
	}
	m.table.SetRows(SessionRows(m.sessions))
	m.table.GotoTop()
}

// SessionRows formats sessions as table rows, ranked in the given order.
func SessionRows(sessions []storage.SessionRecord) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", s.Lines),
			fmt.Sprintf("%d", s.Pieces),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m StatsModel) Init() tea.Cmd {
	return nil
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.exit = statsQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.exit = statsBack
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves to the next (dir=1) or previous (dir=-1) board, wrapping around.
func (m *StatsModel) cycle(dir int) {
	if n := len(m.boards); n > 0 {
		m.current = (m.current + dir + n) % n
		m.load()
	}
}

var (
	statsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statsTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	statsActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	statsBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statsDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m StatsModel) View() string {
	if m.exit != statsOpen {
		return ""
	}

	title := "SESSIONS"
	if len(m.boards) > 0 {
		title += " - " + m.boards[m.current].Title
	}

	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		if i == m.current {
			tabs[i] = statsActiveTab.Render(b.Title)
		} else {
			tabs[i] = statsTabStyle.Render(b.Title)
		}
	}

	list := statsBoxStyle.Render(m.tableView())
	panel := statsBoxStyle.Width(statsPanelWidth).Render(m.totalsView())

	var body string
	if m.split() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", panel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, list, panel)
	}

	var b strings.Builder
	b.WriteString(centerText(statsTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(statsDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m StatsModel) tableView() string {
	if len(m.sessions) == 0 {
		return statsDimStyle.Italic(true).Padding(1, 2).
			Render("No sessions recorded yet.\nFinish a game to appear here!")
	}
	return m.table.View()
}

// totalsView renders the aggregate panel for the current board.
func (m StatsModel) totalsView() string {
	if m.totals == nil || m.totals.Sessions == 0 {
		return "Totals\n\n" + statsDimStyle.Render("no sessions yet")
	}
	t := m.totals
	last := "-"
	if !t.LastPlayed.IsZero() {
		last = t.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return fmt.Sprintf("Totals\n\nSessions  %d\nBest      %d\nAverage   %.1f\nLines     %d\nPieces    %d\nLast      %s",
		t.Sessions, t.BestLines, t.AvgLines, t.TotalLines, t.TotalPieces, last)
}

// IsGoingBack reports whether the board was closed with Back.
func (m StatsModel) IsGoingBack() bool {
	return m.exit == statsBack
}

// IsQuitting reports whether the board was closed with Quit.
func (m StatsModel) IsQuitting() bool {
	return m.exit == statsQuit
}

// RunStats runs the statistics board as its own program.
// It returns true when the user wants to go back to the menu.
func RunStats(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewStatsModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(StatsModel)
	return ok && m.IsGoingBack(), nil
}
