package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

func updateStats(t *testing.T, m StatsModel, msg tea.Msg) StatsModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(StatsModel)
	if !ok {
		t.Fatalf("Update returned %T, want StatsModel", next)
	}
	return sm
}

func TestSessionRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.Local)
	rows := SessionRows([]storage.SessionRecord{
		{Player: "ann", Lines: 12, Pieces: 40, CreatedAt: at},
		{Lines: 3, Pieces: 9, CreatedAt: at},
	})

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	want := []string{"#1", "ann", "12", "40", "Mar 04 10:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][1] != "-" {
		t.Errorf("empty player = %q, want \"-\"", rows[1][1])
	}
}

func TestStatsModelCyclesBoards(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveSession(storage.SessionRecord{GameID: blocks.IDWide, Player: "ann", Lines: 7, Pieces: 30}); err != nil {
		t.Fatal(err)
	}

	m := NewStatsModel(store, 100, 30)
	if len(m.sessions) != 0 {
		t.Errorf("classic board sessions = %d, want 0", len(m.sessions))
	}
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Error("empty board should show the empty notice")
	}

	m = updateStats(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.boards[m.current].ID; got != blocks.IDWide {
		t.Fatalf("board after tab = %q, want %q", got, blocks.IDWide)
	}
	if len(m.sessions) != 1 || m.totals == nil || m.totals.BestLines != 7 {
		t.Errorf("wide board not loaded: sessions=%d totals=%+v", len(m.sessions), m.totals)
	}
	if !strings.Contains(m.View(), "Best      7") {
		t.Error("totals panel missing best lines")
	}

	m = updateStats(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.boards[m.current].ID; got != blocks.IDClassic {
		t.Errorf("board after shift+tab = %q, want %q", got, blocks.IDClassic)
	}
}

func TestStatsModelExit(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		back     bool
		quitting bool
	}{
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"b goes back", runeKey('b'), true, false},
		{"q quits", runeKey('q'), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := updateStats(t, NewStatsModel(nil, 60, 24), tt.msg)
			if m.IsGoingBack() != tt.back || m.IsQuitting() != tt.quitting {
				t.Errorf("back=%v quitting=%v, want %v %v", m.IsGoingBack(), m.IsQuitting(), tt.back, tt.quitting)
			}
			if m.View() != "" {
				t.Error("closed board should render nothing")
			}
		})
	}
}
