package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [id]",
	Short: "Show recorded sessions",
	Long: `Display the best sessions for the specified board, ordered by lines
cleared and then by pieces locked. Without an id, show totals for every board.

Examples:
  blocks stats
  blocks stats blocks
  blocks stats blocks_wide --limit 25
  blocks stats blocks --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete all recorded sessions for the board")
}

func runStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printOverview(out, store)
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if flagStatsClear {
		if err := store.ClearSessions(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared sessions for %s\n", game.Title())
		return nil
	}

	sessions, err := store.TopSessions(gameID, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Sessions - %s\n\n", game.Title())

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintf(out, "\nRun 'blocks play %s' to record the first one!\n", gameID)
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Rank", "Player", "Lines", "Pieces", "Date")
	for _, row := range tui.SessionRows(sessions) {
		t.Row(row...)
	}
	fmt.Fprintln(out, t.Render())

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d sessions, best %d lines, average %.1f, %d pieces total\n",
		stats.Sessions, stats.BestLines, stats.AvgLines, stats.TotalPieces)
	return nil
}

// printOverview prints one totals row per registered board.
func printOverview(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Board", "Sessions", "Best", "Avg", "Pieces", "Last played")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			t.Row(g.Title, "0", "-", "-", "-", "-")
			continue
		}
		t.Row(g.Title,
			fmt.Sprintf("%d", st.Sessions),
			fmt.Sprintf("%d", st.BestLines),
			fmt.Sprintf("%.1f", st.AvgLines),
			fmt.Sprintf("%d", st.TotalPieces),
			st.LastPlayed.Local().Format("Jan 02 15:04"),
		)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
