// blocks is a falling-block puzzle for the terminal.
//
// Usage:
//
//	blocks list              - List available boards
//	blocks play <id>         - Play a board
//	blocks menu              - Start menu to pick boards interactively
//	blocks serve             - Start SSH server for remote play
//	blocks stats <id>        - Show best sessions for a board
//	blocks sim [id]          - Run a headless simulation
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.blocks/blocks.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle in your terminal",
	Long: `Blocks is a terminal falling-block puzzle: steer pieces into the well,
complete rows to clear them, and keep the stack below the top.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  serve    - Start SSH server for remote play
  stats    - View recorded sessions
  sim      - Run a headless simulation

Examples:
  blocks list
  blocks play blocks
  blocks play blocks_wide --difficulty hard
  blocks menu
  blocks serve --ssh :2222
  blocks sim --seed 7 --ticks 5000`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/blocks.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the command logger. Without --log-file it writes to
// fallback; TUI commands pass io.Discard because Bubble Tea owns the terminal.
// The returned func closes the log file, if any.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log: cannot create directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log: cannot open %s: %w", flagLogFile, err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "blocks",
	})
	return logger, closeFn, nil
}

// playerName identifies the local player in saved sessions.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
