package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Play a board",
	Long: `Start playing the specified board.

Controls:
  Left/h/a, Right/l/d  - Move
  Up/k/w/x             - Rotate clockwise
  Down/j/s             - Soft drop
  Space                - Hard drop
  P/Esc                - Pause
  R                    - Restart (after game over)
  B                    - Leave (when paused or after game over)
  Q/Ctrl+C             - Quit
  Ctrl+S               - Save a screenshot to ~/.blocks/screenshots

Difficulty options (constant gravity interval):
  easy   - 1000ms
  normal - 700ms
  hard   - 400ms
  fixed  - Use timing.gravity_ms from the config file

Examples:
  blocks play blocks
  blocks play blocks_wide --difficulty hard
  blocks play blocks --config ./my-blocks.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// applyGameFlags validates --config and --difficulty and hands them to the game package.
func applyGameFlags() error {
	if _, err := config.LoadBlocks(flagConfig); err != nil {
		return err
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	blocks.SetConfigPath(flagConfig)
	blocks.SetDifficultyPreset(flagDifficulty)
	return nil
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the sessions database; failures are logged and play continues.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q (run 'blocks list' to see available boards)", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.GameOptions{Store: store, Logger: logger, Player: playerName()}
	if err := tui.Run(game, terminalConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
