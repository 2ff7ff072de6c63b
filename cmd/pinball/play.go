package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/save"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play pinball",
	Long: `Start playing. A saved run is continued from the last round start
or shop visit; otherwise a new run begins.

Controls:
  A/Left, D/Right  - Flippers
  Space            - Hold to charge the plunger, release to launch
  W/S, Up/Down     - Select a card
  U                - Use the selected card
  N/Enter          - End the round once the score is reached
  P                - Pause (Esc while paused abandons the round)

Shop:
  Left/Right       - Offers / inventory
  Enter            - Buy or use
  X                - Sell
  E                - Reroll
  N                - Next round

  R                - New run (after game over)
  ?                - Full help
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit (the run is saved)

Examples:
  pinball play
  pinball play --seed 42
  pinball play --config ./my-table.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// configureGame points the registered game at the CLI options.
func configureGame(logger *log.Logger, persistent bool) {
	opts := pinball.Options{
		ConfigPath: flagConfig,
		Logger:     logger,
		Balls:      flagBalls,
	}
	if persistent {
		store, err := save.Open(pinball.GameID, logger)
		if err != nil {
			logger.Warn("cannot open save slot, the run will not be kept", "error", err)
		} else {
			opts.Store = store
		}
	}
	pinball.Configure(opts)
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger("pinball.log")
	defer closeLog()
	configureGame(logger, true)

	game, err := registry.Create(pinball.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
