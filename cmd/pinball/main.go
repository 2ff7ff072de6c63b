// pinball is a pinball roguelike for the terminal: clear rounds on a
// physics table, spend the winnings in the shop, bend the rules with cards.
//
// Usage:
//
//	pinball play             - Play (continues the saved run if there is one)
//	pinball serve            - Start SSH server for remote play
//	pinball scores           - Show high scores
//	pinball runs             - Show run history
//	pinball sim              - Run a round headlessly and print its hash
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible runs
//	--db <path>       - Set database path (default: ~/.pinball/scores.db)
//	--config <path>   - Custom table/catalog YAML
//	--balls <n>       - Override the starting ball count
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-pinball/internal/games/pinball"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagBalls  int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pinball",
	Short: "Pinball roguelike in your terminal",
	Long: `Pinball is a roguelike played on a physics pinball table.

Reach the score requirement of each round with the balls you have, collect
the payout, then spend it in the shop on cards, new balls and table objects.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  scores   - View high scores
  runs     - View run history
  sim      - Headless simulation for determinism checks

Examples:
  pinball play
  pinball play --seed 42 --balls 5
  pinball serve --ssh :2222
  pinball sim --seed 42 --seconds 30`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pinball/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pinball config YAML")
	rootCmd.PersistentFlags().IntVar(&flagBalls, "balls", 0, "Starting ball count (0 = from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(simCmd)
}
