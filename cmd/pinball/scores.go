package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best final scores.

Examples:
  pinball scores
  pinball scores --limit 25
  pinball scores -i          # browse scores and runs interactively`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		showBoard(tui.BoardScores)
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show run history",
	Long: `Display the most recent runs: how far each got, its final score
and the seed to replay it with.

Examples:
  pinball runs
  pinball runs --best
  pinball runs -i`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		showBoard(tui.BoardRuns)
	},
}

var flagBest bool

func init() {
	for _, c := range []*cobra.Command{scoresCmd, runsCmd} {
		c.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
		c.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse in a full-screen table")
	}
	runsCmd.Flags().BoolVar(&flagBest, "best", false, "Order by rounds reached instead of date")
}

func showBoard(board tui.Board) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, pinball.GameID, "Pinball", board, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if board == tui.BoardRuns {
		err = printRuns(store)
	} else {
		err = printScores(store)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store) error {
	scores, err := store.TopScores(pinball.GameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Pinball")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pinball play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Round", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Round, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(pinball.GameID); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}

func printRuns(store *storage.Store) error {
	var (
		runs []storage.RunEntry
		err  error
	)
	if flagBest {
		runs, err = store.BestRuns(pinball.GameID, flagLimit)
	} else {
		runs, err = store.RecentRuns(pinball.GameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println("Run History - Pinball")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-6s  %-7s  %-20s  %s\n", "Round", "Score", "Money", "Outcome", "Seed", "Ended")
	fmt.Printf("  %-5s  %-8s  %-6s  %-7s  %-20s  %s\n", "-----", "-----", "-----", "-------", "----", "-----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-8d  %-6d  %-7s  %-20d  %s\n",
			r.Rounds, r.Score, r.Money, r.Outcome, r.Seed, r.EndedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(pinball.GameID)
	if err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("%d runs, best round %d, average round %.1f\n", stats.RunsCount, stats.BestRound, stats.AvgRounds)
	}
	return nil
}
