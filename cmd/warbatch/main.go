// Command warbatch runs batches of seeded games for balance analysis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/throneworld/internal/engine"
	"github.com/talgya/throneworld/internal/entropy"
)

var (
	games    int
	kingdoms int
	ticks    int
	seed     int64
	quiet    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "warbatch",
		Short: "Throneworld batch battle simulator",
		Long: `Runs many seeded kingdom-warfare games back to back and reports
win rates per race, battle counts, and war counts for balance review.`,
		RunE: runBatch,
	}

	rootCmd.Flags().IntVarP(&games, "games", "g", 20, "Number of games to simulate")
	rootCmd.Flags().IntVarP(&kingdoms, "kingdoms", "k", 12, "Kingdoms per game")
	rootCmd.Flags().IntVarP(&ticks, "ticks", "t", 200, "Ticks per game")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Base seed (0 = random)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	runID := uuid.NewString()

	if seed == 0 {
		var err error
		seed, err = entropy.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
	}

	if !quiet {
		titleColor.Println("\n╭──────────────────────────────╮")
		titleColor.Println("│  Throneworld Batch Simulator │")
		titleColor.Println("╰──────────────────────────────╯")
		fmt.Println()
		infoColor.Printf("run %s: %d games × %d kingdoms × %d ticks (seed %d)\n\n",
			runID, games, kingdoms, ticks, seed)
	}

	// Ctrl+C stops between games; completed results are still reported.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results := engine.RunBatch(ctx, engine.BatchConfig{
		Games:    games,
		Kingdoms: kingdoms,
		Ticks:    ticks,
		Seed:     seed,
	})

	failed := 0
	totalBattles, totalWars := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		totalBattles += r.Battles
		totalWars += r.Wars
	}

	// Per-game results table.
	if !quiet {
		table := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{"Game", "Seed", "Winner", "Race", "Networth", "Battles", "Wars"}),
		)
		for _, r := range results {
			if r.Err != nil {
				_ = table.Append([]string{
					fmt.Sprintf("%d", r.Game), fmt.Sprintf("%d", r.Seed),
					"FAILED", "-", "-", "-", "-",
				})
				continue
			}
			_ = table.Append([]string{
				fmt.Sprintf("%d", r.Game),
				fmt.Sprintf("%d", r.Seed),
				r.Winner,
				r.WinnerRace,
				humanize.Commaf(r.Networth),
				fmt.Sprintf("%d", r.Battles),
				fmt.Sprintf("%d", r.Wars),
			})
		}
		_ = table.Render()
		fmt.Println()
	}

	// Race win summary.
	wins := engine.RaceWinCounts(results)
	races := make([]string, 0, len(wins))
	for race := range wins {
		races = append(races, race)
	}
	sort.Slice(races, func(i, j int) bool {
		if wins[races[i]] != wins[races[j]] {
			return wins[races[i]] > wins[races[j]]
		}
		return races[i] < races[j]
	})

	summary := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Race", "Wins", "Win %"}),
	)
	completed := len(results) - failed
	for _, race := range races {
		pct := 0.0
		if completed > 0 {
			pct = float64(wins[race]) / float64(completed) * 100
		}
		_ = summary.Append([]string{race, fmt.Sprintf("%d", wins[race]), fmt.Sprintf("%.1f%%", pct)})
	}
	_ = summary.Render()

	fmt.Println()
	color.Green("completed %d/%d games — %s battles, %s wars",
		completed, len(results),
		humanize.Comma(int64(totalBattles)), humanize.Comma(int64(totalWars)))
	if failed > 0 {
		color.Red("%d games failed (see log)", failed)
	}

	return nil
}
