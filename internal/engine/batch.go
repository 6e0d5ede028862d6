// Batch simulation — many seeded games run back to back for balance
// analysis. One game's failure is recorded and skipped, never fatal to the
// batch; cancellation is checked between games (battles are atomic,
// sub-millisecond units and never interrupted mid-resolution).
package engine

import (
	"context"
	"fmt"
	"log/slog"
)

// BatchConfig parameterizes a batch run.
type BatchConfig struct {
	Games    int   // Number of games to simulate
	Kingdoms int   // Kingdoms per game
	Ticks    int   // Ticks per game
	Seed     int64 // Base seed; game i runs on Seed+i
}

// GameResult summarizes one finished (or failed) game.
type GameResult struct {
	Game       int     `json:"game"`
	Seed       int64   `json:"seed"`
	Winner     string  `json:"winner"`
	WinnerRace string  `json:"winner_race"`
	Networth   float64 `json:"networth"`
	Battles    int     `json:"battles"`
	Wars       int     `json:"wars"`
	Err        error   `json:"-"`
}

// RunBatch simulates cfg.Games sequential games. Returns the results
// collected so far when the context is canceled; the partial slice is
// always valid.
func RunBatch(ctx context.Context, cfg BatchConfig) []GameResult {
	results := make([]GameResult, 0, cfg.Games)

	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			slog.Info("batch canceled", "completed", len(results), "of", cfg.Games)
			return results
		}

		seed := cfg.Seed + int64(i)
		result := runGame(i, seed, cfg)
		if result.Err != nil {
			slog.Error("game failed, skipping", "game", i, "seed", seed, "error", result.Err)
		}
		results = append(results, result)
	}

	return results
}

// runGame simulates one full game. A panic inside the simulation is
// captured into the result rather than taking down the batch.
func runGame(index int, seed int64, cfg BatchConfig) (result GameResult) {
	result = GameResult{Game: index, Seed: seed}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("game %d panicked: %v", index, r)
		}
	}()

	sim := NewSimulation(seed, GenerateKingdoms(seed, cfg.Kingdoms))

	for tick := uint64(1); tick <= uint64(cfg.Ticks); tick++ {
		sim.TickTurn(tick)
	}

	winner := sim.Leader()
	if winner == nil {
		result.Err = fmt.Errorf("game %d produced no kingdoms", index)
		return result
	}

	result.Winner = winner.Name
	result.WinnerRace = winner.Race.String()
	result.Networth = winner.Networth()
	result.Battles = sim.Battles.History.Len()
	result.Wars = len(sim.Ledger.Wars())
	return result
}

// RaceWinCounts tallies winners by race across a batch, for balance review.
func RaceWinCounts(results []GameResult) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Err == nil && r.WinnerRace != "" {
			counts[r.WinnerRace]++
		}
	}
	return counts
}
