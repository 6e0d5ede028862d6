// Command throneworld runs the persistent kingdom-warfare simulation.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/talgya/throneworld/internal/api"
	"github.com/talgya/throneworld/internal/config"
	"github.com/talgya/throneworld/internal/engine"
	"github.com/talgya/throneworld/internal/entropy"
	"github.com/talgya/throneworld/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Throneworld — Kingdom Warfare Simulation")

	seed := cfg.Seed
	if seed == 0 {
		seed, err = entropy.NewSeed()
		if err != nil {
			slog.Error("failed to generate seed", "error", err)
			os.Exit(1)
		}
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Load or Generate World State ─────────────────────────────────
	var sim *engine.Simulation
	var startTick uint64

	if db.HasWorldState() {
		slog.Info("found saved world state, loading...")

		kingdoms, err := db.LoadKingdoms()
		if err != nil {
			slog.Error("failed to load kingdoms", "error", err)
			os.Exit(1)
		}

		if seedStr, err := db.GetMeta("seed"); err == nil {
			if s, err := strconv.ParseInt(seedStr, 10, 64); err == nil {
				seed = s
			}
		}
		if tickStr, err := db.GetMeta("last_tick"); err == nil {
			if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
				startTick = t
			}
		}

		sim = engine.NewSimulation(seed, kingdoms)
		sim.LastTick = startTick

		slog.Info("world state restored",
			"kingdoms", len(kingdoms),
			"tick", startTick,
			"sim_time", engine.SimTime(startTick),
		)
	} else {
		slog.Info("no saved state found, generating new world...", "seed", seed, "kingdoms", cfg.Kingdoms)
		sim = engine.NewSimulation(seed, engine.GenerateKingdoms(seed, cfg.Kingdoms))

		for _, k := range sim.Kingdoms {
			pers := sim.Personalities.Get(k.ID, k.Race)
			slog.Info("kingdom founded",
				"name", k.Name,
				"race", k.Race.String(),
				"terrain", k.HomeTerrain.String(),
				"persona", pers.Persona.String(),
				"playstyle", pers.Playstyle.String(),
			)
		}

		if err := db.SaveWorldState(sim); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Tick = startTick
	eng.OnTick = sim.TickTurn
	eng.OnDay = func(tick uint64) {
		slog.Info("daily report",
			"tick", tick,
			"sim_time", engine.SimTime(tick),
			"kingdoms", sim.Stats.Kingdoms,
			"total_networth", sim.Stats.TotalNetworth,
			"battles", sim.Stats.Battles,
			"active_wars", sim.Stats.ActiveWars,
		)
		if err := db.SaveWorldState(sim); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{Sim: sim, Eng: eng, Port: cfg.APIPort}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	slog.Info("simulation starting",
		"kingdoms", len(sim.Kingdoms),
		"seed", seed,
		"api", cfg.APIPort,
	)

	eng.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveWorldState(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}
}
