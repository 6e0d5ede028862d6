// Package api provides the read-only HTTP API for observing world state.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/talgya/throneworld/internal/engine"
	"github.com/talgya/throneworld/internal/kingdom"
)

// Server serves the world state over HTTP. All endpoints are GET-only
// observation; mutation happens inside the simulation loop.
type Server struct {
	Sim  *engine.Simulation
	Eng  *engine.Engine
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/kingdoms", s.handleKingdoms)
	mux.HandleFunc("/api/v1/kingdom/", s.handleKingdomDetail)
	mux.HandleFunc("/api/v1/battles", s.handleBattles)
	mux.HandleFunc("/api/v1/wars", s.handleWars)
	mux.HandleFunc("/api/v1/decisions", s.handleDecisions)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"tick":     s.Sim.CurrentTick(),
		"sim_time": engine.SimTime(s.Sim.CurrentTick()),
		"seed":     s.Sim.Seed,
		"stats":    s.Sim.Stats,
	})
}

type kingdomSummary struct {
	ID       kingdom.KingdomID `json:"id"`
	Name     string            `json:"name"`
	Race     string            `json:"race"`
	Networth float64           `json:"networth"`
	Land     int               `json:"land"`
	Gold     uint64            `json:"gold"`
	Terrain  string            `json:"terrain"`
	Protected bool             `json:"protected"`
}

func (s *Server) handleKingdoms(w http.ResponseWriter, r *http.Request) {
	tick := s.Sim.CurrentTick()
	out := make([]kingdomSummary, 0, len(s.Sim.Kingdoms))
	for _, k := range s.Sim.Kingdoms {
		out = append(out, kingdomSummary{
			ID:        k.ID,
			Name:      k.Name,
			Race:      k.Race.String(),
			Networth:  k.Networth(),
			Land:      k.Resources.Land,
			Gold:      k.Resources.Gold,
			Terrain:   k.HomeTerrain.String(),
			Protected: k.Protection.ActiveAt(tick),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Networth > out[j].Networth })
	writeJSON(w, out)
}

func (s *Server) handleKingdomDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/kingdom/")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid kingdom id", http.StatusBadRequest)
		return
	}

	k, ok := s.Sim.Index[kingdom.KingdomID(id)]
	if !ok {
		http.Error(w, "kingdom not found", http.StatusNotFound)
		return
	}

	pers := s.Sim.Personalities.Get(k.ID, k.Race)
	writeJSON(w, map[string]any{
		"kingdom":     k,
		"personality": pers,
		"modifiers":   pers.Modifiers(),
		"tags":        pers.Tags(),
	})
}

func (s *Server) handleBattles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Battles.History.Recent())
}

func (s *Server) handleWars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Ledger.Wars())
}

func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.LastDecisions)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Events)
}
