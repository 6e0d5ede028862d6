package battle

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/throneworld/internal/entropy"
	"github.com/talgya/throneworld/internal/kingdom"
	"github.com/talgya/throneworld/internal/mechanics"
)

// HistorySize bounds the battle-history ring buffer.
const HistorySize = 50

var (
	// ErrProtected means the defender is under restoration protection.
	ErrProtected = errors.New("battle: defender is under protection")
	// ErrWarRequired means the strike policy blocks attacks until war is
	// declared.
	ErrWarRequired = errors.New("battle: war declaration required")
	// ErrInsufficientTurns means the attacker cannot pay the turn cost.
	ErrInsufficientTurns = errors.New("battle: insufficient turns")
)

// Record is one resolved battle kept in the history ring.
type Record struct {
	Tick     uint64                 `json:"tick"`
	Attacker kingdom.KingdomID      `json:"attacker"`
	Defender kingdom.KingdomID      `json:"defender"`
	Result   mechanics.CombatResult `json:"result"`
}

// History is a bounded ring buffer of the most recent battles.
type History struct {
	ring [HistorySize]Record
	next int
	n    int
}

// Append records a battle, evicting the oldest when full.
func (h *History) Append(r Record) {
	h.ring[h.next] = r
	h.next = (h.next + 1) % HistorySize
	if h.n < HistorySize {
		h.n++
	}
}

// Recent returns the stored battles, oldest first.
func (h *History) Recent() []Record {
	out := make([]Record, 0, h.n)
	start := h.next - h.n
	for i := 0; i < h.n; i++ {
		out = append(out, h.ring[(start+i+HistorySize)%HistorySize])
	}
	return out
}

// Len returns the number of stored battles.
func (h *History) Len() int { return h.n }

// Simulator resolves attacks and applies the results to kingdom state.
// Shared by the player-vs-AI and AI-vs-AI paths.
type Simulator struct {
	Ledger  *Ledger
	History *History
	RNG     entropy.Source
}

// NewSimulator wires a simulator around a ledger and random source.
func NewSimulator(ledger *Ledger, rng entropy.Source) *Simulator {
	return &Simulator{Ledger: ledger, History: &History{}, RNG: rng}
}

// Attack resolves one attack at the given tick and applies it: casualties,
// land and gold transfer, turn cost, ledger bookkeeping, history, and any
// restoration grant to the defender. The result is applied atomically — a
// rejected attack mutates nothing.
func (s *Simulator) Attack(tick uint64, attacker, defender *kingdom.Kingdom, atkFormation, defFormation kingdom.Formation) (mechanics.CombatResult, error) {
	if attacker == nil || defender == nil {
		return mechanics.CombatResult{}, mechanics.ErrInvalidInput
	}
	if defender.Protection.ActiveAt(tick) {
		return mechanics.CombatResult{}, ErrProtected
	}
	if !s.Ledger.CanAttack(attacker.ID, defender.ID) {
		return mechanics.CombatResult{}, ErrWarRequired
	}

	cost := mechanics.TurnCost(attacker.Networth(), defender.Networth())
	if attacker.Resources.Turns < cost {
		return mechanics.CombatResult{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientTurns, cost, attacker.Resources.Turns)
	}

	result, err := mechanics.ResolveCombat(attacker, defender, atkFormation, defFormation, defender.HomeTerrain, s.RNG)
	if err != nil {
		return mechanics.CombatResult{}, fmt.Errorf("resolve combat: %w", err)
	}

	preDefender := mechanics.SnapshotHoldings(defender)

	attacker.Resources.Turns -= cost
	for tier := range attacker.Units {
		attacker.Units[tier] -= result.AttackerCasualties[tier]
		defender.Units[tier] -= result.DefenderCasualties[tier]
	}

	attacker.Resources.Land += result.LandGained
	defender.Resources.Land -= result.LandGained
	attacker.Resources.Gold += result.GoldLooted
	defender.Resources.Gold -= result.GoldLooted

	// Captured acres take their structures with them, defender's loss only.
	s.razeStructures(defender, result.LandGained, preDefender)

	count, warRequired := s.Ledger.RecordAttack(attacker.ID, defender.ID)
	s.History.Append(Record{Tick: tick, Attacker: attacker.ID, Defender: defender.ID, Result: result})

	if kind, duration := mechanics.RestorationQualifies(preDefender, mechanics.SnapshotHoldings(defender)); kind != kingdom.ProtectionNone {
		defender.Protection = kingdom.Protection{
			Kind:        kind,
			GrantedTick: tick,
			ExpiresTick: tick + duration,
		}
		slog.Info("restoration protection granted",
			"kingdom", defender.Name,
			"kind", kind,
			"until_tick", defender.Protection.ExpiresTick,
		)
	}

	slog.Debug("battle resolved",
		"tick", tick,
		"attacker", attacker.Name,
		"defender", defender.Name,
		"outcome", result.Outcome.String(),
		"land", result.LandGained,
		"gold", result.GoldLooted,
		"attack_count", count,
		"war_required", warRequired,
	)

	return result, nil
}

// razeStructures removes structures in proportion to the land lost, spread
// across structure types, never below zero.
func (s *Simulator) razeStructures(defender *kingdom.Kingdom, landLost int, pre mechanics.HoldingsSnapshot) {
	if landLost <= 0 || pre.Structures == 0 {
		return
	}
	preLand := defender.Resources.Land + landLost
	if preLand <= 0 {
		return
	}
	frac := float64(landLost) / float64(preLand)
	for st := range defender.Structures {
		lost := int(float64(defender.Structures[st]) * frac)
		defender.Structures[st] -= lost
		if defender.Structures[st] < 0 {
			defender.Structures[st] = 0
		}
	}
}
