// Package battle applies combat results to kingdoms and tracks the per-pair
// war ledger. The ledger and history are owned by a simulation handle —
// never package-level — so parallel worlds cannot share state.
package battle

import (
	"sync"

	"github.com/talgya/throneworld/internal/kingdom"
	"github.com/talgya/throneworld/internal/mechanics"
)

// WarState is the per-pair relationship state.
type WarState uint8

const (
	WarNeutral  WarState = iota
	WarTracking          // 1–2 recorded attacks
	WarRequired          // 3rd attack reached; declaration needed
	WarAtWar             // Declaration confirmed
)

var warStateNames = [...]string{"neutral", "tracking", "war_required", "at_war"}

func (w WarState) String() string {
	if int(w) >= len(warStateNames) {
		return "unknown"
	}
	return warStateNames[w]
}

// WarDeclaration describes one directed war relationship.
type WarDeclaration struct {
	Attacker    kingdom.KingdomID `json:"attacker"`
	Defender    kingdom.KingdomID `json:"defender"`
	AttackCount int               `json:"attack_count"`
	Active      bool              `json:"active"`
}

type pairKey struct {
	attacker, defender kingdom.KingdomID
}

// Ledger tracks attack counts and war state per (attacker, defender) pair.
// Counts are monotonic until a war is declared or peace resets them. Safe
// for concurrent upsert.
type Ledger struct {
	// AllowStrikesPendingWar controls whether an attacker may keep
	// attacking after WarRequired but before declaring. The upstream UI
	// warns without blocking, so the default is true.
	AllowStrikesPendingWar bool

	mu     sync.Mutex
	counts map[pairKey]int
	states map[pairKey]WarState
}

// NewLedger creates an empty war ledger with the default strike policy.
func NewLedger() *Ledger {
	return &Ledger{
		AllowStrikesPendingWar: true,
		counts:                 make(map[pairKey]int),
		states:                 make(map[pairKey]WarState),
	}
}

// AttackCount returns the recorded attacks from attacker against defender.
func (l *Ledger) AttackCount(attacker, defender kingdom.KingdomID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[pairKey{attacker, defender}]
}

// State returns the pair's war state.
func (l *Ledger) State(attacker, defender kingdom.KingdomID) WarState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[pairKey{attacker, defender}]
}

// CanAttack reports whether the pair's state and the strike policy permit
// another attack right now.
func (l *Ledger) CanAttack(attacker, defender kingdom.KingdomID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.states[pairKey{attacker, defender}] == WarRequired {
		return l.AllowStrikesPendingWar
	}
	return true
}

// RecordAttack increments the pair's count and advances the state machine:
// NEUTRAL → TRACKING(1) → TRACKING(2) → WAR_REQUIRED on the 3rd attack.
// Once at WAR_REQUIRED the state holds until DeclareWar or MakePeace; it is
// never skipped. Returns the new count and whether a declaration is due.
func (l *Ledger) RecordAttack(attacker, defender kingdom.KingdomID) (count int, warRequired bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairKey{attacker, defender}
	l.counts[key]++
	count = l.counts[key]

	switch l.states[key] {
	case WarAtWar:
		// Wars absorb further attacks without state changes.
	default:
		if mechanics.RequiresWarDeclaration(count) {
			l.states[key] = WarRequired
		} else {
			l.states[key] = WarTracking
		}
	}

	return count, l.states[key] == WarRequired
}

// DeclareWar confirms a pending declaration. Only legal from WAR_REQUIRED —
// the state machine cannot jump straight to AT_WAR.
func (l *Ledger) DeclareWar(attacker, defender kingdom.KingdomID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairKey{attacker, defender}
	if l.states[key] != WarRequired {
		return false
	}
	l.states[key] = WarAtWar
	return true
}

// MakePeace resets the pair to neutral and zeroes its attack count.
func (l *Ledger) MakePeace(attacker, defender kingdom.KingdomID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairKey{attacker, defender}
	delete(l.counts, key)
	delete(l.states, key)
}

// Wars returns every pair currently at war.
func (l *Ledger) Wars() []WarDeclaration {
	l.mu.Lock()
	defer l.mu.Unlock()

	var wars []WarDeclaration
	for key, state := range l.states {
		if state == WarAtWar {
			wars = append(wars, WarDeclaration{
				Attacker:    key.attacker,
				Defender:    key.defender,
				AttackCount: l.counts[key],
				Active:      true,
			})
		}
	}
	return wars
}
