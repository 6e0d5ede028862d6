package battle

import (
	"errors"
	"testing"

	"github.com/talgya/throneworld/internal/entropy"
	"github.com/talgya/throneworld/internal/kingdom"
	"github.com/talgya/throneworld/internal/mechanics"
)

func warKingdom(id kingdom.KingdomID, footmen, land, turns int, gold uint64) *kingdom.Kingdom {
	k := &kingdom.Kingdom{
		ID:   id,
		Name: "Test",
		Race: kingdom.RaceHuman,
		Resources: kingdom.Resources{
			Gold:  gold,
			Land:  land,
			Turns: turns,
		},
		Alliances: make(map[kingdom.KingdomID]struct{}),
	}
	k.Units[0] = footmen
	k.Structures[kingdom.StructHomes] = 40
	k.Structures[kingdom.StructFarms] = 30
	return k
}

func TestAttackAppliesResult(t *testing.T) {
	sim := NewSimulator(NewLedger(), &entropy.Fixed{Values: []float64{0.5}})

	attacker := warKingdom(1, 334, 400, 20, 0)
	defender := warKingdom(2, 133, 1000, 0, 100000)
	defender.Resources.Population = 2000

	preAtkUnits := attacker.Units[0]
	preDefUnits := defender.Units[0]

	result, err := sim.Attack(1, attacker, defender, kingdom.FormationNone, kingdom.FormationNone)
	if err != nil {
		t.Fatalf("Attack returned error: %v", err)
	}

	if result.Outcome != mechanics.OutcomeWithEase {
		t.Errorf("outcome = %s, want with_ease", result.Outcome)
	}

	// Defender networth more than doubles the attacker's: 8 turns spent.
	if attacker.Resources.Turns != 12 {
		t.Errorf("attacker turns = %d, want 12", attacker.Resources.Turns)
	}

	// Land and gold move as a conserved transfer.
	if attacker.Resources.Land != 400+result.LandGained {
		t.Errorf("attacker land = %d, want %d", attacker.Resources.Land, 400+result.LandGained)
	}
	if defender.Resources.Land != 1000-result.LandGained {
		t.Errorf("defender land = %d, want %d", defender.Resources.Land, 1000-result.LandGained)
	}
	if attacker.Resources.Gold != result.GoldLooted {
		t.Errorf("attacker gold = %d, want %d", attacker.Resources.Gold, result.GoldLooted)
	}
	if defender.Resources.Gold != 100000-result.GoldLooted {
		t.Errorf("defender gold = %d, want %d", defender.Resources.Gold, 100000-result.GoldLooted)
	}

	// Casualties come off the rosters.
	if attacker.Units[0] != preAtkUnits-result.AttackerCasualties[0] {
		t.Errorf("attacker units = %d, want %d", attacker.Units[0], preAtkUnits-result.AttackerCasualties[0])
	}
	if defender.Units[0] != preDefUnits-result.DefenderCasualties[0] {
		t.Errorf("defender units = %d, want %d", defender.Units[0], preDefUnits-result.DefenderCasualties[0])
	}

	// Bookkeeping follows.
	if sim.History.Len() != 1 {
		t.Errorf("history holds %d records, want 1", sim.History.Len())
	}
	if count := sim.Ledger.AttackCount(1, 2); count != 1 {
		t.Errorf("ledger count = %d, want 1", count)
	}
}

func TestAttackRazesStructuresProportionally(t *testing.T) {
	sim := NewSimulator(NewLedger(), &entropy.Fixed{Values: []float64{0.5}})

	attacker := warKingdom(1, 334, 400, 20, 0)
	defender := warKingdom(2, 133, 1000, 0, 0)
	defender.Resources.Population = 2000
	preStructures := defender.Structures.Total()

	result, err := sim.Attack(1, attacker, defender, kingdom.FormationNone, kingdom.FormationNone)
	if err != nil {
		t.Fatalf("Attack returned error: %v", err)
	}
	if result.LandGained == 0 {
		t.Fatal("expected land to change hands")
	}

	post := defender.Structures.Total()
	if post >= preStructures {
		t.Errorf("structures %d did not shrink from %d after losing land", post, preStructures)
	}
	for st, n := range defender.Structures {
		if n < 0 {
			t.Errorf("structure %d went negative: %d", st, n)
		}
	}
}

func TestAttackRejectedWhenProtected(t *testing.T) {
	sim := NewSimulator(NewLedger(), entropy.NewSeeded(1))

	attacker := warKingdom(1, 334, 400, 20, 0)
	defender := warKingdom(2, 133, 1000, 0, 100000)
	defender.Protection = kingdom.Protection{
		Kind:        kingdom.ProtectionDeath,
		GrantedTick: 5,
		ExpiresTick: 77,
	}

	_, err := sim.Attack(10, attacker, defender, kingdom.FormationNone, kingdom.FormationNone)
	if !errors.Is(err, ErrProtected) {
		t.Fatalf("error = %v, want ErrProtected", err)
	}

	// A rejected attack mutates nothing.
	if attacker.Resources.Turns != 20 {
		t.Errorf("attacker turns = %d, want untouched 20", attacker.Resources.Turns)
	}
	if sim.History.Len() != 0 {
		t.Errorf("history holds %d records, want 0", sim.History.Len())
	}
	if count := sim.Ledger.AttackCount(1, 2); count != 0 {
		t.Errorf("ledger count = %d, want 0", count)
	}
}

func TestAttackAllowedAfterProtectionExpires(t *testing.T) {
	sim := NewSimulator(NewLedger(), entropy.NewSeeded(1))

	attacker := warKingdom(1, 334, 400, 20, 0)
	defender := warKingdom(2, 133, 1000, 0, 0)
	defender.Resources.Population = 2000
	defender.Protection = kingdom.Protection{
		Kind:        kingdom.ProtectionDamage,
		GrantedTick: 5,
		ExpiresTick: 53,
	}

	if _, err := sim.Attack(53, attacker, defender, kingdom.FormationNone, kingdom.FormationNone); err != nil {
		t.Errorf("attack at expiry tick rejected: %v", err)
	}
}

func TestAttackRejectedInsufficientTurns(t *testing.T) {
	sim := NewSimulator(NewLedger(), entropy.NewSeeded(1))

	attacker := warKingdom(1, 334, 400, 3, 0)
	defender := warKingdom(2, 133, 1000, 0, 100000)

	_, err := sim.Attack(1, attacker, defender, kingdom.FormationNone, kingdom.FormationNone)
	if !errors.Is(err, ErrInsufficientTurns) {
		t.Fatalf("error = %v, want ErrInsufficientTurns", err)
	}
}

func TestAttackBlockedByStrikePolicy(t *testing.T) {
	ledger := NewLedger()
	ledger.AllowStrikesPendingWar = false
	for i := 0; i < 3; i++ {
		ledger.RecordAttack(1, 2)
	}

	sim := NewSimulator(ledger, entropy.NewSeeded(1))
	attacker := warKingdom(1, 334, 400, 20, 0)
	defender := warKingdom(2, 133, 1000, 0, 100000)

	_, err := sim.Attack(1, attacker, defender, kingdom.FormationNone, kingdom.FormationNone)
	if !errors.Is(err, ErrWarRequired) {
		t.Fatalf("error = %v, want ErrWarRequired", err)
	}
}

func TestAttackGrantsRestorationProtection(t *testing.T) {
	sim := NewSimulator(NewLedger(), &entropy.Fixed{Values: []float64{0.5}})

	attacker := warKingdom(1, 334, 400, 20, 0)
	// No structures at all: any hit leaves the defender at zero and triggers
	// death-based restoration.
	defender := warKingdom(2, 133, 1000, 0, 0)
	defender.Structures = kingdom.Structures{}
	defender.Resources.Population = 2000

	if _, err := sim.Attack(10, attacker, defender, kingdom.FormationNone, kingdom.FormationNone); err != nil {
		t.Fatalf("Attack returned error: %v", err)
	}

	if defender.Protection.Kind != kingdom.ProtectionDeath {
		t.Fatalf("protection kind = %d, want death", defender.Protection.Kind)
	}
	if defender.Protection.ExpiresTick != 10+mechanics.DeathProtectionTicks {
		t.Errorf("protection expires at %d, want %d", defender.Protection.ExpiresTick, 10+mechanics.DeathProtectionTicks)
	}
	if !defender.Protection.ActiveAt(11) {
		t.Error("protection not active on the next tick")
	}
}

func TestHistoryRingBounded(t *testing.T) {
	var h History
	for tick := uint64(1); tick <= 60; tick++ {
		h.Append(Record{Tick: tick, Attacker: 1, Defender: 2})
	}

	if h.Len() != HistorySize {
		t.Fatalf("history length = %d, want %d", h.Len(), HistorySize)
	}

	recent := h.Recent()
	if len(recent) != HistorySize {
		t.Fatalf("Recent returned %d records, want %d", len(recent), HistorySize)
	}
	if recent[0].Tick != 11 {
		t.Errorf("oldest kept record is tick %d, want 11", recent[0].Tick)
	}
	if recent[len(recent)-1].Tick != 60 {
		t.Errorf("newest record is tick %d, want 60", recent[len(recent)-1].Tick)
	}
}

func TestHistoryRecentOrderedBeforeWrap(t *testing.T) {
	var h History
	for tick := uint64(1); tick <= 5; tick++ {
		h.Append(Record{Tick: tick})
	}

	recent := h.Recent()
	if len(recent) != 5 {
		t.Fatalf("Recent returned %d records, want 5", len(recent))
	}
	for i, r := range recent {
		if r.Tick != uint64(i+1) {
			t.Errorf("record %d has tick %d, want %d", i, r.Tick, i+1)
		}
	}
}
