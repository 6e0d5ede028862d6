package engine

import (
	"testing"

	"github.com/talgya/throneworld/internal/kingdom"
)

func TestGenerateKingdomsDeterministic(t *testing.T) {
	first := GenerateKingdoms(42, 12)
	second := GenerateKingdoms(42, 12)

	if len(first) != 12 || len(second) != 12 {
		t.Fatalf("got %d and %d kingdoms, want 12 each", len(first), len(second))
	}

	for i := range first {
		a, b := first[i], second[i]
		if a.ID != b.ID || a.Name != b.Name || a.Race != b.Race || a.HomeTerrain != b.HomeTerrain {
			t.Errorf("kingdom %d identity diverged: %+v vs %+v", i, a, b)
		}
		if a.Resources != b.Resources || a.Units != b.Units || a.Structures != b.Structures {
			t.Errorf("kingdom %d holdings diverged", i)
		}
	}
}

func TestGenerateKingdomsDifferentSeedsDiffer(t *testing.T) {
	a := GenerateKingdoms(1, 12)
	b := GenerateKingdoms(2, 12)

	same := true
	for i := range a {
		if a[i].Race != b[i].Race || a[i].HomeTerrain != b[i].HomeTerrain {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical worlds")
	}
}

func TestSimulationDeterministicReplay(t *testing.T) {
	run := func() *Simulation {
		sim := NewSimulation(99, GenerateKingdoms(99, 12))
		for tick := uint64(1); tick <= 50; tick++ {
			sim.TickTurn(tick)
		}
		return sim
	}

	first := run()
	second := run()

	if first.Stats != second.Stats {
		t.Errorf("stats diverged:\n%+v\n%+v", first.Stats, second.Stats)
	}

	for i := range first.Kingdoms {
		a, b := first.Kingdoms[i], second.Kingdoms[i]
		if a.Networth() != b.Networth() {
			t.Errorf("kingdom %s networth diverged: %.0f vs %.0f", a.Name, a.Networth(), b.Networth())
		}
		if a.Resources != b.Resources {
			t.Errorf("kingdom %s resources diverged:\n%+v\n%+v", a.Name, a.Resources, b.Resources)
		}
		if a.Units != b.Units {
			t.Errorf("kingdom %s units diverged", a.Name)
		}
	}

	firstLeader, secondLeader := first.Leader(), second.Leader()
	if firstLeader.Name != secondLeader.Name {
		t.Errorf("leaders diverged: %s vs %s", firstLeader.Name, secondLeader.Name)
	}
}

func TestTickTurnAccruesIncome(t *testing.T) {
	kingdoms := GenerateKingdoms(7, 1)
	kingdoms[0].AI = false // income only, no decisions
	k := kingdoms[0]

	sim := NewSimulation(7, kingdoms)

	preGold := k.Resources.Gold
	preTurns := k.Resources.Turns
	preMana := k.Resources.Mana

	sim.TickTurn(1)

	econ := kingdom.Stats(k.Race).Economy
	wantIncome := uint64(float64(400*20+6*500) * econ) // land and market income
	if k.Resources.Gold != preGold+wantIncome {
		t.Errorf("gold = %d, want %d", k.Resources.Gold, preGold+wantIncome)
	}
	if k.Resources.Turns != preTurns+1 {
		t.Errorf("turns = %d, want %d", k.Resources.Turns, preTurns+1)
	}
	if k.Resources.Mana != preMana+8 { // one per temple
		t.Errorf("mana = %d, want %d", k.Resources.Mana, preMana+8)
	}
}

func TestTickTurnCapsStoredTurns(t *testing.T) {
	kingdoms := GenerateKingdoms(7, 1)
	kingdoms[0].AI = false
	kingdoms[0].Resources.Turns = 100

	sim := NewSimulation(7, kingdoms)
	sim.TickTurn(1)

	if kingdoms[0].Resources.Turns != 100 {
		t.Errorf("turns = %d, want capped at 100", kingdoms[0].Resources.Turns)
	}
}

func TestTickTurnRecordsDecisions(t *testing.T) {
	sim := NewSimulation(11, GenerateKingdoms(11, 6))
	sim.TickTurn(1)

	if len(sim.LastDecisions) != 6 {
		t.Errorf("recorded %d decisions, want 6", len(sim.LastDecisions))
	}
	for id, d := range sim.LastDecisions {
		if d.Kingdom != id {
			t.Errorf("decision keyed %d belongs to %d", id, d.Kingdom)
		}
		if len(d.Reasoning) == 0 {
			t.Errorf("kingdom %d decision has no reasoning", id)
		}
	}
}

func TestTickTurnEventLogBounded(t *testing.T) {
	sim := NewSimulation(13, GenerateKingdoms(13, 10))
	for tick := uint64(1); tick <= 200; tick++ {
		sim.TickTurn(tick)
	}
	if len(sim.Events) > 500 {
		t.Errorf("event log grew to %d entries, cap is 500", len(sim.Events))
	}
}

func TestLeader(t *testing.T) {
	kingdoms := GenerateKingdoms(3, 4)
	kingdoms[2].Resources.Gold = 10_000_000

	sim := NewSimulation(3, kingdoms)
	leader := sim.Leader()
	if leader == nil || leader.ID != kingdoms[2].ID {
		t.Errorf("leader = %v, want the gilded kingdom %d", leader, kingdoms[2].ID)
	}

	empty := NewSimulation(3, nil)
	if empty.Leader() != nil {
		t.Error("empty world produced a leader")
	}
}

func TestUpdateStats(t *testing.T) {
	sim := NewSimulation(5, GenerateKingdoms(5, 8))

	if sim.Stats.Kingdoms != 8 {
		t.Errorf("stats kingdoms = %d, want 8", sim.Stats.Kingdoms)
	}
	if sim.Stats.TotalLand != 8*400 {
		t.Errorf("stats land = %d, want %d", sim.Stats.TotalLand, 8*400)
	}
	if sim.Stats.TotalNetworth <= 0 {
		t.Errorf("stats networth = %.0f, want positive", sim.Stats.TotalNetworth)
	}
}
