package mechanics

import (
	"testing"

	"github.com/talgya/throneworld/internal/kingdom"
)

func TestSpellTiers(t *testing.T) {
	tests := []struct {
		spell Spell
		want  int
	}{
		{SpellFireball, 1},
		{SpellLightning, 2},
		{SpellEarthquake, 3},
		{SpellPlague, 3},
		{SpellMeteorShower, 4},
		{Spell(7), 0},
	}
	for _, tt := range tests {
		if got := tt.spell.Tier(); got != tt.want {
			t.Errorf("%s.Tier() = %d, want %d", tt.spell, got, tt.want)
		}
	}
}

func TestSpellSuccess(t *testing.T) {
	tests := []struct {
		name   string
		caster float64
		target float64
		tier   int
		want   bool
	}{
		{"tier 1 above threshold beats weak target", 3.0, 1.0, 1, true},
		{"tier 1 below threshold", 1.9, 0.0, 1, false},
		{"tier 2 at threshold", 4.0, 0.0, 2, true},
		{"tier 3 just below threshold", 7.9, 0.0, 3, false},
		{"tier 3 advantage overcomes stronger target", 8.0, 9.0, 3, true}, // 8*1.15 = 9.2 > 9
		{"tier 3 advantage not enough", 8.0, 9.3, 3, false},               // 9.2 < 9.3
		{"equal effective strength fails", 10.0, 11.5, 3, false},          // strict inequality
		{"tier 4 threshold gate", 11.9, 0.0, 4, false},
		{"tier 4 passes", 12.0, 0.0, 4, true},
		{"tier zero invalid", 50.0, 0.0, 0, false},
		{"tier five invalid", 50.0, 0.0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpellSuccess(tt.caster, tt.target, tt.tier); got != tt.want {
				t.Errorf("SpellSuccess(%.1f, %.1f, %d) = %v, want %v", tt.caster, tt.target, tt.tier, got, tt.want)
			}
		})
	}
}

func TestSpellDamageScalesWithMagic(t *testing.T) {
	// Fireball burns 3% of structures at the Human baseline. Elven magic
	// (1.30) pushes that to 3.9%, truncated to whole structures.
	human := SpellDamage(SpellFireball, kingdom.RaceHuman, 100, 10, 1000)
	if human.StructuresDestroyed != 3 {
		t.Errorf("human fireball destroyed %d structures, want 3", human.StructuresDestroyed)
	}
	if human.FortsDestroyed != 0 || human.PopulationKilled != 0 {
		t.Errorf("fireball touched forts/population: %+v", human)
	}

	elven := SpellDamage(SpellFireball, kingdom.RaceElven, 1000, 10, 1000)
	if elven.StructuresDestroyed != 39 {
		t.Errorf("elven fireball destroyed %d structures, want 39", elven.StructuresDestroyed)
	}
}

func TestSpellDamagePlagueKillsOnlyPopulation(t *testing.T) {
	effect := SpellDamage(SpellPlague, kingdom.RaceHuman, 100, 10, 1000)
	if effect.StructuresDestroyed != 0 || effect.FortsDestroyed != 0 {
		t.Errorf("plague destroyed structures/forts: %+v", effect)
	}
	if effect.PopulationKilled != 60 {
		t.Errorf("plague killed %d, want 60", effect.PopulationKilled)
	}
}

func TestSpellDamageCappedAtHoldings(t *testing.T) {
	effect := SpellDamage(SpellMeteorShower, kingdom.RaceElven, 2, 1, 5)
	if effect.StructuresDestroyed > 2 {
		t.Errorf("destroyed %d structures, only 2 exist", effect.StructuresDestroyed)
	}
	if effect.FortsDestroyed > 1 {
		t.Errorf("destroyed %d forts, only 1 exists", effect.FortsDestroyed)
	}
	if effect.PopulationKilled > 5 {
		t.Errorf("killed %d, only 5 live there", effect.PopulationKilled)
	}
}

func TestSpellDamageDegradesOnUnknownInputs(t *testing.T) {
	if effect := SpellDamage(Spell(9), kingdom.RaceHuman, 100, 10, 1000); effect != (SpellEffect{}) {
		t.Errorf("unknown spell produced damage: %+v", effect)
	}
	if effect := SpellDamage(SpellFireball, kingdom.Race(99), 100, 10, 1000); effect != (SpellEffect{}) {
		t.Errorf("unknown race produced damage: %+v", effect)
	}
}
