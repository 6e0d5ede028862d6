// Sorcery mechanics — temple-gated spell success and race-dependent damage.
package mechanics

import "github.com/talgya/throneworld/internal/kingdom"

// Spell is a closed enumeration of offensive spells.
type Spell uint8

const (
	SpellFireball Spell = iota // Tier 1 — burns structures
	SpellLightning             // Tier 2 — structures and forts
	SpellEarthquake            // Tier 3 — heavy structure and fort damage
	SpellPlague                // Tier 3 — population killer
	SpellMeteorShower          // Tier 4 — everything burns
)

// NumSpells is the number of spells.
const NumSpells = 5

var spellNames = [NumSpells]string{
	"Fireball", "Lightning", "Earthquake", "Plague", "Meteor Shower",
}

func (s Spell) String() string {
	if int(s) >= NumSpells {
		return "Unknown"
	}
	return spellNames[s]
}

// Valid reports whether the spell is within the closed enumeration.
func (s Spell) Valid() bool {
	return int(s) < NumSpells
}

var spellTiers = [NumSpells]int{1, 2, 3, 3, 4}

// Tier returns the spell's tier (1–4), or 0 for unknown spells.
func (s Spell) Tier() int {
	if !s.Valid() {
		return 0
	}
	return spellTiers[s]
}

// tierThresholds gives the minimum caster temple percentage per tier (1–4).
var tierThresholds = [5]float64{0, 2, 4, 8, 12}

// SpellSuccess reports whether a spell lands. The caster must meet the
// tier's temple threshold, and the caster's temple strength with the
// attacker advantage must beat the target's.
func SpellSuccess(casterTemplePct, targetTemplePct float64, tier int) bool {
	if tier < 1 || tier > 4 {
		return false
	}
	if casterTemplePct < tierThresholds[tier] {
		return false
	}
	return casterTemplePct*AttackerMagicAdvantage > targetTemplePct
}

// SpellEffect is the damage a landed spell inflicts.
type SpellEffect struct {
	StructuresDestroyed int `json:"structures_destroyed"`
	FortsDestroyed      int `json:"forts_destroyed"`
	PopulationKilled    int `json:"population_killed"`
}

// spellPower holds per-race, per-spell damage fractions. PopFrac is nonzero
// only for population-targeting spells.
type spellPower struct {
	StructFrac float64
	FortFrac   float64
	PopFrac    float64
}

// basePowers are the racial-baseline fractions per spell; the caster race's
// magic multiplier scales them.
var basePowers = [NumSpells]spellPower{
	SpellFireball:     {StructFrac: 0.03},
	SpellLightning:    {StructFrac: 0.04, FortFrac: 0.05},
	SpellEarthquake:   {StructFrac: 0.07, FortFrac: 0.10},
	SpellPlague:       {PopFrac: 0.06},
	SpellMeteorShower: {StructFrac: 0.09, FortFrac: 0.08, PopFrac: 0.03},
}

// SpellDamage computes the effect of a landed spell against the target's
// holdings. An unknown race or spell yields an all-zero effect rather than
// an error, so simulations keep running against incomplete data tables.
func SpellDamage(spell Spell, casterRace kingdom.Race, targetStructures, targetForts, targetPopulation int) SpellEffect {
	if !spell.Valid() || !casterRace.Valid() {
		return SpellEffect{}
	}

	power := basePowers[spell]
	magic := kingdom.Stats(casterRace).Magic

	effect := SpellEffect{
		StructuresDestroyed: int(float64(targetStructures) * power.StructFrac * magic),
		FortsDestroyed:      int(float64(targetForts) * power.FortFrac * magic),
		PopulationKilled:    int(float64(targetPopulation) * power.PopFrac * magic),
	}

	if effect.StructuresDestroyed > targetStructures {
		effect.StructuresDestroyed = targetStructures
	}
	if effect.FortsDestroyed > targetForts {
		effect.FortsDestroyed = targetForts
	}
	if effect.PopulationKilled > targetPopulation {
		effect.PopulationKilled = targetPopulation
	}
	return effect
}
