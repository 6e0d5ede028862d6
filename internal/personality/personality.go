// Package personality synthesizes deterministic per-kingdom trait profiles
// from race, persona, and playstyle. The same inputs always produce the same
// profile, which is what keeps AI behavior reproducible across runs.
package personality

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/talgya/throneworld/internal/kingdom"
)

// Trait indexes into a TraitVector.
type Trait uint8

const (
	TraitAggression Trait = iota
	TraitCaution
	TraitGreed
	TraitExpansion
	TraitDiplomacy
	TraitMysticism
	TraitCunning
	TraitPatience
)

// NumTraits is the number of personality traits.
const NumTraits = 8

var traitNames = [NumTraits]string{
	"aggression", "caution", "greed", "expansion",
	"diplomacy", "mysticism", "cunning", "patience",
}

func (t Trait) String() string {
	if int(t) >= NumTraits {
		return "unknown"
	}
	return traitNames[t]
}

// Trait values are always clamped to this range.
const (
	TraitMin = 0.3
	TraitMax = 2.5
)

// TraitVector holds the 8 trait values, each in [TraitMin, TraitMax].
type TraitVector [NumTraits]float64

// Persona is a closed enumeration of behavioral archetypes.
type Persona uint8

const (
	PersonaBerserker Persona = iota
	PersonaWarlord
	PersonaDiplomat
	PersonaMerchant
	PersonaMystic
	PersonaSchemer
	PersonaGuardian
	PersonaPioneer
)

// NumPersonas is the number of personas.
const NumPersonas = 8

var personaNames = [NumPersonas]string{
	"berserker", "warlord", "diplomat", "merchant",
	"mystic", "schemer", "guardian", "pioneer",
}

func (p Persona) String() string {
	if int(p) >= NumPersonas {
		return "unknown"
	}
	return personaNames[p]
}

// Playstyle is a closed enumeration of overall postures.
type Playstyle uint8

const (
	PlayAggressive Playstyle = iota
	PlayDefensive
	PlayEconomic
	PlayBalanced
)

// NumPlaystyles is the number of playstyles.
const NumPlaystyles = 4

var playstyleNames = [NumPlaystyles]string{
	"aggressive", "defensive", "economic", "balanced",
}

func (p Playstyle) String() string {
	if int(p) >= NumPlaystyles {
		return "unknown"
	}
	return playstyleNames[p]
}

// raceBases gives each race its starting trait vector before persona and
// playstyle shaping.
var raceBases = [kingdom.NumRaces]TraitVector{
	kingdom.RaceHuman:   {1.0, 1.0, 1.1, 1.0, 1.1, 1.0, 1.0, 1.0},
	kingdom.RaceElven:   {0.8, 1.2, 0.9, 0.9, 1.3, 1.4, 1.1, 1.3},
	kingdom.RaceDwarven: {0.9, 1.5, 1.2, 0.8, 0.9, 0.7, 0.9, 1.2},
	kingdom.RaceDroben:  {1.5, 0.7, 0.9, 1.3, 0.6, 0.8, 0.9, 0.7},
	kingdom.RaceGoblin:  {1.2, 0.8, 1.1, 1.1, 0.7, 0.9, 1.4, 0.7},
	kingdom.RaceTroll:   {1.4, 0.9, 0.7, 1.1, 0.6, 0.6, 0.7, 0.8},
	kingdom.RaceVampire: {1.2, 1.0, 1.0, 1.0, 0.8, 1.2, 1.2, 1.1},
	kingdom.RaceGnome:   {0.7, 1.3, 1.4, 0.9, 1.1, 1.1, 1.1, 1.2},
}

// personaMods multiplies the racial base element-wise.
var personaMods = [NumPersonas]TraitVector{
	PersonaBerserker: {1.8, 0.6, 0.8, 1.3, 0.5, 0.8, 0.8, 0.6},
	PersonaWarlord:   {1.5, 0.9, 0.9, 1.4, 0.7, 0.8, 1.0, 0.9},
	PersonaDiplomat:  {0.7, 1.2, 1.0, 0.9, 1.6, 1.0, 1.1, 1.3},
	PersonaMerchant:  {0.7, 1.1, 1.6, 1.0, 1.2, 0.9, 1.1, 1.1},
	PersonaMystic:    {0.8, 1.1, 0.9, 0.9, 1.0, 1.7, 1.0, 1.2},
	PersonaSchemer:   {0.9, 1.0, 1.1, 1.0, 0.8, 1.0, 1.7, 1.0},
	PersonaGuardian:  {0.7, 1.7, 1.0, 0.7, 1.1, 1.0, 0.9, 1.3},
	PersonaPioneer:   {1.1, 0.8, 1.0, 1.6, 0.9, 0.9, 1.0, 0.8},
}

// playstyleMods applies after the persona.
var playstyleMods = [NumPlaystyles]TraitVector{
	PlayAggressive: {1.3, 0.8, 0.9, 1.2, 0.8, 1.0, 1.0, 0.8},
	PlayDefensive:  {0.8, 1.3, 1.0, 0.8, 1.1, 1.0, 1.0, 1.2},
	PlayEconomic:   {0.8, 1.0, 1.3, 1.0, 1.1, 0.9, 1.0, 1.1},
	PlayBalanced:   {1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0},
}

// Personality is a kingdom's complete behavioral profile. Traits are always
// clamped; decision modifiers are recomputed from traits on demand and never
// stored, so the two can never drift apart.
type Personality struct {
	Kingdom   kingdom.KingdomID `json:"kingdom_id"`
	Race      kingdom.Race      `json:"race"`
	Persona   Persona           `json:"persona"`
	Playstyle Playstyle         `json:"playstyle"`
	Traits    TraitVector       `json:"traits"`
}

// Modifiers are the decision parameters derived from traits.
type Modifiers struct {
	// AttackThreshold is the minimum predicted offense ratio before the
	// kingdom considers attacking. Aggressive kingdoms accept worse odds.
	AttackThreshold float64 `json:"attack_threshold"`
	// RiskTolerance scales how much retaliation risk is discounted.
	RiskTolerance float64 `json:"risk_tolerance"`
	// GoldReserveRatio is the fraction of gold held back from spending.
	GoldReserveRatio float64 `json:"gold_reserve_ratio"`
	// EspionageBias weights thievery over open attacks.
	EspionageBias float64 `json:"espionage_bias"`
	// SpellBias weights sorcery over conventional force.
	SpellBias float64 `json:"spell_bias"`
}

// Modifiers computes the derived decision parameters. Pure function of the
// trait vector.
func (p *Personality) Modifiers() Modifiers {
	return Modifiers{
		AttackThreshold:  2.0 - p.Traits[TraitAggression],
		RiskTolerance:    (p.Traits[TraitAggression] + p.Traits[TraitExpansion]) / 2,
		GoldReserveRatio: clamp01(p.Traits[TraitCaution] * 0.2),
		EspionageBias:    p.Traits[TraitCunning] / 2,
		SpellBias:        p.Traits[TraitMysticism] / 2,
	}
}

// Tags returns the behavior tags earned by trait extremes, in trait order.
func (p *Personality) Tags() []string {
	var tags []string
	if p.Traits[TraitAggression] > 1.8 {
		tags = append(tags, "warmonger")
	}
	if p.Traits[TraitCaution] > 1.8 {
		tags = append(tags, "turtle")
	}
	if p.Traits[TraitGreed] > 1.8 {
		tags = append(tags, "hoarder")
	}
	if p.Traits[TraitExpansion] > 1.8 {
		tags = append(tags, "landgrabber")
	}
	if p.Traits[TraitDiplomacy] > 1.8 {
		tags = append(tags, "peacemaker")
	}
	if p.Traits[TraitMysticism] > 1.8 {
		tags = append(tags, "spellweaver")
	}
	if p.Traits[TraitCunning] > 1.8 {
		tags = append(tags, "shadowhand")
	}
	if p.Traits[TraitPatience] > 1.8 {
		tags = append(tags, "longgame")
	}
	return tags
}

// Generate synthesizes a personality for a kingdom. Persona and playstyle
// derive from an FNV hash of the kingdom ID, so identical inputs always
// yield bit-identical output.
func Generate(id kingdom.KingdomID, race kingdom.Race) Personality {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	h.Write(buf[:])
	sum := h.Sum64()

	persona := Persona(sum % NumPersonas)
	playstyle := Playstyle((sum / NumPersonas) % NumPlaystyles)
	return GenerateWith(id, race, persona, playstyle)
}

// GenerateWith synthesizes a personality from explicit persona and
// playstyle: racial base, multiplied element-wise by persona then playstyle
// modifiers, each trait clamped to [TraitMin, TraitMax].
func GenerateWith(id kingdom.KingdomID, race kingdom.Race, persona Persona, playstyle Playstyle) Personality {
	base := raceBases[kingdom.RaceHuman]
	if race.Valid() {
		base = raceBases[race]
	}
	pm := personaMods[PersonaWarlord]
	if int(persona) < NumPersonas {
		pm = personaMods[persona]
	}
	sm := playstyleMods[PlayBalanced]
	if int(playstyle) < NumPlaystyles {
		sm = playstyleMods[playstyle]
	}

	var traits TraitVector
	for i := range traits {
		v := base[i] * pm[i] * sm[i]
		if v < TraitMin {
			v = TraitMin
		}
		if v > TraitMax {
			v = TraitMax
		}
		traits[i] = v
	}

	return Personality{
		Kingdom:   id,
		Race:      race,
		Persona:   persona,
		Playstyle: playstyle,
		Traits:    traits,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
