// Package kingdom provides the kingdom data model: resources, military,
// structures, races, and the terrain/formation modifier tables.
package kingdom

// KingdomID is a unique identifier for a kingdom.
type KingdomID uint64

// NumTiers is the number of military unit tiers every race fields.
const NumTiers = 4

// StructureType enumerates the building types a kingdom can hold.
type StructureType uint8

const (
	StructHomes StructureType = iota
	StructFarms
	StructBarracks
	StructTemples
	StructForts
	StructThievesDens
	StructMarkets
	StructCastle
)

// NumStructures is the total number of structure types.
const NumStructures = 8

// Structures is a fixed-size array holding counts of each structure type.
// Replaces map[StructureType]int — inline in Kingdom, zero heap allocation.
type Structures [NumStructures]int

// Total returns the combined structure count.
func (s Structures) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Resources holds a kingdom's spendable assets.
type Resources struct {
	Gold       uint64 `json:"gold"`
	Land       int    `json:"land"` // Acres
	Population int    `json:"population"`
	Mana       int    `json:"mana"`  // Magic energy for sorcery
	Turns      int    `json:"turns"` // Stored action turns
}

// ProtectionKind classifies a restoration grant.
type ProtectionKind uint8

const (
	ProtectionNone   ProtectionKind = iota
	ProtectionDeath                 // Structures or population hit zero
	ProtectionDamage                // Catastrophic but survivable losses
)

// Protection is the restoration state granted after catastrophic damage.
// While ExpiresTick is in the future, all hostile targeting of the kingdom
// must be rejected by the calling systems.
type Protection struct {
	Kind        ProtectionKind `json:"kind"`
	GrantedTick uint64         `json:"granted_tick"`
	ExpiresTick uint64         `json:"expires_tick"`
}

// ActiveAt reports whether protection is in force at the given tick.
func (p Protection) ActiveAt(tick uint64) bool {
	return p.Kind != ProtectionNone && tick < p.ExpiresTick
}

// Kingdom is the core entity: one realm with resources, an army, and a race.
type Kingdom struct {
	ID   KingdomID `json:"id"`
	Name string    `json:"name"`
	Race Race      `json:"race"`

	Resources  Resources  `json:"resources"`
	Structures Structures `json:"structures"`

	// Units holds counts per tier; the race's unit table gives each tier
	// its stats.
	Units [NumTiers]int `json:"units"`

	// Scum are the kingdom's covert operatives for thievery and detection.
	Scum int `json:"scum"`

	// AmbushActive means the kingdom has troops lying in wait; an attacker
	// walking into it loses almost all effective offense.
	AmbushActive bool `json:"ambush_active"`

	Alliances map[KingdomID]struct{} `json:"-"`

	Protection  Protection `json:"protection"`
	HomeTerrain Terrain    `json:"home_terrain"`

	// AI indicates the kingdom is driven by the decision system rather
	// than a player.
	AI bool `json:"ai"`
}

// Networth is the composite strength score used to rank kingdoms:
// land×1000 + gold + per-unit contributions.
func (k *Kingdom) Networth() float64 {
	nw := float64(k.Resources.Land)*1000 + float64(k.Resources.Gold)
	defs := UnitTable(k.Race)
	for tier, count := range k.Units {
		nw += float64(count) * defs[tier].Networth
	}
	return nw
}

// TemplePct returns temples as a fraction of total structures, in percent.
// This gates spell tiers and determines magical strength.
func (k *Kingdom) TemplePct() float64 {
	total := k.Structures.Total()
	if total == 0 {
		return 0
	}
	return float64(k.Structures[StructTemples]) / float64(total) * 100
}

// TotalUnits returns the combined unit count across all tiers.
func (k *Kingdom) TotalUnits() int {
	total := 0
	for _, n := range k.Units {
		total += n
	}
	return total
}

// Allied reports whether the two kingdoms share an alliance.
func (k *Kingdom) Allied(other KingdomID) bool {
	_, ok := k.Alliances[other]
	return ok
}
