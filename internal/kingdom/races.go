// Race definitions — closed enumeration with fixed stat and unit tables.
// Lookups dispatch through fixed-size arrays so a missing entry is a
// compile-time impossibility rather than a runtime map miss.
package kingdom

// Race is a closed enumeration of playable races.
type Race uint8

const (
	RaceHuman Race = iota
	RaceElven
	RaceDwarven
	RaceDroben
	RaceGoblin
	RaceTroll
	RaceVampire
	RaceGnome
)

// NumRaces is the total number of playable races.
const NumRaces = 8

var raceNames = [NumRaces]string{
	"Human", "Elven", "Dwarven", "Droben", "Goblin", "Troll", "Vampire", "Gnome",
}

// String returns the display name, or "Unknown" for out-of-range values.
func (r Race) String() string {
	if int(r) >= NumRaces {
		return "Unknown"
	}
	return raceNames[r]
}

// Valid reports whether the race value is within the closed enumeration.
func (r Race) Valid() bool {
	return int(r) < NumRaces
}

// ParseRace resolves a display name to a race. The second return is false
// for unknown names; callers degrade to zero-effect results rather than
// erroring so simulations keep running against incomplete data.
func ParseRace(name string) (Race, bool) {
	for i, n := range raceNames {
		if n == name {
			return Race(i), true
		}
	}
	return 0, false
}

// RaceStats holds a race's global multipliers, supplied to the mechanics
// as a read-only table.
type RaceStats struct {
	Offense float64 // Multiplier on unit offense
	Defense float64 // Multiplier on unit defense
	Economy float64 // Multiplier on income
	Magic   float64 // Multiplier on sorcery effectiveness
	Scum    float64 // Per-operative effectiveness in detection contests
}

var raceStats = [NumRaces]RaceStats{
	RaceHuman:   {Offense: 1.00, Defense: 1.00, Economy: 1.10, Magic: 1.00, Scum: 1.00},
	RaceElven:   {Offense: 0.90, Defense: 1.05, Economy: 1.00, Magic: 1.30, Scum: 1.15},
	RaceDwarven: {Offense: 1.05, Defense: 1.25, Economy: 1.05, Magic: 0.70, Scum: 0.85},
	RaceDroben:  {Offense: 1.30, Defense: 0.90, Economy: 0.85, Magic: 0.80, Scum: 0.90},
	RaceGoblin:  {Offense: 1.10, Defense: 0.80, Economy: 0.90, Magic: 0.90, Scum: 1.30},
	RaceTroll:   {Offense: 1.20, Defense: 1.10, Economy: 0.75, Magic: 0.60, Scum: 0.70},
	RaceVampire: {Offense: 1.15, Defense: 1.00, Economy: 0.95, Magic: 1.20, Scum: 1.10},
	RaceGnome:   {Offense: 0.85, Defense: 0.95, Economy: 1.25, Magic: 1.10, Scum: 1.05},
}

// Stats returns the race's multiplier table. Out-of-range races get the
// Human baseline so degraded lookups stay harmless.
func Stats(r Race) RaceStats {
	if !r.Valid() {
		return raceStats[RaceHuman]
	}
	return raceStats[r]
}

// UnitClass groups units for terrain penalty purposes.
type UnitClass uint8

const (
	ClassInfantry UnitClass = iota
	ClassRanged
	ClassCavalry
	ClassElite
)

// NumClasses is the number of unit classes.
const NumClasses = 4

// UnitDef describes one tier of a race's military.
type UnitDef struct {
	Name     string
	Class    UnitClass
	Offense  float64 // Per-unit offensive power
	Defense  float64 // Per-unit defensive power
	Networth float64 // Contribution to kingdom networth
	Cost     uint64  // Gold to train one
}

// unitTables gives each race its four-tier army. Tier order is fixed:
// line infantry, ranged, mounted, elite.
var unitTables = [NumRaces][NumTiers]UnitDef{
	RaceHuman: {
		{Name: "Footman", Class: ClassInfantry, Offense: 3, Defense: 3, Networth: 120, Cost: 350},
		{Name: "Archer", Class: ClassRanged, Offense: 4, Defense: 2, Networth: 140, Cost: 450},
		{Name: "Knight", Class: ClassCavalry, Offense: 7, Defense: 5, Networth: 300, Cost: 1100},
		{Name: "Royal Guard", Class: ClassElite, Offense: 9, Defense: 9, Networth: 500, Cost: 2000},
	},
	RaceElven: {
		{Name: "Blade Dancer", Class: ClassInfantry, Offense: 3, Defense: 2, Networth: 110, Cost: 320},
		{Name: "Longbowman", Class: ClassRanged, Offense: 6, Defense: 2, Networth: 180, Cost: 600},
		{Name: "Wind Rider", Class: ClassCavalry, Offense: 6, Defense: 4, Networth: 280, Cost: 1000},
		{Name: "Starlight Sentinel", Class: ClassElite, Offense: 8, Defense: 10, Networth: 520, Cost: 2100},
	},
	RaceDwarven: {
		{Name: "Shieldbearer", Class: ClassInfantry, Offense: 2, Defense: 5, Networth: 130, Cost: 380},
		{Name: "Crossbowman", Class: ClassRanged, Offense: 4, Defense: 3, Networth: 150, Cost: 480},
		{Name: "Ram Rider", Class: ClassCavalry, Offense: 6, Defense: 6, Networth: 310, Cost: 1150},
		{Name: "Ironbreaker", Class: ClassElite, Offense: 8, Defense: 12, Networth: 560, Cost: 2300},
	},
	RaceDroben: {
		{Name: "Raider", Class: ClassInfantry, Offense: 5, Defense: 2, Networth: 130, Cost: 400},
		{Name: "Javelineer", Class: ClassRanged, Offense: 5, Defense: 2, Networth: 150, Cost: 470},
		{Name: "Warg Rider", Class: ClassCavalry, Offense: 9, Defense: 3, Networth: 330, Cost: 1200},
		{Name: "Berserker", Class: ClassElite, Offense: 13, Defense: 5, Networth: 550, Cost: 2250},
	},
	RaceGoblin: {
		{Name: "Stabber", Class: ClassInfantry, Offense: 3, Defense: 1, Networth: 90, Cost: 250},
		{Name: "Slinger", Class: ClassRanged, Offense: 4, Defense: 1, Networth: 100, Cost: 300},
		{Name: "Spider Rider", Class: ClassCavalry, Offense: 6, Defense: 3, Networth: 240, Cost: 850},
		{Name: "Nightblade", Class: ClassElite, Offense: 9, Defense: 6, Networth: 430, Cost: 1700},
	},
	RaceTroll: {
		{Name: "Basher", Class: ClassInfantry, Offense: 5, Defense: 4, Networth: 160, Cost: 500},
		{Name: "Rock Hurler", Class: ClassRanged, Offense: 6, Defense: 3, Networth: 180, Cost: 580},
		{Name: "Cave Stalker", Class: ClassCavalry, Offense: 8, Defense: 5, Networth: 320, Cost: 1200},
		{Name: "Warlord", Class: ClassElite, Offense: 11, Defense: 10, Networth: 580, Cost: 2400},
	},
	RaceVampire: {
		{Name: "Thrall", Class: ClassInfantry, Offense: 3, Defense: 2, Networth: 100, Cost: 300},
		{Name: "Shadow Archer", Class: ClassRanged, Offense: 5, Defense: 2, Networth: 150, Cost: 500},
		{Name: "Dread Knight", Class: ClassCavalry, Offense: 8, Defense: 5, Networth: 320, Cost: 1150},
		{Name: "Nosferatu", Class: ClassElite, Offense: 11, Defense: 8, Networth: 540, Cost: 2200},
	},
	RaceGnome: {
		{Name: "Militia", Class: ClassInfantry, Offense: 2, Defense: 3, Networth: 100, Cost: 280},
		{Name: "Bolt Thrower", Class: ClassRanged, Offense: 5, Defense: 2, Networth: 150, Cost: 480},
		{Name: "Gyrocopter", Class: ClassCavalry, Offense: 6, Defense: 4, Networth: 270, Cost: 980},
		{Name: "Tinker Guard", Class: ClassElite, Offense: 7, Defense: 9, Networth: 470, Cost: 1900},
	},
}

// UnitTable returns the race's four-tier unit definitions. Out-of-range
// races fall back to the Human table.
func UnitTable(r Race) [NumTiers]UnitDef {
	if !r.Valid() {
		return unitTables[RaceHuman]
	}
	return unitTables[r]
}
