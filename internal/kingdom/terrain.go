// Terrain and formation modifier tables, plus seeded terrain assignment
// using layered simplex noise so a world seed fully determines the map.
package kingdom

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Terrain is a closed enumeration of home terrains.
type Terrain uint8

const (
	TerrainPlains Terrain = iota
	TerrainForest
	TerrainHills
	TerrainMountains
	TerrainSwamp
	TerrainDesert
)

// NumTerrains is the number of terrain types.
const NumTerrains = 6

var terrainNames = [NumTerrains]string{
	"Plains", "Forest", "Hills", "Mountains", "Swamp", "Desert",
}

func (t Terrain) String() string {
	if int(t) >= NumTerrains {
		return "Unknown"
	}
	return terrainNames[t]
}

// TerrainModifier adjusts combat on a given terrain: flat percentage deltas
// for each side plus per-unit-class multipliers on attacker offense.
type TerrainModifier struct {
	OffenseDelta float64 // Flat % change to attacker offense
	DefenseDelta float64 // Flat % change to defender power

	// ClassPenalty multiplies each attacking unit class's offense
	// contribution (1.0 = unaffected).
	ClassPenalty [NumClasses]float64
}

var terrainModifiers = [NumTerrains]TerrainModifier{
	TerrainPlains: {
		OffenseDelta: 0, DefenseDelta: 0,
		ClassPenalty: [NumClasses]float64{1.00, 1.00, 1.10, 1.00},
	},
	TerrainForest: {
		OffenseDelta: -5, DefenseDelta: 10,
		ClassPenalty: [NumClasses]float64{1.00, 0.85, 0.70, 1.00},
	},
	TerrainHills: {
		OffenseDelta: -10, DefenseDelta: 15,
		ClassPenalty: [NumClasses]float64{0.95, 1.05, 0.80, 1.00},
	},
	TerrainMountains: {
		OffenseDelta: -20, DefenseDelta: 25,
		ClassPenalty: [NumClasses]float64{0.90, 1.00, 0.50, 0.95},
	},
	TerrainSwamp: {
		OffenseDelta: -15, DefenseDelta: 5,
		ClassPenalty: [NumClasses]float64{0.80, 0.90, 0.60, 0.90},
	},
	TerrainDesert: {
		OffenseDelta: -5, DefenseDelta: -5,
		ClassPenalty: [NumClasses]float64{0.90, 1.00, 1.05, 1.00},
	},
}

// Modifier returns the terrain's combat modifier table. Out-of-range
// terrains behave as plains.
func Modifier(t Terrain) TerrainModifier {
	if int(t) >= NumTerrains {
		return terrainModifiers[TerrainPlains]
	}
	return terrainModifiers[t]
}

// Formation is a closed enumeration of battle formations.
type Formation uint8

const (
	FormationNone Formation = iota
	FormationWedge
	FormationPhalanx
	FormationSkirmish
	FormationShieldWall
)

// NumFormations is the number of formations.
const NumFormations = 5

// FormationBonus gives a formation's percentage bonuses to each side.
type FormationBonus struct {
	Name    string
	Offense float64 // % bonus to attacker offense
	Defense float64 // % bonus to defender power
}

var formationBonuses = [NumFormations]FormationBonus{
	FormationNone:       {Name: "None"},
	FormationWedge:      {Name: "Wedge", Offense: 15},
	FormationPhalanx:    {Name: "Phalanx", Defense: 15},
	FormationSkirmish:   {Name: "Skirmish", Offense: 8, Defense: 5},
	FormationShieldWall: {Name: "Shield Wall", Defense: 25},
}

// Bonus returns the formation's bonus table; unknown formations give no bonus.
func (f Formation) Bonus() FormationBonus {
	if int(f) >= NumFormations {
		return formationBonuses[FormationNone]
	}
	return formationBonuses[f]
}

// AssignTerrain derives a kingdom's home terrain from the world seed and the
// kingdom's index. Two noise layers (elevation and moisture) are sampled at
// the kingdom's position on a notional ring, then bucketed.
func AssignTerrain(seed int64, index int) Terrain {
	elevNoise := opensimplex.NewNormalized(seed)
	wetNoise := opensimplex.NewNormalized(seed + 1)

	// Spread kingdoms around a ring so neighbors get correlated but not
	// identical terrain.
	angle := float64(index) * 0.61803398875 * 2 * math.Pi
	x := math.Cos(angle) * 3.0
	y := math.Sin(angle) * 3.0

	elev := octaveNoise(elevNoise, x, y, 3, 0.35, 0.5)
	wet := octaveNoise(wetNoise, x, y, 3, 0.30, 0.5)

	switch {
	case elev > 0.72:
		return TerrainMountains
	case elev > 0.55:
		return TerrainHills
	case wet > 0.65:
		return TerrainSwamp
	case wet > 0.45:
		return TerrainForest
	case wet < 0.25:
		return TerrainDesert
	default:
		return TerrainPlains
	}
}

// octaveNoise samples multi-octave simplex noise normalized to [0, 1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	f := freq

	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*f, y*f) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		f *= 2
	}

	return total / maxValue
}
