// Build order optimization — race-specific step templates filtered by
// affordability and re-weighted by game phase and external signals.
package strategy

import (
	"sort"

	"github.com/talgya/throneworld/internal/kingdom"
)

// GamePhase classifies how far into the game a kingdom is.
type GamePhase uint8

const (
	PhaseEarly GamePhase = iota
	PhaseMid
	PhaseLate
)

var phaseNames = [...]string{"early", "mid", "late"}

func (p GamePhase) String() string {
	if int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// PhaseForTick derives the game phase from the turn count: ≤20 early,
// ≤60 mid, else late.
func PhaseForTick(tick uint64) GamePhase {
	switch {
	case tick <= 20:
		return PhaseEarly
	case tick <= 60:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// Signals are the external pressures that re-weight build priorities, each
// in [0, 1].
type Signals struct {
	Threat           float64 `json:"threat"`
	Opportunity      float64 `json:"opportunity"`
	ResourcePressure float64 `json:"resource_pressure"`
}

// ReadSignals derives signal levels from the context's world view.
func ReadSignals(ctx *Context) Signals {
	selfNW := ctx.Self.Networth()
	threats, opportunities := 0, 0
	for _, k := range ctx.World {
		if k.ID == ctx.Self.ID {
			continue
		}
		nw := k.Networth()
		if nw > selfNW*1.2 {
			threats++
		} else if nw >= selfNW*0.3 && nw < selfNW*0.8 {
			opportunities++
		}
	}

	sig := Signals{
		Threat:      clamp(float64(threats)/3, 0, 1),
		Opportunity: clamp(float64(opportunities)/3, 0, 1),
	}

	// Farms behind population, or homes behind land, reads as resource
	// pressure.
	farms := ctx.Self.Structures[kingdom.StructFarms]
	needFarms := ctx.Self.Resources.Population / 60
	if needFarms > 0 && farms < needFarms {
		sig.ResourcePressure = clamp(float64(needFarms-farms)/float64(needFarms), 0, 1)
	}
	return sig
}

// BuildStep is one entry in a construction priority queue.
type BuildStep struct {
	Structure kingdom.StructureType `json:"structure"`
	Count     int                   `json:"count"`
	Priority  float64               `json:"priority"`
	GoldCost  uint64                `json:"gold_cost"`
	TurnCost  int                   `json:"turn_cost"`
	Benefit   float64               `json:"benefit"`
}

// stepCategory groups structures for phase/signal weighting.
type stepCategory uint8

const (
	categoryEconomic stepCategory = iota
	categoryMilitary
	categoryDefensive
	categoryMagic
	categoryCovert
)

var structureCategories = [kingdom.NumStructures]stepCategory{
	kingdom.StructHomes:       categoryEconomic,
	kingdom.StructFarms:       categoryEconomic,
	kingdom.StructBarracks:    categoryMilitary,
	kingdom.StructTemples:     categoryMagic,
	kingdom.StructForts:       categoryDefensive,
	kingdom.StructThievesDens: categoryCovert,
	kingdom.StructMarkets:     categoryEconomic,
	kingdom.StructCastle:      categoryDefensive,
}

// raceTemplates holds each race's ordered construction template. Priorities
// are pre-signal baselines; costs are per step (a batch of structures).
var raceTemplates = [kingdom.NumRaces][]BuildStep{
	kingdom.RaceHuman: {
		{Structure: kingdom.StructFarms, Count: 10, Priority: 80, GoldCost: 8000, TurnCost: 2, Benefit: 60},
		{Structure: kingdom.StructHomes, Count: 10, Priority: 75, GoldCost: 7000, TurnCost: 2, Benefit: 55},
		{Structure: kingdom.StructMarkets, Count: 5, Priority: 70, GoldCost: 9000, TurnCost: 2, Benefit: 65},
		{Structure: kingdom.StructBarracks, Count: 5, Priority: 60, GoldCost: 10000, TurnCost: 3, Benefit: 50},
		{Structure: kingdom.StructForts, Count: 3, Priority: 50, GoldCost: 12000, TurnCost: 3, Benefit: 45},
		{Structure: kingdom.StructTemples, Count: 3, Priority: 40, GoldCost: 9000, TurnCost: 2, Benefit: 35},
	},
	kingdom.RaceElven: {
		{Structure: kingdom.StructTemples, Count: 6, Priority: 85, GoldCost: 10000, TurnCost: 2, Benefit: 70},
		{Structure: kingdom.StructFarms, Count: 8, Priority: 75, GoldCost: 7000, TurnCost: 2, Benefit: 55},
		{Structure: kingdom.StructHomes, Count: 8, Priority: 70, GoldCost: 6500, TurnCost: 2, Benefit: 50},
		{Structure: kingdom.StructForts, Count: 3, Priority: 55, GoldCost: 11000, TurnCost: 3, Benefit: 45},
		{Structure: kingdom.StructBarracks, Count: 4, Priority: 45, GoldCost: 9500, TurnCost: 3, Benefit: 40},
	},
	kingdom.RaceDwarven: {
		{Structure: kingdom.StructForts, Count: 5, Priority: 85, GoldCost: 11000, TurnCost: 3, Benefit: 70},
		{Structure: kingdom.StructFarms, Count: 8, Priority: 75, GoldCost: 7500, TurnCost: 2, Benefit: 55},
		{Structure: kingdom.StructHomes, Count: 8, Priority: 70, GoldCost: 7000, TurnCost: 2, Benefit: 50},
		{Structure: kingdom.StructBarracks, Count: 5, Priority: 65, GoldCost: 10000, TurnCost: 3, Benefit: 55},
		{Structure: kingdom.StructMarkets, Count: 4, Priority: 55, GoldCost: 8500, TurnCost: 2, Benefit: 50},
	},
	kingdom.RaceDroben: {
		{Structure: kingdom.StructBarracks, Count: 8, Priority: 90, GoldCost: 10000, TurnCost: 3, Benefit: 75},
		{Structure: kingdom.StructFarms, Count: 8, Priority: 70, GoldCost: 7500, TurnCost: 2, Benefit: 50},
		{Structure: kingdom.StructHomes, Count: 6, Priority: 60, GoldCost: 6500, TurnCost: 2, Benefit: 45},
		{Structure: kingdom.StructForts, Count: 2, Priority: 40, GoldCost: 12000, TurnCost: 3, Benefit: 35},
	},
	kingdom.RaceGoblin: {
		{Structure: kingdom.StructThievesDens, Count: 6, Priority: 85, GoldCost: 8000, TurnCost: 2, Benefit: 65},
		{Structure: kingdom.StructHomes, Count: 10, Priority: 75, GoldCost: 5500, TurnCost: 2, Benefit: 55},
		{Structure: kingdom.StructFarms, Count: 8, Priority: 70, GoldCost: 6500, TurnCost: 2, Benefit: 50},
		{Structure: kingdom.StructBarracks, Count: 5, Priority: 55, GoldCost: 9000, TurnCost: 3, Benefit: 45},
	},
	kingdom.RaceTroll: {
		{Structure: kingdom.StructBarracks, Count: 7, Priority: 85, GoldCost: 11000, TurnCost: 3, Benefit: 70},
		{Structure: kingdom.StructFarms, Count: 10, Priority: 80, GoldCost: 8500, TurnCost: 2, Benefit: 60},
		{Structure: kingdom.StructForts, Count: 4, Priority: 60, GoldCost: 12500, TurnCost: 3, Benefit: 50},
		{Structure: kingdom.StructHomes, Count: 6, Priority: 50, GoldCost: 7000, TurnCost: 2, Benefit: 40},
	},
	kingdom.RaceVampire: {
		{Structure: kingdom.StructHomes, Count: 10, Priority: 85, GoldCost: 7000, TurnCost: 2, Benefit: 65},
		{Structure: kingdom.StructTemples, Count: 5, Priority: 75, GoldCost: 9500, TurnCost: 2, Benefit: 60},
		{Structure: kingdom.StructBarracks, Count: 5, Priority: 65, GoldCost: 10000, TurnCost: 3, Benefit: 55},
		{Structure: kingdom.StructFarms, Count: 6, Priority: 55, GoldCost: 7000, TurnCost: 2, Benefit: 45},
	},
	kingdom.RaceGnome: {
		{Structure: kingdom.StructMarkets, Count: 8, Priority: 90, GoldCost: 9000, TurnCost: 2, Benefit: 75},
		{Structure: kingdom.StructFarms, Count: 8, Priority: 75, GoldCost: 7000, TurnCost: 2, Benefit: 55},
		{Structure: kingdom.StructHomes, Count: 8, Priority: 70, GoldCost: 6000, TurnCost: 2, Benefit: 50},
		{Structure: kingdom.StructForts, Count: 3, Priority: 55, GoldCost: 11500, TurnCost: 3, Benefit: 45},
		{Structure: kingdom.StructTemples, Count: 3, Priority: 45, GoldCost: 9000, TurnCost: 2, Benefit: 35},
	},
}

// turnGoldWeight converts a turn of time into gold-equivalent cost for
// efficiency comparisons.
const turnGoldWeight = 1000

// BuildOrder produces the kingdom's construction priority queue: the race
// template filtered to affordable steps, re-weighted by phase and signals,
// ordered by priority descending with efficiency as the tie-break.
func BuildOrder(k *kingdom.Kingdom, phase GamePhase, sig Signals) []BuildStep {
	template := raceTemplates[kingdom.RaceHuman]
	if k.Race.Valid() {
		template = raceTemplates[k.Race]
	}

	var steps []BuildStep
	for _, step := range template {
		if step.GoldCost > k.Resources.Gold {
			continue // Unaffordable steps are omitted, not errors.
		}

		cat := structureCategories[step.Structure]

		// Phase weighting: early game favors economy, late game favors
		// military.
		switch phase {
		case PhaseEarly:
			if cat == categoryEconomic {
				step.Priority *= 1.3
			}
		case PhaseLate:
			if cat == categoryMilitary {
				step.Priority *= 1.4
			}
		}

		// Signal weighting: defense under threat, economy under resource
		// pressure.
		if sig.Threat >= 0.7 && cat == categoryDefensive {
			step.Priority *= 1.5
		}
		if sig.ResourcePressure >= 0.7 && cat == categoryEconomic {
			step.Priority *= 1.4
		}

		steps = append(steps, step)
	}

	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].Priority != steps[j].Priority {
			return steps[i].Priority > steps[j].Priority
		}
		return efficiency(steps[i]) > efficiency(steps[j])
	})
	return steps
}

// efficiency is benefit per gold-equivalent cost, with turns converted at
// turnGoldWeight.
func efficiency(s BuildStep) float64 {
	cost := float64(s.GoldCost) + float64(s.TurnCost)*turnGoldWeight
	if cost <= 0 {
		return 0
	}
	return s.Benefit / cost
}
