// Package mechanics provides the pure, stateless outcome calculators for
// combat, sorcery, thievery, and restoration. Nothing here touches shared
// state or performs I/O; every function is safe from any number of
// concurrent workers.
package mechanics

import (
	"errors"
	"math"

	"github.com/talgya/throneworld/internal/entropy"
	"github.com/talgya/throneworld/internal/kingdom"
)

// ErrInvalidInput is returned when a calculator receives missing or
// non-finite inputs. No partial results accompany it.
var ErrInvalidInput = errors.New("mechanics: invalid input")

// Outcome is the three-tier combat outcome classification.
type Outcome uint8

const (
	OutcomeWithEase Outcome = iota
	OutcomeGoodFight
	OutcomeFailed
)

var outcomeNames = [...]string{"with_ease", "good_fight", "failed"}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// CombatResult is the full resolution of one attack.
type CombatResult struct {
	Outcome            Outcome                `json:"outcome"`
	OffenseRatio       float64                `json:"offense_ratio"`
	AttackerCasualties [kingdom.NumTiers]int  `json:"attacker_casualties"`
	DefenderCasualties [kingdom.NumTiers]int  `json:"defender_casualties"`
	LandGained         int                    `json:"land_gained"`
	GoldLooted         uint64                 `json:"gold_looted"`
}

// TurnCost returns the turns an attack consumes, from the networth ratio
// defender/attacker. Hitting down (<0.5) costs 6, hitting up (>2.0) costs 8,
// a fair fight costs 4. Both mismatch directions cost extra.
func TurnCost(attackerNetworth, defenderNetworth float64) int {
	if attackerNetworth <= 0 {
		// Broke attacker punching at anything is punching up.
		return TurnCostPunchUp
	}
	ratio := defenderNetworth / attackerNetworth
	switch {
	case ratio < 0.5:
		return TurnCostPunchDown
	case ratio > 2.0:
		return TurnCostPunchUp
	default:
		return TurnCostFair
	}
}

// RequiresWarDeclaration reports whether the attack count has reached the
// point where continued attacks need a formal war declaration.
func RequiresWarDeclaration(attackCount int) bool {
	return attackCount >= WarDeclarationThreshold
}

// OffensePower computes a kingdom's raw offensive power from its units and
// racial multiplier.
func OffensePower(k *kingdom.Kingdom) float64 {
	defs := kingdom.UnitTable(k.Race)
	mult := kingdom.Stats(k.Race).Offense
	total := 0.0
	for tier, count := range k.Units {
		total += float64(count) * defs[tier].Offense
	}
	return total * mult
}

// DefensePower computes a kingdom's raw defensive power: units times racial
// multiplier, plus a flat contribution per fort.
func DefensePower(k *kingdom.Kingdom) float64 {
	defs := kingdom.UnitTable(k.Race)
	mult := kingdom.Stats(k.Race).Defense
	total := 0.0
	for tier, count := range k.Units {
		total += float64(count) * defs[tier].Defense
	}
	return total*mult + float64(k.Structures[kingdom.StructForts])*25
}

// ResolveCombat resolves one attack. The attacker's formation buffs offense,
// the defender's buffs defense; terrain reweights the attacker's offense per
// unit class and shifts defender power by a flat percentage. An active
// ambush slashes attacker offense by 95%.
//
// Casualties are computed per unit entry, weighted down for tougher units by
// their own defense stat, floored to integers, and never exceed the
// pre-battle count. Land and gold taken never exceed the defender's
// pre-battle holdings.
func ResolveCombat(attacker, defender *kingdom.Kingdom, atkFormation, defFormation kingdom.Formation, terrain kingdom.Terrain, rng entropy.Source) (CombatResult, error) {
	if attacker == nil || defender == nil || rng == nil {
		return CombatResult{}, ErrInvalidInput
	}
	if defender.Resources.Land < 0 {
		return CombatResult{}, ErrInvalidInput
	}

	tm := kingdom.Modifier(terrain)

	// Attacker offense: per-class terrain weighting, then flat terrain
	// delta, then formation bonus.
	atkDefs := kingdom.UnitTable(attacker.Race)
	atkMult := kingdom.Stats(attacker.Race).Offense
	offense := 0.0
	for tier, count := range attacker.Units {
		def := atkDefs[tier]
		offense += float64(count) * def.Offense * tm.ClassPenalty[def.Class]
	}
	offense *= atkMult
	offense *= 1 + tm.OffenseDelta/100
	offense *= 1 + atkFormation.Bonus().Offense/100

	if defender.AmbushActive {
		offense *= 1 - AmbushOffensePenalty
	}

	// Defender power: flat terrain delta plus formation bonus.
	power := DefensePower(defender)
	power *= 1 + tm.DefenseDelta/100
	power *= 1 + defFormation.Bonus().Defense/100

	var ratio float64
	if power <= 0 {
		ratio = overwhelmingRatio
	} else {
		ratio = offense / power
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = overwhelmingRatio
	}

	result := CombatResult{OffenseRatio: ratio}

	var atkRate, defRate, landPct float64
	switch {
	case ratio >= WithEaseRatio:
		result.Outcome = OutcomeWithEase
		atkRate, defRate = withEaseAtkRate, withEaseDefRate
		landPct = rng.Between(withEaseLandLo, withEaseLandHi)
	case ratio >= GoodFightRatio:
		result.Outcome = OutcomeGoodFight
		atkRate, defRate = goodFightAtkRate, goodFightDefRate
		landPct = rng.Between(goodFightLandLo, goodFightLandHi)
	default:
		result.Outcome = OutcomeFailed
		atkRate, defRate = failedAtkRate, failedDefRate
	}

	result.AttackerCasualties = casualties(attacker, atkRate)
	result.DefenderCasualties = casualties(defender, defRate)

	if landPct > 0 {
		land := int(math.Floor(float64(defender.Resources.Land) * landPct))
		if land > defender.Resources.Land {
			land = defender.Resources.Land
		}
		result.LandGained = land

		gold := uint64(land) * GoldPerAcre
		if gold > defender.Resources.Gold {
			gold = defender.Resources.Gold
		}
		result.GoldLooted = gold
	}

	return result, nil
}

// casualties computes per-tier losses at the given base rate. Tough units
// die slower: the rate is divided by 1 + defense/casualtyToughness.
func casualties(k *kingdom.Kingdom, baseRate float64) [kingdom.NumTiers]int {
	var losses [kingdom.NumTiers]int
	defs := kingdom.UnitTable(k.Race)
	for tier, count := range k.Units {
		if count <= 0 {
			continue
		}
		rate := baseRate / (1 + defs[tier].Defense/casualtyToughness)
		lost := int(math.Floor(float64(count) * rate))
		if lost < 0 {
			lost = 0
		}
		if lost > count {
			lost = count
		}
		losses[tier] = lost
	}
	return losses
}
