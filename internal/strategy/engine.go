// Package strategy turns kingdom state and personality into ranked candidate
// actions. The four candidate kinds are evaluated as a uniform ordered rule
// list; the list order (build, train, attack, defend) is the deterministic
// tie-break and must not change.
package strategy

import (
	"fmt"

	"github.com/talgya/throneworld/internal/kingdom"
	"github.com/talgya/throneworld/internal/mechanics"
	"github.com/talgya/throneworld/internal/personality"
)

// ActionType enumerates the candidate action kinds.
type ActionType uint8

const (
	ActionBuild ActionType = iota
	ActionTrain
	ActionAttack
	ActionDefend
)

var actionNames = [...]string{"build", "train", "attack", "defend"}

func (a ActionType) String() string {
	if int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Allocation is the resource commitment behind a decision.
type Allocation struct {
	Gold  uint64 `json:"gold"`
	Turns int    `json:"turns"`
}

// Decision is one ranked candidate action.
type Decision struct {
	Action     ActionType         `json:"action"`
	Priority   float64            `json:"priority"`
	Allocation Allocation         `json:"allocation"`
	Target     *kingdom.KingdomID `json:"target,omitempty"` // Attack only
	Reasoning  []string           `json:"reasoning"`
}

// Context is everything a rule needs to evaluate one kingdom's options.
type Context struct {
	Self        *kingdom.Kingdom
	World       []*kingdom.Kingdom // All kingdoms, self included
	Personality personality.Personality
	Tick        uint64

	// AttackCount looks up recorded attacks for war-risk scoring.
	AttackCount func(attacker, defender kingdom.KingdomID) int
}

// MinAttackTurns is the stored-turn floor before an attack candidate is
// considered at all.
const MinAttackTurns = 4

// MinAttackSuccess filters attack targets to those worth the turns.
const MinAttackSuccess = 0.7

// rule pairs a candidate kind with its evaluator. An evaluator returns
// false to omit the candidate (insufficient resources are omissions, not
// errors).
type rule struct {
	action   ActionType
	evaluate func(ctx *Context) (Decision, bool)
}

// candidateRules is the fixed evaluation order. Earlier rules win priority
// ties, which pins the build > train > attack > defend tie-break.
var candidateRules = []rule{
	{ActionBuild, evaluateBuild},
	{ActionTrain, evaluateTrain},
	{ActionAttack, evaluateAttack},
	{ActionDefend, evaluateDefend},
}

// Candidates evaluates every rule and returns the produced decisions in
// rule order. At most four.
func Candidates(ctx *Context) []Decision {
	var out []Decision
	for _, r := range candidateRules {
		if d, ok := r.evaluate(ctx); ok {
			d.Action = r.action
			out = append(out, d)
		}
	}
	return out
}

// Decide picks the maximum-priority candidate. Ties keep the earlier rule,
// preserving the fixed tie-break order. Returns false when no candidate
// qualifies.
func Decide(ctx *Context) (Decision, bool) {
	candidates := Candidates(ctx)
	if len(candidates) == 0 {
		return Decision{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority > best.Priority {
			best = c
		}
	}
	return best, true
}

func evaluateBuild(ctx *Context) (Decision, bool) {
	steps := BuildOrder(ctx.Self, PhaseForTick(ctx.Tick), ReadSignals(ctx))
	if len(steps) == 0 {
		return Decision{}, false
	}

	traits := ctx.Personality.Traits
	gold := ctx.Self.Resources.Gold
	land := ctx.Self.Resources.Land

	// Gold piling up relative to land means construction is overdue.
	goldPressure := 0.0
	if land > 0 {
		goldPressure = float64(gold) / (float64(land) * 400)
	}
	if goldPressure > 2 {
		goldPressure = 2
	}

	priority := (traits[personality.TraitGreed]*0.5 + traits[personality.TraitExpansion]*0.5) * goldPressure

	top := steps[0]
	return Decision{
		Priority:   priority,
		Allocation: Allocation{Gold: top.GoldCost, Turns: top.TurnCost},
		Reasoning: []string{
			fmt.Sprintf("gold pressure %.2f with %d acres", goldPressure, land),
			fmt.Sprintf("next step: %d %s (priority %.1f)", top.Count, structureName(top.Structure), top.Priority),
		},
	}, gold >= top.GoldCost
}

func evaluateTrain(ctx *Context) (Decision, bool) {
	defs := kingdom.UnitTable(ctx.Self.Race)
	cheapest := defs[0].Cost
	for _, d := range defs {
		if d.Cost < cheapest {
			cheapest = d.Cost
		}
	}
	if ctx.Self.Resources.Gold < cheapest {
		return Decision{}, false
	}

	land := ctx.Self.Resources.Land
	if land <= 0 {
		return Decision{}, false
	}

	// Target a defensive density of 4 units per acre; urgency grows as the
	// army thins out.
	density := float64(ctx.Self.TotalUnits()) / float64(land)
	const targetDensity = 4.0
	shortfall := (targetDensity - density) / targetDensity
	if shortfall < 0 {
		shortfall = 0
	}

	traits := ctx.Personality.Traits
	priority := (traits[personality.TraitCaution]*0.6 + traits[personality.TraitAggression]*0.4) * shortfall * 2

	budget := ctx.Self.Resources.Gold / 2
	return Decision{
		Priority:   priority,
		Allocation: Allocation{Gold: budget},
		Reasoning: []string{
			fmt.Sprintf("army density %.2f/acre against target %.1f", density, targetDensity),
		},
	}, true
}

func evaluateAttack(ctx *Context) (Decision, bool) {
	if ctx.Self.Resources.Turns < MinAttackTurns {
		return Decision{}, false
	}

	analyses := AnalyzeTargets(ctx)

	// Keep viable targets only, ordered by land-per-turn efficiency.
	best := -1
	for i, a := range analyses {
		if a.Prediction.SuccessProbability <= MinAttackSuccess {
			continue
		}
		if best < 0 || a.Prediction.Efficiency > analyses[best].Prediction.Efficiency {
			best = i
		}
	}
	if best < 0 {
		return Decision{}, false
	}

	pick := analyses[best]
	traits := ctx.Personality.Traits
	priority := traits[personality.TraitAggression] * (0.8 + pick.Prediction.Efficiency/10)

	target := pick.Target
	return Decision{
		Priority:   priority,
		Allocation: Allocation{Turns: pick.Prediction.TurnCost},
		Target:     &target,
		Reasoning: []string{
			fmt.Sprintf("best target %d: %.0f%% success, %.1f acres/turn", target, pick.Prediction.SuccessProbability*100, pick.Prediction.Efficiency),
		},
	}, true
}

func evaluateDefend(ctx *Context) (Decision, bool) {
	selfNW := ctx.Self.Networth()

	// Fires only when a rival both outweighs us (>0.8×) and holds the
	// turns to strike.
	var threat *kingdom.Kingdom
	for _, k := range ctx.World {
		if k.ID == ctx.Self.ID || ctx.Self.Allied(k.ID) {
			continue
		}
		if k.Networth() > selfNW*0.8 && k.Resources.Turns >= MinAttackTurns {
			if threat == nil || k.Networth() > threat.Networth() {
				threat = k
			}
		}
	}
	if threat == nil {
		return Decision{}, false
	}

	ratio := threat.Networth() / (selfNW + 1)
	traits := ctx.Personality.Traits
	priority := traits[personality.TraitCaution] * ratio * 0.9

	return Decision{
		Priority: priority,
		Reasoning: []string{
			fmt.Sprintf("%s looms at %.2fx our networth with %d turns banked", threat.Name, ratio, threat.Resources.Turns),
		},
	}, true
}

var structureDisplayNames = [kingdom.NumStructures]string{
	"homes", "farms", "barracks", "temples", "forts", "thieves' dens", "markets", "castle",
}

func structureName(st kingdom.StructureType) string {
	if int(st) >= kingdom.NumStructures {
		return "unknown"
	}
	return structureDisplayNames[st]
}

// PredictAttack estimates the outcome of attacking the target without
// resolving anything: predicted ratio, success probability, expected gains.
func PredictAttack(self, target *kingdom.Kingdom) Prediction {
	offense := mechanics.OffensePower(self)
	power := mechanics.DefensePower(target)

	tm := kingdom.Modifier(target.HomeTerrain)
	offense *= 1 + tm.OffenseDelta/100
	power *= 1 + tm.DefenseDelta/100

	var ratio float64
	if power <= 0 {
		ratio = 10
	} else {
		ratio = offense / power
	}

	p := Prediction{
		OffenseRatio:       ratio,
		SuccessProbability: successProbability(ratio),
		TurnCost:           mechanics.TurnCost(self.Networth(), target.Networth()),
	}

	// Expected land uses the midpoint of the predicted outcome band.
	switch {
	case ratio >= mechanics.WithEaseRatio:
		p.ExpectedLand = float64(target.Resources.Land) * 0.0718
		p.CasualtyRate = 0.05
	case ratio >= mechanics.GoodFightRatio:
		p.ExpectedLand = float64(target.Resources.Land) * 0.0690
		p.CasualtyRate = 0.15
	default:
		p.CasualtyRate = 0.25
	}
	p.ExpectedGold = p.ExpectedLand * mechanics.GoldPerAcre
	if p.TurnCost > 0 {
		p.Efficiency = p.ExpectedLand / float64(p.TurnCost)
	}
	return p
}

// successProbability maps a predicted offense ratio onto a win probability.
// Piecewise so each band is independently explainable.
func successProbability(ratio float64) float64 {
	switch {
	case ratio >= 2.5:
		return 0.95
	case ratio >= 2.0:
		return 0.90
	case ratio >= 1.5:
		return 0.80
	case ratio >= 1.2:
		return 0.72
	case ratio >= 1.0:
		return 0.50
	case ratio >= 0.8:
		return 0.30
	default:
		return 0.10
	}
}
