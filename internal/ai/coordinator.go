// Package ai aggregates personality, strategy, targeting, and build
// optimization into one decision per AI kingdom per tick, with a confidence
// score and an ordered reasoning trail.
package ai

import (
	"fmt"

	"github.com/talgya/throneworld/internal/battle"
	"github.com/talgya/throneworld/internal/kingdom"
	"github.com/talgya/throneworld/internal/personality"
	"github.com/talgya/throneworld/internal/strategy"
)

// Position classifies where a kingdom stands in the networth ranking.
type Position uint8

const (
	PositionDominant Position = iota
	PositionCompetitive
	PositionStruggling
	PositionCritical
)

var positionNames = [...]string{"dominant", "competitive", "struggling", "critical"}

func (p Position) String() string {
	if int(p) >= len(positionNames) {
		return "unknown"
	}
	return positionNames[p]
}

// MarketCondition summarizes the threat/opportunity landscape.
type MarketCondition uint8

const (
	MarketQuiet MarketCondition = iota
	MarketBalanced
	MarketOpportune
	MarketHostile
)

var marketNames = [...]string{"quiet", "balanced", "opportune", "hostile"}

func (m MarketCondition) String() string {
	if int(m) >= len(marketNames) {
		return "unknown"
	}
	return marketNames[m]
}

// Decision is the coordinator's complete per-tick output for one kingdom.
type Decision struct {
	Kingdom    kingdom.KingdomID        `json:"kingdom"`
	Tick       uint64                   `json:"tick"`
	Phase      strategy.GamePhase       `json:"phase"`
	Position   Position                 `json:"position"`
	Market     MarketCondition          `json:"market"`
	Action     strategy.Decision        `json:"action"`
	TopTarget  *strategy.TargetAnalysis `json:"top_target,omitempty"`
	Confidence float64                  `json:"confidence"`
	Reasoning  []string                 `json:"reasoning"`
}

// Coordinator wires the decision layers together. All state it touches is
// owned by the simulation handle that constructed it.
type Coordinator struct {
	Personalities *personality.Cache
	Ledger        *battle.Ledger
}

// NewCoordinator creates a coordinator over the given shared state.
func NewCoordinator(cache *personality.Cache, ledger *battle.Ledger) *Coordinator {
	return &Coordinator{Personalities: cache, Ledger: ledger}
}

// Decide produces the kingdom's decision for this tick. The reasoning trail
// is always non-empty.
func (c *Coordinator) Decide(self *kingdom.Kingdom, world []*kingdom.Kingdom, tick uint64) Decision {
	phase := strategy.PhaseForTick(tick)
	pers := c.Personalities.Get(self.ID, self.Race)

	selfNW := self.Networth()
	threats, opportunities := 0, 0
	rank, total := 1, 0
	for _, k := range world {
		total++
		if k.ID == self.ID {
			continue
		}
		nw := k.Networth()
		if nw > selfNW {
			rank++
		}
		if nw > selfNW*1.2 {
			threats++
		} else if nw >= selfNW*0.3 && nw < selfNW*0.8 {
			opportunities++
		}
	}

	position := classifyPosition(rank, total)
	market := classifyMarket(threats, opportunities)

	reasoning := []string{
		fmt.Sprintf("%s phase, tick %d", phase, tick),
		fmt.Sprintf("position %s (rank %d of %d), market %s", position, rank, total, market),
		fmt.Sprintf("%d threats, %d opportunities", threats, opportunities),
		fmt.Sprintf("persona %s/%s", pers.Persona, pers.Playstyle),
	}

	ctx := &strategy.Context{
		Self:        self,
		World:       world,
		Personality: pers,
		Tick:        tick,
		AttackCount: c.Ledger.AttackCount,
	}

	decision := Decision{
		Kingdom:  self.ID,
		Tick:     tick,
		Phase:    phase,
		Position: position,
		Market:   market,
	}

	action, ok := strategy.Decide(ctx)
	if !ok {
		// Nothing affordable or worth doing; hold and accumulate.
		action = strategy.Decision{
			Action:    strategy.ActionDefend,
			Reasoning: []string{"no viable candidate actions; holding position"},
		}
	}
	decision.Action = action
	reasoning = append(reasoning, action.Reasoning...)
	reasoning = append(reasoning, fmt.Sprintf("chose %s (priority %.2f)", action.Action, action.Priority))

	if action.Action == strategy.ActionAttack && action.Target != nil {
		analyses := strategy.AnalyzeTargets(ctx)
		for i := range analyses {
			if analyses[i].Target == *action.Target {
				decision.TopTarget = &analyses[i]
				break
			}
		}
	}

	decision.Confidence = confidence(&decision, ok)
	decision.Reasoning = reasoning
	return decision
}

// confidence starts at 0.5 and is nudged by action priority, target
// quality, position, and market, then clamped to [0.1, 1.0].
func confidence(d *Decision, hadCandidate bool) float64 {
	conf := 0.5

	switch {
	case !hadCandidate:
		conf -= 0.2
	case d.Action.Priority >= 1.5:
		conf += 0.2
	case d.Action.Priority >= 1.0:
		conf += 0.1
	case d.Action.Priority < 0.5:
		conf -= 0.1
	}

	if d.TopTarget != nil {
		switch d.TopTarget.Recommendation {
		case strategy.RecommendPrime:
			conf += 0.2
		case strategy.RecommendGood:
			conf += 0.1
		case strategy.RecommendRisky:
			conf -= 0.1
		case strategy.RecommendAvoid:
			conf -= 0.2
		}
	}

	switch d.Position {
	case PositionDominant:
		conf += 0.1
	case PositionStruggling:
		conf -= 0.1
	case PositionCritical:
		conf -= 0.2
	}

	switch d.Market {
	case MarketOpportune:
		conf += 0.1
	case MarketHostile:
		conf -= 0.1
	}

	if conf < 0.1 {
		conf = 0.1
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func classifyPosition(rank, total int) Position {
	if total <= 1 {
		return PositionDominant
	}
	pct := float64(rank) / float64(total)
	switch {
	case pct <= 0.25:
		return PositionDominant
	case pct <= 0.6:
		return PositionCompetitive
	case pct <= 0.9:
		return PositionStruggling
	default:
		return PositionCritical
	}
}

func classifyMarket(threats, opportunities int) MarketCondition {
	switch {
	case threats == 0 && opportunities == 0:
		return MarketQuiet
	case threats >= 2 && threats > opportunities:
		return MarketHostile
	case opportunities >= 2 && opportunities > threats:
		return MarketOpportune
	default:
		return MarketBalanced
	}
}
