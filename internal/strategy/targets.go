// Target selection — every potential attack target scored by predicted
// outcome, strategic value, and risk.
package strategy

import (
	"sort"

	"github.com/talgya/throneworld/internal/kingdom"
)

// Prediction estimates the outcome of one attack before it happens.
type Prediction struct {
	OffenseRatio       float64 `json:"offense_ratio"`
	SuccessProbability float64 `json:"success_probability"`
	ExpectedLand       float64 `json:"expected_land"`
	ExpectedGold       float64 `json:"expected_gold"`
	TurnCost           int     `json:"turn_cost"`
	Efficiency         float64 `json:"efficiency"` // Expected acres per turn
	CasualtyRate       float64 `json:"casualty_rate"`
}

// StrategicValue scores what taking the target is worth, each component on
// a 0–100 scale.
type StrategicValue struct {
	ThreatLevel   float64 `json:"threat_level"`
	ResourceValue float64 `json:"resource_value"`
	PositionValue float64 `json:"position_value"`
}

// Risk scores what the attack could cost beyond casualties.
type Risk struct {
	WarDeclarationRisk bool    `json:"war_declaration_risk"` // Next strikes force a declaration
	RetaliationRisk    float64 `json:"retaliation_risk"`     // 0–100, scales with their networth
	LossRisk           float64 `json:"loss_risk"`            // 0–100, inverse of success probability
}

// Recommendation buckets a target analysis.
type Recommendation uint8

const (
	RecommendPrime Recommendation = iota
	RecommendGood
	RecommendRisky
	RecommendAvoid
)

var recommendationNames = [...]string{"prime", "good", "risky", "avoid"}

func (r Recommendation) String() string {
	if int(r) >= len(recommendationNames) {
		return "unknown"
	}
	return recommendationNames[r]
}

// TargetAnalysis is the full scoring of one candidate target.
type TargetAnalysis struct {
	Target         kingdom.KingdomID `json:"target"`
	Prediction     Prediction     `json:"prediction"`
	Strategic      StrategicValue `json:"strategic"`
	Risk           Risk           `json:"risk"`
	OverallScore   float64        `json:"overall_score"`
	Recommendation Recommendation `json:"recommendation"`
}

// AnalyzeTargets scores every attackable kingdom for the context's self.
// Allies, protected kingdoms, and self are excluded. Results come back
// sorted strictly descending by overall score (ties broken by target ID so
// ordering is deterministic).
func AnalyzeTargets(ctx *Context) []TargetAnalysis {
	self := ctx.Self
	selfNW := self.Networth()

	var analyses []TargetAnalysis
	for _, target := range ctx.World {
		if target.ID == self.ID || self.Allied(target.ID) {
			continue
		}
		if target.Protection.ActiveAt(ctx.Tick) {
			continue
		}

		pred := PredictAttack(self, target)
		targetNW := target.Networth()

		ratio := 0.0
		if selfNW > 0 {
			ratio = targetNW / selfNW
		}

		strat := StrategicValue{
			ThreatLevel:   clamp(ratio*50, 0, 100),
			ResourceValue: clamp(ratio*50, 0, 100),
			PositionValue: positionValue(ratio),
		}

		attacks := 0
		if ctx.AttackCount != nil {
			attacks = ctx.AttackCount(self.ID, target.ID)
		}

		risk := Risk{
			WarDeclarationRisk: attacks >= 2,
			RetaliationRisk:    clamp(ratio*60, 0, 100),
			LossRisk:           (1 - pred.SuccessProbability) * 100,
		}

		score := overallScore(pred, strat, risk)

		analyses = append(analyses, TargetAnalysis{
			Target:         target.ID,
			Prediction:     pred,
			Strategic:      strat,
			Risk:           risk,
			OverallScore:   score,
			Recommendation: recommend(score, pred),
		})
	}

	sort.Slice(analyses, func(i, j int) bool {
		if analyses[i].OverallScore != analyses[j].OverallScore {
			return analyses[i].OverallScore > analyses[j].OverallScore
		}
		return analyses[i].Target < analyses[j].Target
	})
	return analyses
}

// overallScore blends the components:
// 0.40·efficiencyNorm + 0.30·success·100 + 0.15·(threat+resource)
// − 0.10·(retaliation+loss), with a flat −20 when another strike forces a
// war declaration and the attack is not near-certain.
func overallScore(pred Prediction, strat StrategicValue, risk Risk) float64 {
	effNorm := clamp(pred.Efficiency*20, 0, 100)

	score := 0.40*effNorm +
		0.30*pred.SuccessProbability*100 +
		0.15*(strat.ThreatLevel+strat.ResourceValue) -
		0.10*(risk.RetaliationRisk+risk.LossRisk)

	if risk.WarDeclarationRisk && pred.SuccessProbability < 0.9 {
		score -= 20
	}
	return score
}

func recommend(score float64, pred Prediction) Recommendation {
	switch {
	case score >= 70 && pred.Efficiency >= 2:
		return RecommendPrime
	case score >= 50 && pred.SuccessProbability >= 0.7:
		return RecommendGood
	case score >= 30:
		return RecommendRisky
	default:
		return RecommendAvoid
	}
}

// positionValue peaks for targets just under our own weight — big enough to
// matter, small enough to beat.
func positionValue(networthRatio float64) float64 {
	const sweetSpot = 0.6
	dist := networthRatio - sweetSpot
	if dist < 0 {
		dist = -dist
	}
	return clamp(100-dist*120, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
