// Thievery mechanics — scum detection contests and theft resolution.
package mechanics

import (
	"math"

	"github.com/talgya/throneworld/internal/entropy"
	"github.com/talgya/throneworld/internal/kingdom"
)

// DetectionRate returns the probability that the detecting side catches an
// incoming covert operation. Strength is operative count times racial
// effectiveness; the rate is the detector's share of combined strength,
// capped at DetectionCap and forced to zero below the minimum scum count.
func DetectionRate(ownScum int, ownRace kingdom.Race, enemyScum int, enemyRace kingdom.Race) float64 {
	if ownScum < MinScumForDetection {
		return 0
	}

	ownStrength := float64(ownScum) * kingdom.Stats(ownRace).Scum
	enemyStrength := float64(enemyScum) * kingdom.Stats(enemyRace).Scum

	total := ownStrength + enemyStrength
	if total <= 0 {
		return 0
	}

	rate := ownStrength / total
	if rate > DetectionCap {
		rate = DetectionCap
	}
	return rate
}

// TheftResult is the resolution of one theft attempt.
type TheftResult struct {
	Success    bool   `json:"success"`
	GoldStolen uint64 `json:"gold_stolen"`
	ScumLost   int    `json:"scum_lost"`
}

// TheftOutcome resolves a theft attempt by the thief's operatives against
// the target. Success probability is one minus the target's detection rate.
// A success steals min(TheftBaseAmount, 10% of target cash) with light
// operative losses; a failure steals nothing and costs more operatives.
func TheftOutcome(thiefScum int, thiefRace kingdom.Race, targetScum int, targetRace kingdom.Race, targetGold uint64, rng entropy.Source) TheftResult {
	if thiefScum <= 0 || rng == nil {
		return TheftResult{}
	}

	detection := DetectionRate(targetScum, targetRace, thiefScum, thiefRace)
	success := rng.Float64() >= detection

	if !success {
		lost := int(math.Ceil(float64(thiefScum) * 0.10))
		if lost > thiefScum {
			lost = thiefScum
		}
		return TheftResult{ScumLost: lost}
	}

	stolen := uint64(float64(targetGold) * TheftCashFraction)
	if stolen > TheftBaseAmount {
		stolen = TheftBaseAmount
	}
	if stolen > targetGold {
		stolen = targetGold
	}

	lost := thiefScum / 50 // Light losses even on a clean job.
	return TheftResult{Success: true, GoldStolen: stolen, ScumLost: lost}
}
