// Restoration mechanics — protection grants after catastrophic damage.
package mechanics

import "github.com/talgya/throneworld/internal/kingdom"

// HoldingsSnapshot captures the fields restoration qualification compares
// before and after a hostile action.
type HoldingsSnapshot struct {
	Structures int
	Population int
	Castles    int
}

// SnapshotHoldings captures a kingdom's restoration-relevant state.
func SnapshotHoldings(k *kingdom.Kingdom) HoldingsSnapshot {
	return HoldingsSnapshot{
		Structures: k.Structures.Total(),
		Population: k.Resources.Population,
		Castles:    k.Structures[kingdom.StructCastle],
	}
}

// RestorationQualifies checks whether the damage between two snapshots earns
// protection. Death-based protection (72 ticks) applies when structures or
// population hit zero; damage-based protection (48 ticks) applies on ≥70%
// structure loss, ≥80% population loss, or a destroyed castle. Returns
// ProtectionNone and zero when nothing qualifies.
func RestorationQualifies(pre, post HoldingsSnapshot) (kingdom.ProtectionKind, uint64) {
	// Death-based: total elimination of structures or people.
	if post.Structures <= 0 || post.Population <= 0 {
		return kingdom.ProtectionDeath, DeathProtectionTicks
	}

	// Damage-based: catastrophic but survivable losses.
	if pre.Structures > 0 {
		loss := 1 - float64(post.Structures)/float64(pre.Structures)
		if loss >= StructureLossThreshold {
			return kingdom.ProtectionDamage, DamageProtectionTicks
		}
	}
	if pre.Population > 0 {
		loss := 1 - float64(post.Population)/float64(pre.Population)
		if loss >= PopulationLossThreshold {
			return kingdom.ProtectionDamage, DamageProtectionTicks
		}
	}
	if pre.Castles > 0 && post.Castles <= 0 {
		return kingdom.ProtectionDamage, DamageProtectionTicks
	}

	return kingdom.ProtectionNone, 0
}
