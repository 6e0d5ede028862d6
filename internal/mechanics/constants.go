// Balance constants for the mechanics formulas. Kept in one place so a
// balance pass touches a single file.
package mechanics

const (
	// Turn costs by networth ratio. Both directions of mismatch cost more
	// than a fair fight; the asymmetric penalty is deliberate.
	TurnCostFair     = 4
	TurnCostPunchDown = 6 // Defender under half the attacker's networth
	TurnCostPunchUp   = 8 // Defender over double the attacker's networth

	// WarDeclarationThreshold is the attack count at which continued
	// aggression requires a formal declaration.
	WarDeclarationThreshold = 3

	// AmbushOffensePenalty is the fraction of attacker offense lost when
	// walking into an active ambush.
	AmbushOffensePenalty = 0.95

	// GoldPerAcre is the loot taken per acre of land captured.
	GoldPerAcre = 500

	// overwhelmingRatio stands in for the offense ratio when the defender
	// has no effective power, so a zero denominator never propagates NaN.
	overwhelmingRatio = 1000.0

	// casualtyToughness divides a unit's defense stat when weighting
	// casualty rates down for tougher units.
	casualtyToughness = 10.0

	// AttackerMagicAdvantage is the multiplier on the caster's temple
	// strength in spell success contests.
	AttackerMagicAdvantage = 1.15

	// MinScumForDetection is the operative count below which a kingdom
	// detects nothing at all.
	MinScumForDetection = 10

	// DetectionCap bounds the detection rate so theft is never hopeless.
	DetectionCap = 0.95

	// TheftBaseAmount is the fixed ceiling on a single successful theft.
	TheftBaseAmount = 75000

	// TheftCashFraction caps theft at this fraction of the target's gold.
	TheftCashFraction = 0.10

	// Protection windows, in ticks (one tick = one game hour).
	DeathProtectionTicks  = 72
	DamageProtectionTicks = 48

	// Damage-based restoration thresholds.
	StructureLossThreshold  = 0.70
	PopulationLossThreshold = 0.80
)

// Outcome classification thresholds and their casualty/land bands.
const (
	WithEaseRatio  = 2.0
	GoodFightRatio = 1.2

	withEaseAtkRate  = 0.05
	withEaseDefRate  = 0.20
	goodFightAtkRate = 0.15
	goodFightDefRate = 0.15
	failedAtkRate    = 0.25
	failedDefRate    = 0.05

	withEaseLandLo  = 0.0700
	withEaseLandHi  = 0.0735
	goodFightLandLo = 0.0679
	goodFightLandHi = 0.0700
)
