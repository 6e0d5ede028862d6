package personality

import (
	"math"
	"testing"

	"github.com/talgya/throneworld/internal/kingdom"
)

func TestGenerateDeterministic(t *testing.T) {
	for id := kingdom.KingdomID(1); id <= 50; id++ {
		race := kingdom.Race(uint64(id) % kingdom.NumRaces)
		first := Generate(id, race)
		second := Generate(id, race)
		if first != second {
			t.Fatalf("kingdom %d: repeated generation diverged:\n%+v\n%+v", id, first, second)
		}
	}
}

func TestGenerateTraitsAlwaysClamped(t *testing.T) {
	for race := kingdom.Race(0); race < kingdom.NumRaces; race++ {
		for persona := Persona(0); persona < NumPersonas; persona++ {
			for style := Playstyle(0); style < NumPlaystyles; style++ {
				p := GenerateWith(1, race, persona, style)
				for trait, v := range p.Traits {
					if v < TraitMin || v > TraitMax {
						t.Errorf("%s/%s/%s trait %s = %.3f outside [%.1f, %.1f]",
							race, persona, style, Trait(trait), v, TraitMin, TraitMax)
					}
				}
			}
		}
	}
}

func TestAggressionContrast(t *testing.T) {
	// Droben berserkers stack 1.5 * 1.8 * 1.3 aggression, clamping at the
	// ceiling. Elven diplomats land at 0.8 * 0.7 * 0.8.
	berserker := GenerateWith(1, kingdom.RaceDroben, PersonaBerserker, PlayAggressive)
	diplomat := GenerateWith(2, kingdom.RaceElven, PersonaDiplomat, PlayDefensive)

	if berserker.Traits[TraitAggression] != TraitMax {
		t.Errorf("droben berserker aggression = %.3f, want clamped to %.1f",
			berserker.Traits[TraitAggression], TraitMax)
	}
	if math.Abs(diplomat.Traits[TraitAggression]-0.448) > 1e-9 {
		t.Errorf("elven diplomat aggression = %.3f, want 0.448", diplomat.Traits[TraitAggression])
	}
	if berserker.Traits[TraitAggression] <= diplomat.Traits[TraitAggression] {
		t.Error("droben berserker should be more aggressive than elven diplomat")
	}
}

func TestModifiersDerivedFromTraits(t *testing.T) {
	p := GenerateWith(1, kingdom.RaceDroben, PersonaBerserker, PlayAggressive)
	m := p.Modifiers()

	wantThreshold := 2.0 - p.Traits[TraitAggression]
	if m.AttackThreshold != wantThreshold {
		t.Errorf("attack threshold = %.3f, want %.3f", m.AttackThreshold, wantThreshold)
	}

	wantRisk := (p.Traits[TraitAggression] + p.Traits[TraitExpansion]) / 2
	if m.RiskTolerance != wantRisk {
		t.Errorf("risk tolerance = %.3f, want %.3f", m.RiskTolerance, wantRisk)
	}

	if m.GoldReserveRatio < 0 || m.GoldReserveRatio > 1 {
		t.Errorf("gold reserve ratio %.3f outside [0, 1]", m.GoldReserveRatio)
	}
}

func TestModifiersNeverStale(t *testing.T) {
	// Modifiers recompute from traits every call, so mutating a trait must
	// show up immediately.
	p := GenerateWith(1, kingdom.RaceHuman, PersonaMerchant, PlayBalanced)
	before := p.Modifiers().AttackThreshold

	p.Traits[TraitAggression] += 0.5
	after := p.Modifiers().AttackThreshold

	if math.Abs((before-after)-0.5) > 1e-9 {
		t.Errorf("attack threshold moved %.3f after +0.5 aggression, want -0.5", after-before)
	}
}

func TestTags(t *testing.T) {
	berserker := GenerateWith(1, kingdom.RaceDroben, PersonaBerserker, PlayAggressive)
	if !containsTag(berserker.Tags(), "warmonger") {
		t.Errorf("droben berserker tags = %v, want warmonger", berserker.Tags())
	}

	// Elven diplomat diplomacy: 1.3 * 1.6 * 1.1 = 2.288.
	diplomat := GenerateWith(2, kingdom.RaceElven, PersonaDiplomat, PlayDefensive)
	if !containsTag(diplomat.Tags(), "peacemaker") {
		t.Errorf("elven diplomat tags = %v, want peacemaker", diplomat.Tags())
	}

	balanced := GenerateWith(3, kingdom.RaceHuman, PersonaWarlord, PlayBalanced)
	if len(balanced.Tags()) != 0 {
		t.Errorf("human warlord earned tags %v, want none", balanced.Tags())
	}
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func TestGenerateWithUnknownInputsFallsBack(t *testing.T) {
	p := GenerateWith(1, kingdom.Race(99), Persona(99), Playstyle(99))
	for trait, v := range p.Traits {
		if v < TraitMin || v > TraitMax {
			t.Errorf("fallback trait %s = %.3f outside clamp range", Trait(trait), v)
		}
	}
}

func TestCacheIdempotent(t *testing.T) {
	cache := NewCache()

	first := cache.Get(7, kingdom.RaceVampire)
	second := cache.Get(7, kingdom.RaceVampire)

	if first != second {
		t.Error("cache returned different personalities for the same kingdom")
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", cache.Len())
	}

	cache.Get(8, kingdom.RaceGnome)
	if cache.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", cache.Len())
	}
}

func TestCacheMatchesDirectGeneration(t *testing.T) {
	cache := NewCache()
	if got, want := cache.Get(42, kingdom.RaceGoblin), Generate(42, kingdom.RaceGoblin); got != want {
		t.Errorf("cached personality differs from direct generation:\n%+v\n%+v", got, want)
	}
}
