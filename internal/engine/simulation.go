// Simulation ties the decision layers together and owns all mutable world
// state. Nothing here is package-level: two simulations never share a
// personality cache, war ledger, or random source.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/throneworld/internal/ai"
	"github.com/talgya/throneworld/internal/battle"
	"github.com/talgya/throneworld/internal/entropy"
	"github.com/talgya/throneworld/internal/kingdom"
	"github.com/talgya/throneworld/internal/mechanics"
	"github.com/talgya/throneworld/internal/personality"
	"github.com/talgya/throneworld/internal/strategy"
)

// Event is a notable occurrence in the world.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "battle", "war", "build", "protection"
}

// SimStats tracks aggregate world statistics.
type SimStats struct {
	Kingdoms      int     `json:"kingdoms"`
	TotalNetworth float64 `json:"total_networth"`
	TotalLand     int     `json:"total_land"`
	Battles       int     `json:"battles"`
	ActiveWars    int     `json:"active_wars"`
}

// Simulation holds the complete world state and wires systems together.
type Simulation struct {
	Seed     int64
	Kingdoms []*kingdom.Kingdom
	Index    map[kingdom.KingdomID]*kingdom.Kingdom

	Personalities *personality.Cache
	Ledger        *battle.Ledger
	Battles       *battle.Simulator
	Coordinator   *ai.Coordinator
	RNG           entropy.Source

	LastTick      uint64
	LastDecisions map[kingdom.KingdomID]ai.Decision
	Events        []Event
	Stats         SimStats
}

// NewSimulation wires a simulation around the given kingdoms and seed.
func NewSimulation(seed int64, kingdoms []*kingdom.Kingdom) *Simulation {
	index := make(map[kingdom.KingdomID]*kingdom.Kingdom, len(kingdoms))
	for _, k := range kingdoms {
		index[k.ID] = k
	}

	rng := entropy.NewSeeded(seed)
	cache := personality.NewCache()
	ledger := battle.NewLedger()

	sim := &Simulation{
		Seed:          seed,
		Kingdoms:      kingdoms,
		Index:         index,
		Personalities: cache,
		Ledger:        ledger,
		Battles:       battle.NewSimulator(ledger, rng),
		Coordinator:   ai.NewCoordinator(cache, ledger),
		RNG:           rng,
		LastDecisions: make(map[kingdom.KingdomID]ai.Decision),
	}
	sim.updateStats()
	return sim
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

var kingdomNames = []string{
	"Ironhold", "Silvermere", "Thornwall", "Blackfen", "Duskwatch",
	"Embercrest", "Stonereach", "Wyrmgard", "Ashenvale", "Frostmark",
	"Goldspire", "Ravenmoor", "Stormkeep", "Mirefold", "Sunhollow",
	"Grimwater", "Oakenshield", "Palewind", "Redbarrow", "Vexhaven",
}

// GenerateKingdoms creates n AI kingdoms deterministically from the seed:
// names, races, home terrain, and starting holdings all replay exactly.
func GenerateKingdoms(seed int64, n int) []*kingdom.Kingdom {
	rng := entropy.NewSeeded(seed + 17)

	kingdoms := make([]*kingdom.Kingdom, 0, n)
	for i := 0; i < n; i++ {
		race := kingdom.Race(rng.Intn(kingdom.NumRaces))

		name := kingdomNames[i%len(kingdomNames)]
		if i >= len(kingdomNames) {
			name = fmt.Sprintf("%s %d", name, i/len(kingdomNames)+1)
		}

		k := &kingdom.Kingdom{
			ID:   kingdom.KingdomID(i + 1),
			Name: name,
			Race: race,
			Resources: kingdom.Resources{
				Gold:       20000,
				Land:       400,
				Population: 2000,
				Mana:       50,
				Turns:      20,
			},
			Scum:        20,
			Alliances:   make(map[kingdom.KingdomID]struct{}),
			HomeTerrain: kingdom.AssignTerrain(seed, i),
			AI:          true,
		}
		k.Structures[kingdom.StructHomes] = 40
		k.Structures[kingdom.StructFarms] = 30
		k.Structures[kingdom.StructBarracks] = 15
		k.Structures[kingdom.StructTemples] = 8
		k.Structures[kingdom.StructForts] = 5
		k.Structures[kingdom.StructThievesDens] = 4
		k.Structures[kingdom.StructMarkets] = 6
		k.Structures[kingdom.StructCastle] = 1
		k.Units = [kingdom.NumTiers]int{300, 150, 60, 20}

		kingdoms = append(kingdoms, k)
	}
	return kingdoms
}

// TickTurn advances the world one tick: income accrues, then every AI
// kingdom gets one coordinated decision, applied immediately.
func (s *Simulation) TickTurn(tick uint64) {
	s.LastTick = tick

	for _, k := range s.Kingdoms {
		s.accrue(k)
	}

	for _, k := range s.Kingdoms {
		if !k.AI || k.Resources.Land <= 0 {
			continue
		}
		decision := s.Coordinator.Decide(k, s.Kingdoms, tick)
		s.LastDecisions[k.ID] = decision
		s.apply(tick, k, decision)
	}

	s.updateStats()

	// Trim old events to prevent unbounded growth (keep last 500).
	if len(s.Events) > 500 {
		s.Events = s.Events[len(s.Events)-500:]
	}
}

// accrue applies per-tick income: gold from land and markets, mana from
// temples, one stored turn.
func (s *Simulation) accrue(k *kingdom.Kingdom) {
	econ := kingdom.Stats(k.Race).Economy
	income := float64(k.Resources.Land*20+k.Structures[kingdom.StructMarkets]*500) * econ
	k.Resources.Gold += uint64(income)

	k.Resources.Mana += k.Structures[kingdom.StructTemples]
	if k.Resources.Turns < 100 {
		k.Resources.Turns++
	}

	// Population drifts toward housing capacity.
	capacity := k.Structures[kingdom.StructHomes]*60 + k.Resources.Land*5
	if k.Resources.Population < capacity {
		growth := (capacity - k.Resources.Population) / 50
		if growth < 1 {
			growth = 1
		}
		k.Resources.Population += growth
	}
}

// apply executes one decision's effects.
func (s *Simulation) apply(tick uint64, k *kingdom.Kingdom, d ai.Decision) {
	switch d.Action.Action {
	case strategy.ActionBuild:
		s.applyBuild(tick, k)
	case strategy.ActionTrain:
		s.applyTrain(k, d.Action.Allocation.Gold)
	case strategy.ActionAttack:
		s.applyAttack(tick, k, d)
	case strategy.ActionDefend:
		// Dig in: troops lie in wait for the next attacker.
		k.AmbushActive = true
	}
}

func (s *Simulation) applyBuild(tick uint64, k *kingdom.Kingdom) {
	steps := strategy.BuildOrder(k, strategy.PhaseForTick(tick), strategy.Signals{})
	if len(steps) == 0 {
		return
	}
	step := steps[0]
	if step.GoldCost > k.Resources.Gold || step.TurnCost > k.Resources.Turns {
		return
	}
	k.Resources.Gold -= step.GoldCost
	k.Resources.Turns -= step.TurnCost
	k.Structures[step.Structure] += step.Count

	s.Events = append(s.Events, Event{
		Tick:        tick,
		Description: fmt.Sprintf("%s raises %d new structures", k.Name, step.Count),
		Category:    "build",
	})
}

// applyTrain spends the budget on units. The tier is rolled through the
// simulation's entropy source; unaffordable rolls fall back down the tiers.
func (s *Simulation) applyTrain(k *kingdom.Kingdom, budget uint64) {
	if budget > k.Resources.Gold {
		budget = k.Resources.Gold
	}
	defs := kingdom.UnitTable(k.Race)

	tier := s.RNG.Intn(kingdom.NumTiers)
	for tier > 0 && defs[tier].Cost > budget {
		tier--
	}
	cost := defs[tier].Cost
	if cost == 0 || cost > budget {
		return
	}

	count := int(budget / cost)
	if count <= 0 {
		return
	}
	k.Resources.Gold -= uint64(count) * cost
	k.Units[tier] += count
}

func (s *Simulation) applyAttack(tick uint64, k *kingdom.Kingdom, d ai.Decision) {
	if d.Action.Target == nil {
		return
	}
	target, ok := s.Index[*d.Action.Target]
	if !ok {
		return
	}

	atkForm, defForm := s.formations(k, target)
	result, err := s.Battles.Attack(tick, k, target, atkForm, defForm)
	if err != nil {
		slog.Debug("attack rejected", "attacker", k.Name, "defender", target.Name, "error", err)
		return
	}

	// An ambush is sprung once, then spent.
	target.AmbushActive = false

	s.Events = append(s.Events, Event{
		Tick: tick,
		Description: fmt.Sprintf("%s strikes %s: %s, %d acres taken",
			k.Name, target.Name, result.Outcome, result.LandGained),
		Category: "battle",
	})

	// AI attackers declare promptly when the ledger demands it.
	if mechanics.RequiresWarDeclaration(s.Ledger.AttackCount(k.ID, target.ID)) {
		if s.Ledger.DeclareWar(k.ID, target.ID) {
			s.Events = append(s.Events, Event{
				Tick:        tick,
				Description: fmt.Sprintf("%s declares war on %s", k.Name, target.Name),
				Category:    "war",
			})
		}
	}
}

// formations picks each side's stance from personality: aggressive attackers
// lead with a wedge, cautious defenders wall up.
func (s *Simulation) formations(attacker, defender *kingdom.Kingdom) (kingdom.Formation, kingdom.Formation) {
	atk := s.Personalities.Get(attacker.ID, attacker.Race)
	def := s.Personalities.Get(defender.ID, defender.Race)

	atkForm := kingdom.FormationSkirmish
	if atk.Traits[personality.TraitAggression] > 1.3 {
		atkForm = kingdom.FormationWedge
	}

	defForm := kingdom.FormationNone
	if def.Traits[personality.TraitCaution] > 1.3 {
		defForm = kingdom.FormationShieldWall
	} else if def.Traits[personality.TraitCaution] > 1.0 {
		defForm = kingdom.FormationPhalanx
	}
	return atkForm, defForm
}

// Leader returns the kingdom with the highest networth, or nil for an empty
// world.
func (s *Simulation) Leader() *kingdom.Kingdom {
	var best *kingdom.Kingdom
	for _, k := range s.Kingdoms {
		if best == nil || k.Networth() > best.Networth() {
			best = k
		}
	}
	return best
}

func (s *Simulation) updateStats() {
	stats := SimStats{}
	for _, k := range s.Kingdoms {
		stats.Kingdoms++
		stats.TotalNetworth += k.Networth()
		stats.TotalLand += k.Resources.Land
	}
	stats.Battles = s.Battles.History.Len()
	stats.ActiveWars = len(s.Ledger.Wars())
	s.Stats = stats
}
