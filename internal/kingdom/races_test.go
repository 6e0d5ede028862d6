package kingdom

import "testing"

func TestParseRaceRoundTrip(t *testing.T) {
	for r := Race(0); r < NumRaces; r++ {
		parsed, ok := ParseRace(r.String())
		if !ok || parsed != r {
			t.Errorf("ParseRace(%q) = %v, %v", r.String(), parsed, ok)
		}
	}

	if _, ok := ParseRace("Orc"); ok {
		t.Error("ParseRace accepted an unknown race name")
	}
}

func TestRaceStringOutOfRange(t *testing.T) {
	if got := Race(99).String(); got != "Unknown" {
		t.Errorf("out-of-range race = %q, want Unknown", got)
	}
}

func TestStatsFallback(t *testing.T) {
	if got := Stats(Race(99)); got != raceStats[RaceHuman] {
		t.Errorf("invalid race stats = %+v, want the Human baseline", got)
	}
}

func TestStatsRacialIdentity(t *testing.T) {
	if Stats(RaceDroben).Offense <= Stats(RaceHuman).Offense {
		t.Error("droben offense should exceed the Human baseline")
	}
	if Stats(RaceElven).Magic <= Stats(RaceHuman).Magic {
		t.Error("elven magic should exceed the Human baseline")
	}
	if Stats(RaceDwarven).Defense <= Stats(RaceHuman).Defense {
		t.Error("dwarven defense should exceed the Human baseline")
	}
}

func TestUnitTablesComplete(t *testing.T) {
	for r := Race(0); r < NumRaces; r++ {
		table := UnitTable(r)
		for tier, def := range table {
			if def.Name == "" {
				t.Errorf("%s tier %d has no name", r, tier)
			}
			if def.Offense <= 0 && def.Defense <= 0 {
				t.Errorf("%s tier %d (%s) has no combat value", r, tier, def.Name)
			}
			if def.Networth <= 0 || def.Cost == 0 {
				t.Errorf("%s tier %d (%s) has no networth or cost", r, tier, def.Name)
			}
		}
	}
}

func TestUnitTableFallback(t *testing.T) {
	if got := UnitTable(Race(99)); got != unitTables[RaceHuman] {
		t.Error("invalid race unit table should fall back to Human")
	}
}
