// Package persistence provides SQLite-based world state storage.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/throneworld/internal/battle"
	"github.com/talgya/throneworld/internal/engine"
	"github.com/talgya/throneworld/internal/kingdom"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kingdoms (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		race INTEGER NOT NULL,
		gold INTEGER NOT NULL,
		land INTEGER NOT NULL,
		population INTEGER NOT NULL,
		mana INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		scum INTEGER NOT NULL,
		ambush_active INTEGER NOT NULL,
		home_terrain INTEGER NOT NULL,
		ai INTEGER NOT NULL,
		structures_json TEXT NOT NULL,
		units_json TEXT NOT NULL,
		alliances_json TEXT NOT NULL,
		protection_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS battles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		attacker INTEGER NOT NULL,
		defender INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		land_gained INTEGER NOT NULL,
		gold_looted INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS wars (
		attacker INTEGER NOT NULL,
		defender INTEGER NOT NULL,
		attack_count INTEGER NOT NULL,
		active INTEGER NOT NULL,
		PRIMARY KEY (attacker, defender)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_battles_tick ON battles(tick);
	CREATE INDEX IF NOT EXISTS idx_battles_attacker ON battles(attacker);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasWorldState reports whether a saved world exists.
func (db *DB) HasWorldState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM kingdoms"); err != nil {
		return false
	}
	return count > 0
}

// SaveKingdoms writes all kingdoms to the database (full replace).
func (db *DB) SaveKingdoms(kingdoms []*kingdom.Kingdom) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM kingdoms"); err != nil {
		return err
	}

	stmt := `INSERT INTO kingdoms
		(id, name, race, gold, land, population, mana, turns, scum,
		 ambush_active, home_terrain, ai,
		 structures_json, units_json, alliances_json, protection_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, k := range kingdoms {
		structures, err := json.Marshal(k.Structures)
		if err != nil {
			return fmt.Errorf("marshal structures: %w", err)
		}
		units, err := json.Marshal(k.Units)
		if err != nil {
			return fmt.Errorf("marshal units: %w", err)
		}
		allies := make([]kingdom.KingdomID, 0, len(k.Alliances))
		for id := range k.Alliances {
			allies = append(allies, id)
		}
		alliances, err := json.Marshal(allies)
		if err != nil {
			return fmt.Errorf("marshal alliances: %w", err)
		}
		protection, err := json.Marshal(k.Protection)
		if err != nil {
			return fmt.Errorf("marshal protection: %w", err)
		}

		ambush := 0
		if k.AmbushActive {
			ambush = 1
		}
		ai := 0
		if k.AI {
			ai = 1
		}

		if _, err := tx.Exec(stmt,
			k.ID, k.Name, k.Race,
			k.Resources.Gold, k.Resources.Land, k.Resources.Population,
			k.Resources.Mana, k.Resources.Turns, k.Scum,
			ambush, k.HomeTerrain, ai,
			string(structures), string(units), string(alliances), string(protection),
		); err != nil {
			return fmt.Errorf("insert kingdom %d: %w", k.ID, err)
		}
	}

	return tx.Commit()
}

type kingdomRow struct {
	ID             uint64 `db:"id"`
	Name           string `db:"name"`
	Race           uint8  `db:"race"`
	Gold           uint64 `db:"gold"`
	Land           int    `db:"land"`
	Population     int    `db:"population"`
	Mana           int    `db:"mana"`
	Turns          int    `db:"turns"`
	Scum           int    `db:"scum"`
	AmbushActive   int    `db:"ambush_active"`
	HomeTerrain    uint8  `db:"home_terrain"`
	AI             int    `db:"ai"`
	StructuresJSON string `db:"structures_json"`
	UnitsJSON      string `db:"units_json"`
	AlliancesJSON  string `db:"alliances_json"`
	ProtectionJSON string `db:"protection_json"`
}

// LoadKingdoms reads all kingdoms back from the database.
func (db *DB) LoadKingdoms() ([]*kingdom.Kingdom, error) {
	var rows []kingdomRow
	if err := db.conn.Select(&rows, "SELECT * FROM kingdoms ORDER BY id"); err != nil {
		return nil, fmt.Errorf("select kingdoms: %w", err)
	}

	kingdoms := make([]*kingdom.Kingdom, 0, len(rows))
	for _, row := range rows {
		k := &kingdom.Kingdom{
			ID:   kingdom.KingdomID(row.ID),
			Name: row.Name,
			Race: kingdom.Race(row.Race),
			Resources: kingdom.Resources{
				Gold:       row.Gold,
				Land:       row.Land,
				Population: row.Population,
				Mana:       row.Mana,
				Turns:      row.Turns,
			},
			Scum:         row.Scum,
			AmbushActive: row.AmbushActive != 0,
			HomeTerrain:  kingdom.Terrain(row.HomeTerrain),
			AI:           row.AI != 0,
			Alliances:    make(map[kingdom.KingdomID]struct{}),
		}

		if err := json.Unmarshal([]byte(row.StructuresJSON), &k.Structures); err != nil {
			return nil, fmt.Errorf("unmarshal structures for %d: %w", row.ID, err)
		}
		if err := json.Unmarshal([]byte(row.UnitsJSON), &k.Units); err != nil {
			return nil, fmt.Errorf("unmarshal units for %d: %w", row.ID, err)
		}
		var allies []kingdom.KingdomID
		if err := json.Unmarshal([]byte(row.AlliancesJSON), &allies); err != nil {
			return nil, fmt.Errorf("unmarshal alliances for %d: %w", row.ID, err)
		}
		for _, id := range allies {
			k.Alliances[id] = struct{}{}
		}
		if err := json.Unmarshal([]byte(row.ProtectionJSON), &k.Protection); err != nil {
			return nil, fmt.Errorf("unmarshal protection for %d: %w", row.ID, err)
		}

		kingdoms = append(kingdoms, k)
	}

	return kingdoms, nil
}

// AppendBattle records one resolved battle.
func (db *DB) AppendBattle(r battle.Record) error {
	_, err := db.conn.Exec(
		`INSERT INTO battles (tick, attacker, defender, outcome, land_gained, gold_looted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Tick, r.Attacker, r.Defender, r.Result.Outcome.String(),
		r.Result.LandGained, r.Result.GoldLooted,
	)
	if err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}
	return nil
}

// SaveWars writes the active wars (full replace).
func (db *DB) SaveWars(wars []battle.WarDeclaration) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM wars"); err != nil {
		return err
	}
	for _, w := range wars {
		active := 0
		if w.Active {
			active = 1
		}
		if _, err := tx.Exec(
			"INSERT INTO wars (attacker, defender, attack_count, active) VALUES (?, ?, ?, ?)",
			w.Attacker, w.Defender, w.AttackCount, active,
		); err != nil {
			return fmt.Errorf("insert war: %w", err)
		}
	}
	return tx.Commit()
}

// GetMeta reads a world metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	if err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key); err != nil {
		return "", fmt.Errorf("get meta %q: %w", key, err)
	}
	return value, nil
}

// SetMeta writes a world metadata value.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO world_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}

// SaveWorldState persists the complete simulation snapshot.
func (db *DB) SaveWorldState(sim *engine.Simulation) error {
	if err := db.SaveKingdoms(sim.Kingdoms); err != nil {
		return fmt.Errorf("save kingdoms: %w", err)
	}
	if err := db.SaveWars(sim.Ledger.Wars()); err != nil {
		return fmt.Errorf("save wars: %w", err)
	}
	if err := db.SetMeta("last_tick", fmt.Sprintf("%d", sim.LastTick)); err != nil {
		return err
	}
	if err := db.SetMeta("seed", fmt.Sprintf("%d", sim.Seed)); err != nil {
		return err
	}
	return nil
}
