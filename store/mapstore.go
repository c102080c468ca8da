package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

// MapStore persists versioned map configurations in SQLite. The JSON
// payload carries the full config; the version column lets old saves be
// migrated on read if the shape ever changes.
type MapStore struct {
	db *sql.DB
}

// SavedMap is one row's metadata plus its decoded config.
type SavedMap struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Created time.Time        `json:"created"`
	Config  models.MapConfig `json:"config"`
}

// NewMapStore opens (or creates) the database at dbPath. WAL mode keeps
// reads cheap while a save is in flight.
func NewMapStore(dbPath string) (*MapStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &MapStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}
	return s, nil
}

func (s *MapStore) Close() error {
	return s.db.Close()
}

func (s *MapStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		created DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		payload JSON NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_maps_created ON maps(created);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create maps table: %w", err)
	}
	return nil
}

// Save stores a config and returns its new id.
func (s *MapStore) Save(cfg models.MapConfig) (string, error) {
	cfg.Version = models.CurrentMapConfigVersion

	payload, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode map config: %w", err)
	}

	id := uuid.NewString()
	name := cfg.Name
	if name == "" {
		name = "unnamed"
	}

	_, err = s.db.Exec(
		"INSERT INTO maps (id, name, schema_version, payload) VALUES (?, ?, ?, ?)",
		id, name, cfg.Version, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert map: %w", err)
	}
	return id, nil
}

// Get loads one saved map by id. Returns sql.ErrNoRows when absent.
func (s *MapStore) Get(id string) (*SavedMap, error) {
	row := s.db.QueryRow(
		"SELECT id, name, schema_version, created, payload FROM maps WHERE id = ?", id,
	)

	var saved SavedMap
	var version int
	var payload string
	if err := row.Scan(&saved.ID, &saved.Name, &version, &saved.Created, &payload); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(payload), &saved.Config); err != nil {
		return nil, fmt.Errorf("failed to decode map payload: %w", err)
	}
	saved.Config.Version = version
	return &saved, nil
}

// List returns all saved maps, newest first, without decoding payloads
// beyond what each row needs.
func (s *MapStore) List() ([]SavedMap, error) {
	rows, err := s.db.Query(
		"SELECT id, name, schema_version, created, payload FROM maps ORDER BY created DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	defer rows.Close()

	var maps []SavedMap
	for rows.Next() {
		var saved SavedMap
		var version int
		var payload string
		if err := rows.Scan(&saved.ID, &saved.Name, &version, &saved.Created, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &saved.Config); err != nil {
			return nil, fmt.Errorf("failed to decode map payload: %w", err)
		}
		saved.Config.Version = version
		maps = append(maps, saved)
	}
	return maps, rows.Err()
}
