package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Int returns an integer preference and whether it exists.
func (s *Store) Int(key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return 0, false, err
	}

	var v int
	err = db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read pref %s: %w", key, err)
	}
	return v, true, nil
}

// SetInt stores an integer preference, replacing any previous value.
func (s *Store) SetInt(key string, value int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write pref %s: %w", key, err)
	}
	return nil
}

// Prefs adapts a Store to core.Prefs. Keys are scoped by a namespace so
// several games can share one database. Failures are logged and the value
// is treated as absent.
type Prefs struct {
	store     *Store
	namespace string
	logger    core.Logger
}

// NewPrefs creates a preference view over store.
func NewPrefs(store *Store, namespace string, logger core.Logger) *Prefs {
	return &Prefs{store: store, namespace: namespace, logger: logger}
}

func (p *Prefs) key(k string) string {
	if p.namespace == "" {
		return k
	}
	return p.namespace + "." + k
}

// Get implements core.Prefs.
func (p *Prefs) Get(key string) (int, bool) {
	v, ok, err := p.store.Int(p.key(key))
	if err != nil {
		p.logger.Warn("could not read preference", "key", key, "error", err)
		return 0, false
	}
	return v, ok
}

// Set implements core.Prefs.
func (p *Prefs) Set(key string, value int) {
	if err := p.store.SetInt(p.key(key), value); err != nil {
		p.logger.Warn("could not write preference", "key", key, "error", err)
	}
}

var _ core.Prefs = (*Prefs)(nil)

// MemPrefs is an in-memory core.Prefs used when no database is available.
type MemPrefs struct {
	values map[string]int
	Writes int // Number of Set calls
}

// NewMemPrefs creates an empty in-memory store.
func NewMemPrefs() *MemPrefs {
	return &MemPrefs{values: make(map[string]int)}
}

// Get implements core.Prefs.
func (m *MemPrefs) Get(key string) (int, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set implements core.Prefs.
func (m *MemPrefs) Set(key string, value int) {
	m.values[key] = value
	m.Writes++
}
