package engine

import (
	"encoding/json"
	"errors"

	"github.com/vocdoni/davinci-node/db"
)

// metaKeysKey stores the JSON-encoded list of every cell key Sync has
// written: Memo's keys are name-derived strings rather than a contiguous
// index range, so Load needs an explicit manifest to know what to re-read
// rather than being able to reconstruct the key set from a single count.
const metaKeysKey = "meta:keys"

// Load restores Memo's cell table from storage. Safe to call again after
// Sync; re-reads every persisted cell.
func (m *Memo) Load() error {
	if m.storage == nil {
		return errNoStorage
	}
	manifest, err := m.storage.Get([]byte(metaKeysKey))
	if err != nil {
		if err == db.ErrKeyNotFound {
			return nil
		}
		return err
	}
	var keys []string
	if err := json.Unmarshal(manifest, &keys); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells = make(map[string]*entry, len(keys))
	for _, key := range keys {
		raw, err := m.storage.Get([]byte(key))
		if err != nil {
			return err
		}
		v, err := m.codec.Decode(raw)
		if err != nil {
			return err
		}
		m.cells[key] = &entry{value: v, readOnly: true}
	}
	return nil
}

// errNoStorage is returned by Load when Memo has no backing db.Database:
// an explicit Load call on an in-memory Memo is a caller mistake rather
// than a silent no-op. Sync, below, does stay silent without storage.
var errNoStorage = errors.New("engine: no storage configured for Load")

// Sync persists every current cell to storage along with a manifest of
// their keys, in one write transaction. There are no stale entries to
// clean up since cells are never removed once written.
func (m *Memo) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.storage == nil {
		return nil
	}
	if !m.dirty {
		return nil
	}

	tx := m.storage.WriteTx()
	defer tx.Discard()

	keys := make([]string, 0, len(m.cells))
	for key, e := range m.cells {
		encoded, err := m.codec.Encode(e.value)
		if err != nil {
			return err
		}
		if err := tx.Set([]byte(key), encoded); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	manifest, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	if err := tx.Set([]byte(metaKeysKey), manifest); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	m.dirty = false
	return nil
}

// Close syncs and closes the backing database, if any.
func (m *Memo) Close() error {
	if err := m.Sync(); err != nil {
		return err
	}
	if m.storage != nil {
		return m.storage.Close()
	}
	return nil
}
