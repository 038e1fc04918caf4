// Package engine provides Memo, a reference implementation of
// nominal.Engine. It owns articulation storage and memoization only; the
// dependency graph, change propagation, and dirty/clean bookkeeping a full
// incremental-computation runtime would add on top are explicitly out of
// scope. The one piece of that graph Memo does keep is the minimal
// bookkeeping needed to make Structural's "does not count as a dependency"
// contract observable: a log of the Names Force has read outside any
// Structural region.
//
// Persistence follows a dirty-bit, explicit-Sync discipline: every
// Cell/Thunk result is stored in a db.Database keyed by its Name, written
// out only on Sync/Close.
package engine

import (
	"errors"
	"sync"

	"github.com/vocdoni/davinci-node/db"
	"github.com/vocdoni/davinci-node/db/metadb"

	"github.com/vocdoni/nominal-adapton"
)

// Codec serializes/deserializes the arbitrary values Cell/Thunk store, so
// Memo can persist them. Engines used purely in-memory can pass a Codec
// whose methods are never called.
type Codec struct {
	Encode func(any) ([]byte, error)
	Decode func([]byte) (any, error)
}

var errNoCodec = errors.New("engine: no codec configured for persistent storage")

type entry struct {
	value    any
	readOnly bool
}

// art is Memo's nominal.Art implementation: a key into Memo's cell table,
// plus the Name it was stored under so Force can append it to the
// dependency log. Copying it is an O(1) value copy, as nominal.Art requires.
type art struct {
	key  string
	name nominal.Name
}

func (art) artHandle() {}

// Memo is a nominal.Engine backed by an in-memory table of named
// articulations, optionally persisted to a db.Database. mu guards the
// table, so Memo is safe for concurrent callers.
type Memo struct {
	mu              sync.RWMutex
	cells           map[string]*entry
	storage         db.Database
	codec           Codec
	dirty           bool
	structuralDepth int
	depLog          []nominal.Name
}

// New creates an in-memory Memo. Passing a non-nil storage requires a
// complete Codec; storage is otherwise nil for in-memory-only use.
func New(storage db.Database, codec Codec) (*Memo, error) {
	if storage != nil && (codec.Encode == nil || codec.Decode == nil) {
		return nil, errNoCodec
	}
	m := &Memo{cells: make(map[string]*entry), storage: storage, codec: codec}
	if storage != nil {
		if err := m.Load(); err != nil && err != db.ErrKeyNotFound {
			return nil, err
		}
	}
	return m, nil
}

// NewWithPebble opens (or creates) a Pebble-backed Memo at datadir.
func NewWithPebble(codec Codec, datadir string) (*Memo, error) {
	if codec.Encode == nil || codec.Decode == nil {
		return nil, errNoCodec
	}
	database, err := metadb.New(db.TypePebble, datadir)
	if err != nil {
		return nil, err
	}
	return New(database, codec)
}

func cellKey(n nominal.Name) string { return "art:" + n.String() }

// Get returns the Art handle for a cell previously written under n — by
// Cell, by Thunk, or restored from storage by Load — without writing
// anything. The second result is false if no such cell exists in memory.
func (m *Memo) Get(n nominal.Name) (nominal.Art, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := cellKey(n)
	if _, ok := m.cells[key]; !ok {
		return nil, false
	}
	return art{key: key, name: n}, true
}

// Cell stores v under n and returns a writable handle.
func (m *Memo) Cell(n nominal.Name, v any) (nominal.Art, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := cellKey(n)
	m.cells[key] = &entry{value: v}
	m.dirty = true
	return art{key: key, name: n}, nil
}

// ReadOnly marks the cell a points to as read-only and returns a. The mark
// does not stop a later Cell call under the same name from replacing the
// stored value; Force on a then returns that newer value.
func (m *Memo) ReadOnly(a nominal.Art) nominal.Art {
	ar, ok := a.(art)
	if !ok {
		return a
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.cells[ar.key]; ok {
		e.readOnly = true
	}
	return ar
}

// Force returns the content of a from the in-memory cell table; it does not
// read storage itself (persisted cells are brought into memory by Load).
// Outside a Structural region, a successful Force appends a's Name to the
// dependency log; inside one, it does not.
func (m *Memo) Force(a nominal.Art) (any, error) {
	ar, ok := a.(art)
	if !ok {
		return nil, errors.New("engine: foreign Art handle")
	}
	m.mu.Lock()
	e, ok := m.cells[ar.key]
	if ok && m.structuralDepth == 0 {
		m.depLog = append(m.depLog, ar.name)
	}
	m.mu.Unlock()
	if ok {
		return e.value, nil
	}
	return nil, errors.New("engine: no value stored for " + ar.key)
}

// Thunk memoizes f(args) under (pt, n): a second call with the same pair
// returns the first call's Art without invoking f again.
func (m *Memo) Thunk(pt nominal.ProgPoint, n nominal.Name, f func(args any) (any, error), args any) (nominal.Art, error) {
	key := "thunk:" + string(pt) + "/" + n.String()
	m.mu.Lock()
	if _, ok := m.cells[key]; ok {
		m.mu.Unlock()
		return art{key: key, name: n}, nil
	}
	m.mu.Unlock()

	v, err := f(args)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cells[key]; ok {
		// Lost a race with a concurrent Thunk call for the same key; keep
		// whichever value got there first to preserve referential
		// transparency of Force.
		return art{key: key, name: n}, nil
	}
	m.cells[key] = &entry{value: v, readOnly: true}
	m.dirty = true
	return art{key: key, name: n}, nil
}

// Structural runs body with dependency-log recording suppressed: any Force
// calls nested inside it (directly or via further Structural calls) do not
// append to DependencyLog, matching a structural (non-nominal) traversal's
// contract of not pinning the shape it read as a named dependency.
func (m *Memo) Structural(body func() (any, error)) (any, error) {
	m.mu.Lock()
	m.structuralDepth++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.structuralDepth--
		m.mu.Unlock()
	}()
	return body()
}

// DependencyLog returns the Names Force has read outside any Structural
// region so far, in call order, duplicates included. It exists to make the
// "Structural bodies do not grow the recorded-dependency log" contract
// testable; change propagation over this log is out of scope.
func (m *Memo) DependencyLog() []nominal.Name {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]nominal.Name, len(m.depLog))
	copy(out, m.depLog)
	return out
}

// NameFork and NameFork4 delegate to the pure path-derivation forks in
// package nominal, since this Memo keeps no per-trace forking counter of
// its own to key them off instead.
func (m *Memo) NameFork(n nominal.Name) (nominal.Name, nominal.Name) { return nominal.Fork(n) }
func (m *Memo) NameFork4(n nominal.Name) (nominal.Name, nominal.Name, nominal.Name, nominal.Name) {
	return nominal.Fork4(n)
}

