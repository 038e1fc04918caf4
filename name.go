package nominal

import (
	"encoding/binary"
	"hash/fnv"
)

// Name is a deterministic identity token used both as a memoization key
// (by an Engine) and as a level source. It is opaque: the core
// never branches on its contents, only on equality, hashing, and the
// engine-supplied Fork/Fork4 operations.
//
// Name is comparable and safe to use as a map key; cloning is a plain Go
// value copy (the path is immutable once created).
type Name struct {
	path string
}

// RootName derives a fresh root name from a caller-chosen label. Two calls
// with the same label yield the same Name, which is required for shape
// determinism: rebuilding the same nominal list from scratch must fork
// identical names.
func RootName(label string) Name {
	return Name{path: "r:" + label}
}

// Bytes returns the byte encoding of n used to derive its level and to key
// engine-side storage. It is stable across process runs.
func (n Name) Bytes() []byte {
	return []byte(n.path)
}

// String renders a debug form of n; used by GetString.
func (n Name) String() string {
	return n.path
}

// forkPath derives a child path deterministically from a parent path and a
// small integer tag, without needing a hashing engine: it is used only to
// keep two sibling forks distinct and to make re-forking the same name
// idempotent (fork(n) always yields the same (n1,n2) given the same n).
func forkPath(parent string, tag uint8) string {
	buf := make([]byte, 0, len(parent)+2)
	buf = append(buf, parent...)
	buf = append(buf, '/', tag)
	return string(buf)
}

// Fork produces two distinct child names deterministically from n.
// Re-forking the same name is idempotent: forking n twice yields the same
// (n1, n2) pair both times.
func Fork(n Name) (Name, Name) {
	return Name{path: forkPath(n.path, 0)}, Name{path: forkPath(n.path, 1)}
}

// Fork4 produces four distinct child names deterministically from n.
func Fork4(n Name) (Name, Name, Name, Name) {
	return Name{path: forkPath(n.path, 0)},
		Name{path: forkPath(n.path, 1)},
		Name{path: forkPath(n.path, 2)},
		Name{path: forkPath(n.path, 3)}
}

// SeededHash is the shape of a runtime-supplied, seeded hash function:
// hash_seeded(seed, x). Implementations live in package
// github.com/vocdoni/nominal-adapton/hash; the default used throughout this
// package's own tests is FNV1a, below.
type SeededHash func(seed uint64, data []byte) uint64

// FNV1aSeededHash is the stdlib-backed default seeded hasher: cheap and
// deterministic, adequate for level derivation (it is not used for any
// cryptographic purpose). It seeds by folding seed into the FNV offset
// basis before hashing data, so seed=1 (the core's fixed level-derivation
// seed) never collides with a memo-keying use of the same hasher at a
// different seed.
func FNV1aSeededHash(seed uint64, data []byte) uint64 {
	h := fnv.New64a()
	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], seed)
	_, _ = h.Write(seedBuf[:])
	_, _ = h.Write(data)
	return h.Sum64()
}
