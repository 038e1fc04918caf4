package nominal

import "math/bits"

// Level is an unsigned integer in [0, MaxLevel]. It determines tree shape:
// the root of any Bin/Name node dominates the levels of its children (the
// heap-order invariant).
type Level uint32

const (
	// LevelBits is the fixed bit width b used by LevelOfName.
	LevelBits = 32
	// MaxLevel is L_max = 2^b - 1.
	MaxLevel Level = ^Level(0)
	// NameLevelFloor is b+1: every name-derived level is at or above
	// this, which is strictly above any element-derived level (name
	// dominance).
	NameLevelFloor Level = LevelBits + 1
)

// HashSeed is the fixed seed used for all level derivation. Seeding
// matters: levels must be independent of any other hash use (e.g. an
// engine's memo-keying hash), so this seed is never reused elsewhere.
const HashSeed uint64 = 1

// Encode turns an element or name into the bytes a SeededHash consumes.
type Encode[E any] func(E) []byte

// LevelOfElement computes level_of_element(x) := trailing_zeros(hash1(x)),
// counted over the low LevelBits bits of the hash so the result never
// exceeds LevelBits.
func LevelOfElement[E any](h SeededHash, enc Encode[E], x E) Level {
	v := h(HashSeed, enc(x))
	return Level(bits.TrailingZeros32(uint32(v)))
}

// LevelOfName computes level_of_name(n) := (b+1) + trailing_zeros(hash1(n)),
// guaranteeing name levels strictly dominate element levels.
func LevelOfName(h SeededHash, n Name) Level {
	v := h(HashSeed, n.Bytes())
	return NameLevelFloor + Level(bits.TrailingZeros64(v))
}
