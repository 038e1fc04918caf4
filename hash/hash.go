// Package hash provides nominal.SeededHash backends beyond the root
// package's stdlib FNV1a default. Every backend takes the same
// single-buffer, seeded shape: seed and data are concatenated (or passed
// as two field elements) and hashed together, since level derivation
// hashes one value (an element's or a name's encoding) at a time.
package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	fr_bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	mimc_bls12_377 "github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
	mimc_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	iden3mimc7 "github.com/iden3/go-iden3-crypto/mimc7"
	iden3poseidon "github.com/iden3/go-iden3-crypto/poseidon"
	multiposeidon "github.com/vocdoni/davinci-node/crypto/hash/poseidon"
	"golang.org/x/crypto/blake2b"
)

// bn254Modulus is the BN254 scalar field order, carried as a literal to
// avoid importing a second fr package just for its Modulus().
var bn254Modulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

func seedBytes(seed uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	return b[:]
}

func digestToUint64(digest []byte) uint64 {
	var padded [8]byte
	copy(padded[:], digest[:min(8, len(digest))])
	return binary.LittleEndian.Uint64(padded[:])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SHA256 is a crypto/sha256-backed SeededHash.
func SHA256(seed uint64, data []byte) uint64 {
	h := sha256.New()
	h.Write(seedBytes(seed))
	h.Write(data)
	return digestToUint64(h.Sum(nil))
}

// Blake2b is a golang.org/x/crypto/blake2b-backed SeededHash. Panics only
// if the library's own New256 rejects a nil key, which per its own
// contract never happens.
func Blake2b(seed uint64, data []byte) uint64 {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write(seedBytes(seed))
	h.Write(data)
	return digestToUint64(h.Sum(nil))
}

// Poseidon is an iden3/go-iden3-crypto-backed SeededHash, for callers
// whose element/name encoding is already a field-sized big-endian buffer
// they want hashed ZK-circuit-compatibly.
func Poseidon(seed uint64, data []byte) uint64 {
	a := new(big.Int).SetUint64(seed)
	b := new(big.Int).SetBytes(data)
	out, err := iden3poseidon.Hash([]*big.Int{a, b})
	if err != nil {
		panic(err)
	}
	return digestToUint64(out.Bytes())
}

// MultiPoseidon is a davinci-node/crypto/hash/poseidon-backed SeededHash,
// using Vocdoni's multi-input Poseidon variant. Like Poseidon above it hashes
// exactly two inputs, the seed and data read as a single big.Int; data is
// not split across several field elements.
func MultiPoseidon(seed uint64, data []byte) uint64 {
	a := new(big.Int).SetUint64(seed)
	b := new(big.Int).SetBytes(data)
	out, err := multiposeidon.MultiPoseidon(a, b)
	if err != nil {
		panic(err)
	}
	return digestToUint64(out.Bytes())
}

// MiMC7 is an iden3/go-iden3-crypto-backed SeededHash.
func MiMC7(seed uint64, data []byte) uint64 {
	a := new(big.Int).SetUint64(seed)
	b := new(big.Int).SetBytes(data)
	out, err := iden3mimc7.Hash([]*big.Int{a, b}, nil)
	if err != nil {
		panic(err)
	}
	return digestToUint64(out.Bytes())
}

// MiMCBN254 is a consensys/gnark-crypto-backed SeededHash over the BN254
// scalar field.
func MiMCBN254(seed uint64, data []byte) uint64 {
	h := mimc_bn254.NewMiMC()
	a := new(big.Int).Mod(new(big.Int).SetUint64(seed), bn254Modulus)
	b := new(big.Int).Mod(new(big.Int).SetBytes(data), bn254Modulus)
	var aBuf, bBuf [32]byte
	a.FillBytes(aBuf[:])
	b.FillBytes(bBuf[:])
	h.Write(aBuf[:])
	h.Write(bBuf[:])
	return digestToUint64(h.Sum(nil))
}

// MiMCBLS12377 is a consensys/gnark-crypto-backed SeededHash over the
// BLS12-377 scalar field.
func MiMCBLS12377(seed uint64, data []byte) uint64 {
	h := mimc_bls12_377.NewMiMC()
	q := fr_bls12377.Modulus()
	a := new(big.Int).Mod(new(big.Int).SetUint64(seed), q)
	b := new(big.Int).Mod(new(big.Int).SetBytes(data), q)
	var aBuf, bBuf [32]byte
	a.FillBytes(aBuf[:])
	b.FillBytes(bBuf[:])
	h.Write(aBuf[:])
	h.Write(bBuf[:])
	return digestToUint64(h.Sum(nil))
}
