// Package testutil provides deterministic key generation shared by the
// package tests and the benchmark command.
package testutil

import (
	"encoding/binary"
	"math/rand/v2"
)

// EncodeKey encodes v as an 8-byte big-endian key, so numeric order and
// bytes.Compare order agree.
func EncodeKey(v uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, v)
	return key
}

// DecodeKey decodes a key produced by EncodeKey.
func DecodeKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// ShuffledKeys returns the keys for 0..n-1, shuffled deterministically by
// seed.
func ShuffledKeys(n int, seed uint64) [][]byte {
	rng := rand.New(rand.NewPCG(seed, seed))
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = EncodeKey(uint64(i))
	}
	rng.Shuffle(n, func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}
