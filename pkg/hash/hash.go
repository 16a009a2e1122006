package hash

import "encoding/binary"

// Fowler-Noll-Vo 1a, 64 bit.
const (
	offsetBasis uint64 = 0xcbf29ce484222325
	prime       uint64 = 0x00000100000001b3
)

// Hasher accumulates a content hash over a stream of values.
type Hasher struct {
	sum uint64
}

// New returns a Hasher seeded with the FNV offset basis.
func New() *Hasher {
	return &Hasher{sum: offsetBasis}
}

// Write folds the given bytes into the hash.
func (h *Hasher) Write(data []byte) {
	for _, b := range data {
		h.sum = (uint64(b) ^ h.sum) * prime
	}
}

// WriteString folds the bytes of s into the hash.
func (h *Hasher) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		h.sum = (uint64(s[i]) ^ h.sum) * prime
	}
}

// WriteUint64 folds the big endian bytes of v into the hash.
func (h *Hasher) WriteUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.sum
}

// Of returns the digest of a single byte sequence.
func Of(data []byte) uint64 {
	h := New()
	h.Write(data)
	return h.Sum64()
}
