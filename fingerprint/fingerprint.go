/*
Package fingerprint maps records to 64-bit digests with a seeded xxHash64.

Fingerprints are only comparable inside one run: every engine owns a Seed chosen at
construction, so the same bytes hash differently across processes. Collisions are accepted.
For N distinct records the chance of any collision is roughly N^2/2^65.
*/
package fingerprint

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Seed parameterises the hash function for one run.
type Seed uint64

// Fingerprint is the digest of a record's extracted bytes.
type Fingerprint uint64

// NewSeed returns a random seed.
func NewSeed() (Seed, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate hash seed: %w", err)
	}
	return Seed(binary.LittleEndian.Uint64(buf[:])), nil
}

// Sum fingerprints a single contiguous byte sequence.
func Sum(b []byte, seed Seed) Fingerprint {
	d := xxhash.NewWithSeed(uint64(seed))
	_, _ = d.Write(b)
	return Fingerprint(d.Sum64())
}

// Hasher fingerprints a record fed in several segments.
// Segments are hashed as one continuous stream, so Sum of the concatenation
// equals the Hasher result for the same seed.
type Hasher struct {
	seed   Seed
	sep    []byte
	fields int
	d      *xxhash.Digest
}

// NewHasher creates a hasher for the given seed. A non-empty separator is written between
// consecutive fields passed to WriteField.
func NewHasher(seed Seed, separator []byte) *Hasher {
	return &Hasher{
		seed: seed,
		sep:  append([]byte{}, separator...),
		d:    xxhash.NewWithSeed(uint64(seed)),
	}
}

// Seed returns the seed the hasher was created with.
func (h *Hasher) Seed() Seed { return h.seed }

// Reset clears state for the next record.
func (h *Hasher) Reset() {
	h.d.ResetWithSeed(uint64(h.seed))
	h.fields = 0
}

// Write appends raw bytes.
func (h *Hasher) Write(p []byte) {
	// xxhash.Digest.Write never fails
	_, _ = h.d.Write(p)
}

// WriteString appends raw bytes without copying.
func (h *Hasher) WriteString(s string) {
	_, _ = h.d.WriteString(s)
}

// WriteField appends one field, preceded by the separator if this is not the first field.
func (h *Hasher) WriteField(s string) {
	if h.fields > 0 && len(h.sep) > 0 {
		h.Write(h.sep)
	}
	h.fields++
	h.WriteString(s)
}

// Sum64 returns the fingerprint of everything written since the last Reset.
func (h *Hasher) Sum64() Fingerprint {
	return Fingerprint(h.d.Sum64())
}
