package dedupe

import (
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/prom"
)

// Set is an unbounded set of fingerprints. It is not safe for concurrent use.
type Set struct {
	keys map[fingerprint.Fingerprint]struct{}
}

// New returns an empty set, presized for capacityHint entries.
func New(capacityHint int) *Set {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Set{keys: make(map[fingerprint.Fingerprint]struct{}, capacityHint)}
}

// Contains reports whether the fingerprint was added previously.
func (s *Set) Contains(fp fingerprint.Fingerprint) bool {
	prom.DedupeSetLookups.Inc()
	_, ok := s.keys[fp]
	if ok {
		prom.DedupeSetHits.Inc()
	}
	return ok
}

// Add inserts the fingerprint.
func (s *Set) Add(fp fingerprint.Fingerprint) {
	s.keys[fp] = struct{}{}
}

// CheckAndSet will return true if the set contains the specified fingerprint, and add the fingerprint as seen.
func (s *Set) CheckAndSet(fp fingerprint.Fingerprint) bool {
	if s.Contains(fp) {
		return true
	}
	s.keys[fp] = struct{}{}
	return false
}

// Len is the number of distinct fingerprints held.
func (s *Set) Len() int {
	return len(s.keys)
}
