package dedupe

import (
	"math/rand"
	"testing"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/prom"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var result bool

func TestSet(t *testing.T) {
	s := New(0)
	shouldNotContain(t, "Empty set", s, 1)
	shouldContain(t, "Last set", s, 1)
	shouldNotContain(t, "New value", s, 2)
	shouldContain(t, "Still set", s, 1)
	shouldContain(t, "Last set", s, 2)
	// a small lookup table would have evicted by now
	for i := fingerprint.Fingerprint(3); i < 10000; i++ {
		shouldNotContain(t, "New value", s, i)
	}
	shouldContain(t, "Never evicted", s, 1)
	shouldContain(t, "Never evicted", s, 2)
	require.Equal(t, 9999, s.Len())
}

func TestSetAddContains(t *testing.T) {
	s := New(-1)
	require.False(t, s.Contains(5))
	s.Add(5)
	s.Add(5)
	require.True(t, s.Contains(5))
	require.Equal(t, 1, s.Len())
}

func TestSetMetrics(t *testing.T) {
	lookups := testutil.ToFloat64(prom.DedupeSetLookups)
	hits := testutil.ToFloat64(prom.DedupeSetHits)
	s := New(4)
	s.CheckAndSet(9)
	s.CheckAndSet(9)
	s.CheckAndSet(10)
	require.Equal(t, lookups+3, testutil.ToFloat64(prom.DedupeSetLookups))
	require.Equal(t, hits+1, testutil.ToFloat64(prom.DedupeSetHits))
}

func BenchmarkCheckAndSet(b *testing.B) {
	s := New(100000)
	var seed [1000]fingerprint.Fingerprint
	for i := 0; i < len(seed); i++ {
		seed[i] = fingerprint.Fingerprint(rand.Uint64())
	}
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		result = s.CheckAndSet(seed[rand.Intn(len(seed))])
	}
}

func shouldContain(t *testing.T, msg string, s *Set, fp fingerprint.Fingerprint) {
	if !s.CheckAndSet(fp) {
		t.Errorf("should contain, %s: fp %v", msg, fp)
	}
}

func shouldNotContain(t *testing.T, msg string, s *Set, fp fingerprint.Fingerprint) {
	if s.CheckAndSet(fp) {
		t.Errorf("should not contain, %s: %v", msg, fp)
	}
}
