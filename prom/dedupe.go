package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DedupeSetLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashdedupe_set_lookups_total",
		Help: "The total number of fingerprint set lookups",
	})
	DedupeSetHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashdedupe_set_hits_total",
		Help: "The total number of fingerprint set lookups that found an existing entry",
	})
	DedupeSetSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hashdedupe_set_size",
		Help: "Number of distinct fingerprints held at the end of a phase",
	}, []string{"phase"})
	RecordsRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hashdedupe_records_read_total",
		Help: "The total number of records read per phase",
	}, []string{"phase"})
	RecordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashdedupe_records_written_total",
		Help: "The total number of records forwarded to the output",
	})
	RecordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hashdedupe_records_dropped_total",
		Help: "The total number of records filtered out, by reason",
	}, []string{"reason"})
)
