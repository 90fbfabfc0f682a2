package engine

import (
	"context"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/dedupe"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/prom"
)

// Disjoin removes from a keep stream every record whose fingerprint occurs in a remove stream.
type Disjoin struct {
	*engine
}

func NewDisjoin(opts ...Option) (*Disjoin, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return &Disjoin{e}, nil
}

// Run drains remove into a fingerprint set, then streams keep into sink, dropping records
// found in the set. Duplicates inside keep that are absent from remove all pass through.
// The keep stream is not touched until remove has been fully read.
func (d *Disjoin) Run(ctx context.Context, remove, keep corpus.Reader, sink corpus.Writer) (*Report, error) {
	if err := d.start(); err != nil {
		return nil, err
	}

	removeSet := dedupe.New(d.capacityHint)
	total, err := d.scan(ctx, PhaseRemove, remove, func(_ corpus.Record, fp fingerprint.Fingerprint) error {
		removeSet.Add(fp)
		return nil
	})
	if err != nil {
		return d.fail(err)
	}
	err = d.emit(PhaseReport{Phase: PhaseRemove, Total: total, Unique: uint64(removeSet.Len())})
	if err != nil {
		return d.fail(err)
	}

	// only used for reporting
	keepSeen := dedupe.New(d.capacityHint)
	dropped := prom.RecordsDropped.WithLabelValues("in_remove_set")
	total, err = d.scan(ctx, PhaseKeep, keep, func(rec corpus.Record, fp fingerprint.Fingerprint) error {
		keepSeen.Add(fp)
		if removeSet.Contains(fp) {
			dropped.Inc()
			return nil
		}
		return d.write(sink, rec)
	})
	if err != nil {
		return d.fail(err)
	}
	if err := d.drain(sink); err != nil {
		return d.fail(err)
	}
	d.state = Done
	err = d.emit(PhaseReport{Phase: PhaseKeep, Total: total, Unique: uint64(keepSeen.Len())})
	if err != nil {
		return nil, err
	}
	return &d.report, nil
}
