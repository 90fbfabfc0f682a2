package engine

import (
	"context"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/dedupe"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/prom"
)

// Dedup forwards the first occurrence of every fingerprint in a single stream.
type Dedup struct {
	*engine
}

func NewDedup(opts ...Option) (*Dedup, error) {
	e, err := newEngine(opts)
	if err != nil {
		return nil, err
	}
	return &Dedup{e}, nil
}

// Run streams src into sink, dropping records whose fingerprint was already seen.
func (d *Dedup) Run(ctx context.Context, src corpus.Reader, sink corpus.Writer) (*Report, error) {
	if err := d.start(); err != nil {
		return nil, err
	}

	seen := dedupe.New(d.capacityHint)
	dropped := prom.RecordsDropped.WithLabelValues("duplicate")
	total, err := d.scan(ctx, PhaseDedup, src, func(rec corpus.Record, fp fingerprint.Fingerprint) error {
		if seen.CheckAndSet(fp) {
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
	err = d.emit(PhaseReport{Phase: PhaseDedup, Total: total, Unique: uint64(seen.Len())})
	if err != nil {
		return nil, err
	}
	return &d.report, nil
}
