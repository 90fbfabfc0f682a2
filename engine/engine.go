/*
Package engine implements the streaming fingerprint filters.

Both engines read records one at a time, fingerprint them with a seed owned by the engine and
forward the survivors to a sink in input order. Engines are single use: a fresh run needs a
fresh engine, and with it a fresh seed and fresh fingerprint sets.
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/prom"
)

var (
	ErrEngineUsed = errors.New("engine has already run")
	ErrWrite      = errors.New("failed writing")
)

// State of an engine run. Transitions only move forward.
type State int

const (
	Idle State = iota
	Streaming
	Draining
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	case Draining:
		return "draining"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Phase string

const (
	PhaseRemove Phase = "remove"
	PhaseKeep   Phase = "keep"
	PhaseDedup  Phase = "dedup"
)

// PhaseReport counts the records of one phase and the distinct fingerprints among them.
type PhaseReport struct {
	Phase  Phase  `json:"phase"`
	Total  uint64 `json:"total"`
	Unique uint64 `json:"unique"`
}

// Report collects the phase reports of a finished run, in phase order.
type Report struct {
	Phases []PhaseReport `json:"phases"`
}

// Reporter receives phase reports on a channel separate from record output.
type Reporter interface {
	Report(r PhaseReport) error
}

type Option func(*engine)

// WithSeed fixes the hash seed instead of drawing a random one.
func WithSeed(seed fingerprint.Seed) Option {
	return func(e *engine) { e.seed = &seed }
}

// WithSeparator inserts sep between the fields of structured records before hashing.
// Changing this changes every fingerprint.
func WithSeparator(sep []byte) Option {
	return func(e *engine) { e.separator = sep }
}

// WithCapacityHint presizes fingerprint sets.
func WithCapacityHint(n int) Option {
	return func(e *engine) { e.capacityHint = n }
}

// WithReporter sets where phase reports go. Without one reports are only returned.
func WithReporter(r Reporter) Option {
	return func(e *engine) { e.reporter = r }
}

// engine holds what both filters share.
type engine struct {
	seed         *fingerprint.Seed
	separator    []byte
	capacityHint int
	reporter     Reporter
	hasher       *fingerprint.Hasher
	state        State
	report       Report
}

func newEngine(opts []Option) (*engine, error) {
	e := &engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.seed == nil {
		seed, err := fingerprint.NewSeed()
		if err != nil {
			return nil, err
		}
		e.seed = &seed
	}
	e.hasher = fingerprint.NewHasher(*e.seed, e.separator)
	return e, nil
}

// State returns the current state of the run.
func (e *engine) State() State { return e.state }

// Seed returns the seed all fingerprints of this engine use.
func (e *engine) Seed() fingerprint.Seed { return *e.seed }

func (e *engine) start() error {
	if e.state != Idle {
		return ErrEngineUsed
	}
	return nil
}

// fail makes the engine terminal without reporting.
func (e *engine) fail(err error) (*Report, error) {
	e.state = Done
	return nil, err
}

func (e *engine) fingerprint(rec corpus.Record) fingerprint.Fingerprint {
	e.hasher.Reset()
	rec.WriteKey(e.hasher)
	return e.hasher.Sum64()
}

// scan reads r to the end, calling visit with every record and its fingerprint.
// Cancellation is only observed between records.
func (e *engine) scan(ctx context.Context, phase Phase, r corpus.Reader, visit func(rec corpus.Record, fp fingerprint.Fingerprint) error) (uint64, error) {
	var total uint64
	read := prom.RecordsRead.WithLabelValues(string(phase))
	for {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("%s phase interrupted after %d records: %w", phase, total, err)
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("%s phase record %d: %w", phase, total+1, err)
		}
		if e.state == Idle {
			e.state = Streaming
		}
		total++
		read.Inc()
		if err := visit(rec, e.fingerprint(rec)); err != nil {
			return total, err
		}
	}
}

func (e *engine) write(sink corpus.Writer, rec corpus.Record) error {
	if err := sink.Write(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	prom.RecordsWritten.Inc()
	return nil
}

// drain flushes the sink once input is exhausted.
func (e *engine) drain(sink corpus.Writer) error {
	e.state = Draining
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// emit records a phase report and passes it to the reporter.
func (e *engine) emit(r PhaseReport) error {
	prom.DedupeSetSize.WithLabelValues(string(r.Phase)).Set(float64(r.Unique))
	e.report.Phases = append(e.report.Phases, r)
	if e.reporter == nil {
		return nil
	}
	if err := e.reporter.Report(r); err != nil {
		return fmt.Errorf("failed reporting %s phase: %w", r.Phase, err)
	}
	return nil
}
