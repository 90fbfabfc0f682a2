package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus/mock_corpus"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const (
	sentA = "1\tthe\t_\t_\t_\t_\t2\t_\t_\t_\n2\tcat\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
	sentB = "1\ta\t_\t_\t_\t_\t2\t_\t_\t_\n2\tdog\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
	sentC = "1\tno\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
	sentD = "1\tsome\t_\t_\t_\t_\t2\t_\t_\t_\n2\tbirds\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
)

type recordingReporter struct {
	reports []PhaseReport
}

func (r *recordingReporter) Report(p PhaseReport) error {
	r.reports = append(r.reports, p)
	return nil
}

func conllx(s string) corpus.Reader {
	return corpus.NewCoNLLXReader(strings.NewReader(s), 0)
}

func lines(s string) corpus.Reader {
	return corpus.NewLineReader(strings.NewReader(s), 0)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "streaming", Streaming.String())
	require.Equal(t, "draining", Draining.String())
	require.Equal(t, "done", Done.String())
	require.Equal(t, "state(9)", State(9).String())
}

func TestEngineOwnsSeed(t *testing.T) {
	a, err := NewDedup()
	require.Nil(t, err)
	b, err := NewDedup()
	require.Nil(t, err)
	require.NotEqual(t, a.Seed(), b.Seed())

	c, err := NewDisjoin(WithSeed(12))
	require.Nil(t, err)
	require.EqualValues(t, 12, c.Seed())
}

func TestFingerprintDeterministicWithinRun(t *testing.T) {
	d, err := NewDedup()
	require.Nil(t, err)
	rec := corpus.Line("same bytes")
	require.Equal(t, d.fingerprint(rec), d.fingerprint(corpus.Line("same bytes")))
}

func TestScanInterrupted(t *testing.T) {
	d, err := NewDedup()
	require.Nil(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	_, err = d.Run(ctx, lines("x\ny\n"), corpus.NewLineWriter(&buf, 0))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "", buf.String())
	require.Equal(t, Done, d.State())
}

func TestReporterFailure(t *testing.T) {
	d, err := NewDedup(WithReporter(failingReporter{}))
	require.Nil(t, err)
	_, err = d.Run(context.Background(), lines("x\n"), corpus.NewLineWriter(io.Discard, 0))
	require.ErrorContains(t, err, "failed reporting dedup phase")
}

type failingReporter struct{}

func (failingReporter) Report(PhaseReport) error { return errors.New("stderr closed") }

func TestSinkWriteFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	sink := mock_corpus.NewMockWriter(ctl)
	sink.EXPECT().Write(gomock.Any()).Return(errors.New("disk full"))

	d, err := NewDedup()
	require.Nil(t, err)
	_, err = d.Run(context.Background(), lines("x\ny\n"), sink)
	require.ErrorIs(t, err, ErrWrite)
	require.ErrorContains(t, err, "disk full")
	require.Equal(t, Done, d.State())
}

func TestSinkFlushFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	sink := mock_corpus.NewMockWriter(ctl)
	sink.EXPECT().Write(gomock.Any()).Return(nil).Times(2)
	sink.EXPECT().Flush().Return(errors.New("broken pipe"))

	rep := &recordingReporter{}
	d, err := NewDedup(WithReporter(rep))
	require.Nil(t, err)
	_, err = d.Run(context.Background(), lines("x\ny\nx\n"), sink)
	require.ErrorIs(t, err, ErrWrite)
	require.Len(t, rep.reports, 0)
}
