package engine

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	ReportText = "text"
	ReportJSON = "json"
	ReportLog  = "log"
)

// NewReporter builds a reporter for the named format. noun names one record, e.g. "sentences".
func NewReporter(format string, w io.Writer, logger zerolog.Logger, noun string) (Reporter, error) {
	switch format {
	case ReportText, "":
		return &TextReporter{W: w, Noun: noun}, nil
	case ReportJSON:
		return &JSONReporter{W: w}, nil
	case ReportLog:
		return &LogReporter{Logger: logger, Noun: noun}, nil
	}
	return nil, fmt.Errorf("unknown report format '%s', expected one of text, json, log", format)
}

// TextReporter writes one human readable line per phase.
type TextReporter struct {
	W    io.Writer
	Noun string
}

func (r *TextReporter) Report(p PhaseReport) error {
	var err error
	switch p.Phase {
	case PhaseRemove:
		_, err = fmt.Fprintf(r.W, "Done collecting %d unique hashes from %d %s!!\n", p.Unique, p.Total, r.Noun)
	case PhaseKeep:
		_, err = fmt.Fprintf(r.W, "Encountered %d unique hashes in %d %s.\n", p.Unique, p.Total, r.Noun)
	default:
		_, err = fmt.Fprintf(r.W, "Kept %d unique hashes from %d %s.\n", p.Unique, p.Total, r.Noun)
	}
	return err
}

// JSONReporter writes one JSON object per phase.
type JSONReporter struct {
	W io.Writer
}

func (r *JSONReporter) Report(p PhaseReport) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	_, err = r.W.Write(raw)
	return err
}

// LogReporter emits one structured log event per phase. Events carry no level so the
// logger's level filter cannot drop them.
type LogReporter struct {
	Logger zerolog.Logger
	Noun   string
}

func (r *LogReporter) Report(p PhaseReport) error {
	r.Logger.Log().
		Str("phase", string(p.Phase)).
		Uint64("total", p.Total).
		Uint64("unique", p.Unique).
		Str("records", r.Noun).
		Msg("phase complete")
	return nil
}
