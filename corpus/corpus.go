/*
Package corpus reads and writes the record formats the dedupe engines operate on.

Readers are lazy and single pass. They return io.EOF once input is exhausted and an error
wrapping ErrParse for malformed input; there is no skip-and-continue.
*/
package corpus

//go:generate mockgen -source=corpus.go -destination=mock_corpus/mock_corpus.go

import (
	"errors"
	"fmt"
	"io"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
)

var (
	ErrParse      = errors.New("cannot parse record")
	ErrOpenInput  = errors.New("failed opening input")
	ErrOpenOutput = errors.New("failed opening output")
)

// Record is one unit of deduplication.
type Record interface {
	// WriteKey feeds the bytes that identify the record to the hasher.
	WriteKey(h *fingerprint.Hasher)
}

// Reader produces records until io.EOF.
type Reader interface {
	Read() (Record, error)
}

// Writer serialises records. Each record is fully written before Write returns.
type Writer interface {
	Write(rec Record) error
	// Flush pushes buffered output to the underlying stream.
	Flush() error
}

type Format string

const (
	FormatCoNLLX Format = "conllx"
	FormatLines  Format = "lines"
	FormatJSONL  Format = "jsonl"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCoNLLX, FormatLines, FormatJSONL:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown format '%s', expected one of conllx, lines, jsonl", name)
}

// Noun is what one record of this format is called in reports.
func (f Format) Noun() string {
	switch f {
	case FormatLines:
		return "lines"
	case FormatJSONL:
		return "documents"
	default:
		return "sentences"
	}
}

type Options struct {
	Format Format
	// gjson path selecting the key of a jsonl document, empty for the whole document
	KeyPath         string
	ReadBufferSize  int
	WriteBufferSize int
}

// NewReader creates a reader of the configured format over r.
func NewReader(r io.Reader, opts Options) (Reader, error) {
	switch opts.Format {
	case FormatCoNLLX, "":
		return NewCoNLLXReader(r, opts.ReadBufferSize), nil
	case FormatLines:
		return NewLineReader(r, opts.ReadBufferSize), nil
	case FormatJSONL:
		return NewJSONLReader(r, opts.ReadBufferSize, opts.KeyPath), nil
	}
	return nil, fmt.Errorf("no reader for format '%s'", opts.Format)
}

// NewWriter creates a writer of the configured format over w.
func NewWriter(w io.Writer, opts Options) (Writer, error) {
	switch opts.Format {
	case FormatCoNLLX, "":
		return NewCoNLLXWriter(w, opts.WriteBufferSize), nil
	case FormatLines:
		return NewLineWriter(w, opts.WriteBufferSize), nil
	case FormatJSONL:
		return NewJSONLWriter(w, opts.WriteBufferSize), nil
	}
	return nil, fmt.Errorf("no writer for format '%s'", opts.Format)
}

func parseErrorf(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrParse, line, fmt.Sprintf(format, args...))
}

func unexpectedRecord(want string, rec Record) error {
	return fmt.Errorf("%s writer cannot write record of type %T", want, rec)
}
