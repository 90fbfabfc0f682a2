package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
)

// Line is a raw line of text without its newline terminator, hashed verbatim.
type Line []byte

func (l Line) WriteKey(h *fingerprint.Hasher) {
	h.Write(l)
}

type LineReader struct {
	r    *bufio.Reader
	line int
}

func NewLineReader(r io.Reader, bufSize int) *LineReader {
	return &LineReader{r: newBufReader(r, bufSize)}
}

func (lr *LineReader) Read() (Record, error) {
	raw, err := lr.r.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed reading line %d: %w", lr.line+1, err)
	}
	if len(raw) == 0 {
		return nil, io.EOF
	}
	lr.line++
	return Line(bytes.TrimSuffix(raw, []byte("\n"))), nil
}

type LineWriter struct {
	w *bufio.Writer
}

func NewLineWriter(w io.Writer, bufSize int) *LineWriter {
	return &LineWriter{w: newBufWriter(w, bufSize)}
}

func (lw *LineWriter) Write(rec Record) error {
	line, ok := rec.(Line)
	if !ok {
		return unexpectedRecord("line", rec)
	}
	if _, err := lw.w.Write(line); err != nil {
		return err
	}
	return lw.w.WriteByte('\n')
}

func (lw *LineWriter) Flush() error {
	return lw.w.Flush()
}

func newBufReader(r io.Reader, size int) *bufio.Reader {
	if size <= 0 {
		return bufio.NewReader(r)
	}
	return bufio.NewReaderSize(r, size)
}

func newBufWriter(w io.Writer, size int) *bufio.Writer {
	if size <= 0 {
		return bufio.NewWriter(w)
	}
	return bufio.NewWriterSize(w, size)
}
