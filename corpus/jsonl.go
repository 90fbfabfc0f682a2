package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
	"github.com/tidwall/gjson"
)

// Document is one line of a JSON lines file. Key is the raw JSON selected as its identity.
type Document struct {
	Raw []byte
	Key []byte
}

func (d *Document) WriteKey(h *fingerprint.Hasher) {
	h.Write(d.Key)
}

type JSONLReader struct {
	r       *bufio.Reader
	keyPath string
	line    int
}

// NewJSONLReader reads one JSON document per line, keyed by the gjson path keyPath or by the
// whole document when keyPath is empty. Blank lines are skipped.
func NewJSONLReader(r io.Reader, bufSize int, keyPath string) *JSONLReader {
	return &JSONLReader{r: newBufReader(r, bufSize), keyPath: keyPath}
}

func (jr *JSONLReader) Read() (Record, error) {
	for {
		raw, err := jr.r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed reading line %d: %w", jr.line+1, err)
		}
		if len(raw) == 0 {
			return nil, io.EOF
		}
		jr.line++
		raw = bytes.TrimRight(raw, "\r\n")
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		if !gjson.ValidBytes(raw) {
			return nil, parseErrorf(jr.line, "invalid json document")
		}
		if jr.keyPath == "" {
			return &Document{Raw: raw, Key: raw}, nil
		}
		res := gjson.GetBytes(raw, jr.keyPath)
		if !res.Exists() {
			return nil, parseErrorf(jr.line, "key path '%s' not present", jr.keyPath)
		}
		return &Document{Raw: raw, Key: []byte(res.Raw)}, nil
	}
}

type JSONLWriter struct {
	w *bufio.Writer
}

func NewJSONLWriter(w io.Writer, bufSize int) *JSONLWriter {
	return &JSONLWriter{w: newBufWriter(w, bufSize)}
}

func (jw *JSONLWriter) Write(rec Record) error {
	doc, ok := rec.(*Document)
	if !ok {
		return unexpectedRecord("jsonl", rec)
	}
	if _, err := jw.w.Write(doc.Raw); err != nil {
		return err
	}
	return jw.w.WriteByte('\n')
}

func (jw *JSONLWriter) Flush() error {
	return jw.w.Flush()
}
