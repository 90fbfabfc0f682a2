package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/fingerprint"
)

const (
	conllxColumns = 10
	// placeholder for an absent column value
	conllxEmpty = "_"
	RootForm    = "<root>"
)

// Token is one CoNLL-X token line. Columns other than ID are kept verbatim so the
// sentence serialises back exactly as read.
type Token struct {
	ID       int
	Form     string
	Lemma    string
	CPOSTag  string
	POSTag   string
	Features string
	Head     string
	DepRel   string
	PHead    string
	PDepRel  string
}

// Sentence is a dependency-annotated sentence. Tokens[0] is a synthetic root that is never
// serialised and never fingerprinted.
type Sentence struct {
	Tokens []Token
}

// NewSentence builds a sentence from the tokens of a block, prepending the root.
func NewSentence(tokens ...Token) *Sentence {
	all := make([]Token, 0, len(tokens)+1)
	all = append(all, Token{ID: 0, Form: RootForm})
	all = append(all, tokens...)
	return &Sentence{Tokens: all}
}

// WriteKey hashes the forms of all non-root tokens in order.
func (s *Sentence) WriteKey(h *fingerprint.Hasher) {
	for _, tok := range s.Tokens[min(1, len(s.Tokens)):] {
		h.WriteField(tok.Form)
	}
}

type CoNLLXReader struct {
	r    *bufio.Reader
	line int
}

func NewCoNLLXReader(r io.Reader, bufSize int) *CoNLLXReader {
	return &CoNLLXReader{r: newBufReader(r, bufSize)}
}

// Read returns the next *Sentence. Blank lines separate sentences; runs of blank lines are
// tolerated.
func (cr *CoNLLXReader) Read() (Record, error) {
	var tokens []Token
	for {
		raw, err := cr.r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed reading line %d: %w", cr.line+1, err)
		}
		eof := err != nil
		if len(raw) > 0 {
			cr.line++
		}
		text := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(text) == "" {
			if len(tokens) > 0 {
				return NewSentence(tokens...), nil
			}
			if eof {
				return nil, io.EOF
			}
			continue
		}
		tok, err := parseToken(text, cr.line)
		if err != nil {
			return nil, err
		}
		if tok.ID != len(tokens)+1 {
			return nil, parseErrorf(cr.line, "expected token id %d, got %d", len(tokens)+1, tok.ID)
		}
		tokens = append(tokens, tok)
		if eof {
			return NewSentence(tokens...), nil
		}
	}
}

func parseToken(text string, line int) (Token, error) {
	cols := strings.Split(text, "\t")
	if len(cols) != conllxColumns {
		return Token{}, parseErrorf(line, "expected %d tab separated columns, got %d", conllxColumns, len(cols))
	}
	for idx, col := range cols {
		if col == "" {
			return Token{}, parseErrorf(line, "column %d is empty, use '%s' for absent values", idx+1, conllxEmpty)
		}
	}
	id, err := strconv.Atoi(cols[0])
	if err != nil {
		return Token{}, parseErrorf(line, "token id '%s' is not an integer", cols[0])
	}
	for _, idx := range []int{6, 8} {
		if cols[idx] == conllxEmpty {
			continue
		}
		if _, err := strconv.Atoi(cols[idx]); err != nil {
			return Token{}, parseErrorf(line, "head '%s' is not an integer", cols[idx])
		}
	}
	return Token{
		ID:       id,
		Form:     cols[1],
		Lemma:    cols[2],
		CPOSTag:  cols[3],
		POSTag:   cols[4],
		Features: cols[5],
		Head:     cols[6],
		DepRel:   cols[7],
		PHead:    cols[8],
		PDepRel:  cols[9],
	}, nil
}

type CoNLLXWriter struct {
	w *bufio.Writer
}

func NewCoNLLXWriter(w io.Writer, bufSize int) *CoNLLXWriter {
	return &CoNLLXWriter{w: newBufWriter(w, bufSize)}
}

func (cw *CoNLLXWriter) Write(rec Record) error {
	sent, ok := rec.(*Sentence)
	if !ok {
		return unexpectedRecord("conllx", rec)
	}
	for _, tok := range sent.Tokens[min(1, len(sent.Tokens)):] {
		_, err := fmt.Fprintf(cw.w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tok.ID, orEmpty(tok.Form), orEmpty(tok.Lemma), orEmpty(tok.CPOSTag), orEmpty(tok.POSTag),
			orEmpty(tok.Features), orEmpty(tok.Head), orEmpty(tok.DepRel), orEmpty(tok.PHead), orEmpty(tok.PDepRel))
		if err != nil {
			return err
		}
	}
	return cw.w.WriteByte('\n')
}

func (cw *CoNLLXWriter) Flush() error {
	return cw.w.Flush()
}

func orEmpty(s string) string {
	if s == "" {
		return conllxEmpty
	}
	return s
}
