package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"conllx", "lines", "jsonl"} {
		f, err := ParseFormat(name)
		require.Nil(t, err)
		require.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("csv")
	require.ErrorContains(t, err, "unknown format 'csv'")
}

func TestFormatNoun(t *testing.T) {
	require.Equal(t, "sentences", FormatCoNLLX.Noun())
	require.Equal(t, "lines", FormatLines.Noun())
	require.Equal(t, "documents", FormatJSONL.Noun())
}

func TestNewReaderWriter(t *testing.T) {
	r, err := NewReader(strings.NewReader("a\n"), Options{Format: FormatLines})
	require.Nil(t, err)
	require.IsType(t, &LineReader{}, r)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, Options{Format: FormatJSONL})
	require.Nil(t, err)
	require.IsType(t, &JSONLWriter{}, w)

	r, err = NewReader(strings.NewReader(""), Options{})
	require.Nil(t, err)
	require.IsType(t, &CoNLLXReader{}, r)

	_, err = NewReader(strings.NewReader(""), Options{Format: "csv"})
	require.NotNil(t, err)
	_, err = NewWriter(&buf, Options{Format: "csv"})
	require.NotNil(t, err)
}

func TestOpenInput(t *testing.T) {
	_, err := OpenInput(filepath.Join(t.TempDir(), "missing"), "keep")
	require.ErrorIs(t, err, ErrOpenInput)
	require.Contains(t, err.Error(), "keep")

	path := filepath.Join(t.TempDir(), "in.txt")
	require.Nil(t, os.WriteFile(path, []byte("a\n"), 0o600))
	in, err := OpenInput(path, "input")
	require.Nil(t, err)
	require.Nil(t, in.Close())

	in, err = OpenInput("", "input")
	require.Nil(t, err)
	require.NotNil(t, in)
}

func TestOpenOutput(t *testing.T) {
	_, err := OpenOutput(filepath.Join(t.TempDir(), "missing", "out.txt"))
	require.ErrorIs(t, err, ErrOpenOutput)

	path := filepath.Join(t.TempDir(), "out.txt")
	out, err := OpenOutput(path)
	require.Nil(t, err)
	_, err = out.Write([]byte("x"))
	require.Nil(t, err)
	require.Nil(t, out.Close())
	raw, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, "x", string(raw))

	out, err = OpenOutput("-")
	require.Nil(t, err)
	require.Nil(t, out.Close())
}
