package corpus

import (
	"fmt"
	"io"
	"os"
)

// stdio is used when a path is omitted
const stdio = "-"

// IsStdio reports whether path selects stdin or stdout.
func IsStdio(path string) bool {
	return path == "" || path == stdio
}

// OpenInput opens a named file, or stdin for an empty path or "-".
// role names the input in error messages, e.g. "keep".
func OpenInput(path, role string) (io.ReadCloser, error) {
	if IsStdio(path) {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenInput, role, err)
	}
	return f, nil
}

// OpenOutput creates or truncates a named file, or returns stdout for an empty path or "-".
// Closing stdout is a no-op.
func OpenOutput(path string) (io.WriteCloser, error) {
	if IsStdio(path) {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenOutput, err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
