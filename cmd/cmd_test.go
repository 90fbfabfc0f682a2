package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus"
	st "github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/settings"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestArgOr(t *testing.T) {
	require.Equal(t, "a", argOr([]string{"a", "b"}, 0))
	require.Equal(t, "", argOr([]string{"a"}, 2))
}

func TestBothStdin(t *testing.T) {
	table := []struct {
		remove string
		keep   string
		want   bool
	}{
		{"", "", true},
		{"-", "-", true},
		{"-", "", true},
		{"", "-", true},
		{"remove.conllx", "", false},
		{"-", "keep.conllx", false},
		{"same.conllx", "same.conllx", false},
	}
	for _, table := range table {
		require.Equal(t, table.want, bothStdin(table.remove, table.keep), "remove=%q keep=%q", table.remove, table.keep)
	}
}

func TestDisjoinCommand(t *testing.T) {
	defer st.ResetSettings()
	dir := t.TempDir()
	a := "1\tthe\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
	b := "1\ta\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
	c := "1\tcat\t_\t_\t_\t_\t0\t_\t_\t_\n\n"
	remove := writeFile(t, dir, "remove.conllx", a+b)
	keep := writeFile(t, dir, "keep.conllx", a+c+b+c)
	out := filepath.Join(dir, "out.conllx")

	rootCmd.SetArgs([]string{"disjoin", "--format", "conllx", remove, keep, out})
	require.Nil(t, rootCmd.Execute())
	raw, err := os.ReadFile(out)
	require.Nil(t, err)
	require.Equal(t, c+c, string(raw))
}

func TestDedupCommand(t *testing.T) {
	defer st.ResetSettings()
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "x\ny\nx\nz\ny\n")
	out := filepath.Join(dir, "out.txt")
	textfile := filepath.Join(dir, "metrics.prom")
	config := writeFile(t, dir, "config.yaml", "metrics:\n  textfile: "+textfile+"\n")

	rootCmd.SetArgs([]string{"dedup", "--config", config, "--format", "lines", "--report-format", "json", "--input", in, out})
	require.Nil(t, rootCmd.Execute())
	raw, err := os.ReadFile(out)
	require.Nil(t, err)
	require.Equal(t, "x\ny\nz\n", string(raw))
	require.Equal(t, "json", st.Settings.ReportFormat)
	_, err = os.Stat(textfile)
	require.Nil(t, err)
}

func TestCorpusOptions(t *testing.T) {
	defer st.ResetSettings()
	st.ResetSettings()
	require.Nil(t, st.Override(st.HDSettings{Format: "jsonl", KeyPath: "id"}))
	opts, err := corpusOptions()
	require.Nil(t, err)
	require.Equal(t, corpus.FormatJSONL, opts.Format)
	require.Equal(t, "id", opts.KeyPath)
	require.Equal(t, 64*1024, opts.ReadBufferSize)

	require.Nil(t, st.Override(st.HDSettings{Format: "csv"}))
	_, err = corpusOptions()
	require.NotNil(t, err)
}

func TestEngineOptions(t *testing.T) {
	defer st.ResetSettings()
	st.ResetSettings()
	opts, err := engineOptions(corpus.Options{Format: corpus.FormatLines})
	require.Nil(t, err)
	require.Len(t, opts, 3)

	require.Nil(t, st.Override(st.HDSettings{ReportFormat: "xml"}))
	_, err = engineOptions(corpus.Options{Format: corpus.FormatLines})
	require.NotNil(t, err)
}
