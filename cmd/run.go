package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/corpus"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/engine"
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/prom"
	st "github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/settings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// exitOnError writes a diagnostic line and terminates. Output already written is not removed.
func exitOnError(err error, msg string) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, msg, err)
	_ = st.CloseLogs()
	os.Exit(1)
}

// argOr returns the positional argument at idx or "" (stdin/stdout) when omitted.
func argOr(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}
	return ""
}

// bothStdin reports whether both paths select stdin.
func bothStdin(remove, keep string) bool {
	return corpus.IsStdio(remove) && corpus.IsStdio(keep)
}

// loadSettings applies the config file then any flags given on the command line.
func loadSettings(cmd *cobra.Command) error {
	if configFile != "" {
		if err := st.LoadFile(configFile); err != nil {
			return err
		}
	}
	o := st.HDSettings{}
	flags := cmd.Flags()
	if flags.Changed("format") {
		o.Format = format
	}
	if flags.Changed("key-path") {
		o.KeyPath = keyPath
	}
	if flags.Changed("form-separator") {
		o.FormSeparator = formSeparator
	}
	if flags.Changed("report-format") {
		o.ReportFormat = reportFormat
	}
	if flags.Changed("log-level") {
		o.LogLevel = logLevel
	}
	return st.Override(o)
}

func corpusOptions() (corpus.Options, error) {
	f, err := corpus.ParseFormat(st.Settings.Format)
	if err != nil {
		return corpus.Options{}, err
	}
	return corpus.Options{
		Format:          f,
		KeyPath:         st.Settings.KeyPath,
		ReadBufferSize:  int(st.Settings.ReadBufferBytes),
		WriteBufferSize: int(st.Settings.WriteBufferBytes),
	}, nil
}

func engineOptions(opts corpus.Options) ([]engine.Option, error) {
	reporter, err := engine.NewReporter(st.Settings.ReportFormat, os.Stderr, st.Logger, opts.Format.Noun())
	if err != nil {
		return nil, err
	}
	return []engine.Option{
		engine.WithReporter(reporter),
		engine.WithSeparator([]byte(st.Settings.FormSeparator)),
		engine.WithCapacityHint(st.Settings.SetCapacityHint),
	}, nil
}

func openReader(path, role string, opts corpus.Options) (corpus.Reader, io.Closer) {
	in, err := corpus.OpenInput(path, role)
	exitOnError(err, fmt.Sprintf("Failed opening %s input:", role))
	r, err := corpus.NewReader(in, opts)
	exitOnError(err, "Error creating reader:")
	return r, in
}

func openWriter(path string, opts corpus.Options) (corpus.Writer, io.Closer) {
	out, err := corpus.OpenOutput(path)
	exitOnError(err, "Failed opening output:")
	w, err := corpus.NewWriter(out, opts)
	exitOnError(err, "Error creating writer:")
	return w, out
}

// runContext is cancelled on SIGINT/SIGTERM.
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// finish closes the output and delivers metrics.
func finish(out io.Closer) {
	exitOnError(out.Close(), "Failed closing output:")
	err := prom.Export(prometheus.DefaultGatherer, st.Settings.Metrics.Pushgateway, st.Settings.Metrics.Job, st.Settings.Metrics.Textfile)
	if err != nil {
		// metrics are best effort, records are already written
		st.Logger.Warn().Err(err).Msg("could not export metrics")
	}
	_ = st.CloseLogs()
}
