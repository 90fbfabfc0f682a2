package cmd

import (
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/engine"
	st "github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/settings"
	"github.com/spf13/cobra"
)

var dedupInput string

// dedupCmd represents the dedup command
var dedupCmd = &cobra.Command{
	Use:   "dedup [OUTPUT]",
	Short: "Keep the first occurrence of every record",
	Long: `Reads records from stdin and writes the first occurrence of each to OUTPUT
(stdout when omitted), preserving input order.

A single report line is written to stderr at the end of input.`,
	Example: `azul-hashdedupe dedup --format lines < sentences.txt > unique.txt
azul-hashdedupe dedup corpus-unique.conllx < corpus.conllx`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancelFunc := runContext()
		defer cancelFunc()
		exitOnError(loadSettings(cmd), "Error loading settings:")
		opts, err := corpusOptions()
		exitOnError(err, "Error in settings:")
		engOpts, err := engineOptions(opts)
		exitOnError(err, "Error in settings:")

		src, in := openReader(dedupInput, "input", opts)
		defer in.Close()
		sink, out := openWriter(argOr(args, 0), opts)

		eng, err := engine.NewDedup(engOpts...)
		exitOnError(err, "Error creating engine:")
		st.Logger.Debug().Str("format", string(opts.Format)).Msg("starting dedup")
		_, err = eng.Run(ctx, src, sink)
		exitOnError(err, "Error performing dedup:")
		finish(out)
	},
}

func init() {
	rootCmd.AddCommand(dedupCmd)

	dedupCmd.Flags().StringVar(&dedupInput, "input", "", "read from this file instead of stdin")
}
