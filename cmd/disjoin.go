package cmd

import (
	"github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/engine"
	st "github.com/AustralianCyberSecurityCentre/azul-hashdedupe.git/settings"
	"github.com/spf13/cobra"
)

// disjoinCmd represents the disjoin command
var disjoinCmd = &cobra.Command{
	Use:   "disjoin [REMOVE_SET [KEEP_SET [OUTPUT]]]",
	Short: "Remove records present in REMOVE_SET from KEEP_SET",
	Long: `Removes records present in REMOVE_SET from KEEP_SET based on their xxHash.

REMOVE_SET is read completely before any record of KEEP_SET is read. Records of
KEEP_SET are written to OUTPUT in their original order. Duplicates within KEEP_SET
are kept. Omitted paths (or '-') read from stdin or write to stdout.

One report line per set is written to stderr.`,
	Example: `azul-hashdedupe disjoin test.conllx train.conllx train-clean.conllx
azul-hashdedupe disjoin --format jsonl --key-path text held-out.jsonl crawl.jsonl > crawl-clean.jsonl`,
	Args: cobra.MaximumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancelFunc := runContext()
		defer cancelFunc()
		exitOnError(loadSettings(cmd), "Error loading settings:")
		opts, err := corpusOptions()
		exitOnError(err, "Error in settings:")
		engOpts, err := engineOptions(opts)
		exitOnError(err, "Error in settings:")

		if bothStdin(argOr(args, 0), argOr(args, 1)) {
			st.Logger.Warn().Msg("remove and keep sets both read stdin, keep set will be empty")
		}
		keep, keepIn := openReader(argOr(args, 1), "keep", opts)
		defer keepIn.Close()
		remove, removeIn := openReader(argOr(args, 0), "remove", opts)
		defer removeIn.Close()
		sink, out := openWriter(argOr(args, 2), opts)

		eng, err := engine.NewDisjoin(engOpts...)
		exitOnError(err, "Error creating engine:")
		st.Logger.Debug().Str("format", string(opts.Format)).Msg("starting disjoin")
		_, err = eng.Run(ctx, remove, keep, sink)
		exitOnError(err, "Error performing disjoin:")
		finish(out)
	},
}

func init() {
	rootCmd.AddCommand(disjoinCmd)
}
