package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile    string
	format        string
	keyPath       string
	formSeparator string
	reportFormat  string
	logLevel      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "azul-hashdedupe",
	Short: "Deduplicate large corpora by content fingerprint",
	Long: `Removes duplicate records from large corpora by comparing 64-bit xxHash
fingerprints of their content.

Records are CoNLL-X sentences by default (fingerprinted on token forms), or raw
lines, or JSON lines documents keyed by a gjson path.

Fingerprints are seeded randomly on every run. They are never comparable between
runs and there is a small, accepted chance that two different records collide.

Settings are read from environment (HD__FORMAT=lines or HD.FORMAT=lines), then an
optional yaml file (--config), then command line flags.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "yaml file with settings, overrides environment")
	flags.StringVar(&format, "format", "", "record format: conllx, lines or jsonl")
	flags.StringVar(&keyPath, "key-path", "", "gjson path of the key in jsonl documents (default whole document)")
	flags.StringVar(&formSeparator, "form-separator", "", "bytes written between token forms before hashing (changes fingerprints)")
	flags.StringVar(&reportFormat, "report-format", "", "phase report format on stderr: text, json or log")
	flags.StringVar(&logLevel, "log-level", "", "zerolog level for diagnostics")
}
