/*
Package settings controls reading configuration from environment and assigning defaults
*/
package settings

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	bedsettings "github.com/AustralianCyberSecurityCentre/azul-bedrock/v9/gosrc/settings"
)

var Settings *HDSettings

var decodeHooks = []mapstructure.DecodeHookFunc{bedsettings.HumanReadableBytesHookFunc()}

type HDMetrics struct {
	// Pushgateway base url, metrics are pushed at exit when set
	Pushgateway string `koanf:"pushgateway"`
	// job label used when pushing
	Job string `koanf:"job"`
	// node-exporter textfile collector path, written at exit when set
	Textfile string `koanf:"textfile"`
}

type HDSettings struct {
	// record format: conllx, lines or jsonl
	Format string `koanf:"format"`
	// gjson path to the key of a jsonl document, empty hashes the whole document
	KeyPath string `koanf:"key_path"`
	// Written between token forms before hashing. Empty keeps the historic behaviour where
	// forms are hashed back to back, so ["ab","c"] and ["a","bc"] share a fingerprint.
	FormSeparator string `koanf:"form_separator"`
	// buffer sizes for input and output streams
	ReadBufferBytes  bedsettings.HumanReadableBytes `koanf:"read_buffer_bytes"`
	WriteBufferBytes bedsettings.HumanReadableBytes `koanf:"write_buffer_bytes"`
	// expected number of distinct records, presizes fingerprint sets
	SetCapacityHint int `koanf:"set_capacity_hint"`
	// how phase reports are written to stderr: text, json or log
	ReportFormat string `koanf:"report_format"`
	LogLevel     string `koanf:"log_level"`
	// for custom log files, the folder to place these file in
	LogPath string    `koanf:"log_path"`
	Metrics HDMetrics `koanf:"metrics"`
}

var defaults HDSettings = HDSettings{
	Format:           "conllx",
	KeyPath:          "",
	FormSeparator:    "",
	ReadBufferBytes:  bedsettings.HumanToBytesFatal("64Ki"),
	WriteBufferBytes: bedsettings.HumanToBytesFatal("64Ki"),
	SetCapacityHint:  0,
	ReportFormat:     "text",
	LogLevel:         "info",
	LogPath:          "",
	Metrics: HDMetrics{
		Pushgateway: "",
		Job:         "hashdedupe",
		Textfile:    "",
	},
}

// ResetSettings reads defaults and environment (HD__FORMAT or HD.FORMAT) and sets up logging.
func ResetSettings() {
	Settings = bedsettings.ParseSettings(defaults, "HD", decodeHooks)
	setupLoggers(Settings)
}

// LoadFile merges a yaml file over the current settings. Zero values in the file are ignored.
// Keys match the environment names and byte sizes accept the same units, e.g. 1Mi.
func LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	tree := map[string]any{}
	err = yaml.Unmarshal(raw, &tree)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	fromFile := HDSettings{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(decodeHooks...),
		ErrorUnused: true,
		Result:      &fromFile,
		TagName:     "koanf",
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	err = decoder.Decode(tree)
	if err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return Override(fromFile)
}

// Override merges the non-zero fields of o over the current settings.
func Override(o HDSettings) error {
	err := mergo.Merge(Settings, o, mergo.WithOverride)
	if err != nil {
		return fmt.Errorf("failed to merge settings: %w", err)
	}
	setupLoggers(Settings)
	return nil
}

func init() {
	ResetSettings()
}
