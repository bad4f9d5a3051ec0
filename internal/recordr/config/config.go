package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LoggingCfg struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	RunLog      string `mapstructure:"run_log"`
}

// MappingCfg locates the field-mapping file. Format is auto, json or yaml.
type MappingCfg struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

type CSVCfg struct {
	Delimiter string `mapstructure:"delimiter"`
	// Columns names the CSV columns so mapping keys can use names instead of indexes.
	Columns []string `mapstructure:"columns"`
}

// ParserCfg selects the payload parser used for every line of input.
type ParserCfg struct {
	Format string `mapstructure:"format"`
	CSV    CSVCfg `mapstructure:"csv"`
}

type TimestampsCfg struct {
	// Lenient falls back to dateparse for timestamps that are not ISO-8601.
	Lenient bool `mapstructure:"lenient"`
}

type InputCfg struct {
	Mode     string `mapstructure:"mode"`
	FilePath string `mapstructure:"file_path"`
}

type OutputCfg struct {
	Format     string `mapstructure:"format"`
	Dir        string `mapstructure:"dir"`
	RejectFile string `mapstructure:"reject_file"`
}

type RunnerCfg struct {
	// FailFast aborts the run on the first payload that fails with an error
	// instead of writing it to the reject file.
	FailFast bool `mapstructure:"fail_fast"`
}

type MetricsCfg struct {
	// Textfile, when set, receives the metrics in Prometheus text format at the end of a run.
	Textfile string `mapstructure:"textfile"`
}

type Config struct {
	Version    string        `mapstructure:"version"`
	Mapping    MappingCfg    `mapstructure:"mapping"`
	Parser     ParserCfg     `mapstructure:"parser"`
	Timestamps TimestampsCfg `mapstructure:"timestamps"`
	Input      InputCfg      `mapstructure:"input"`
	Output     OutputCfg     `mapstructure:"output"`
	Runner     RunnerCfg     `mapstructure:"runner"`
	Logging    LoggingCfg    `mapstructure:"logging"`
	Metrics    MetricsCfg    `mapstructure:"metrics"`
}

var cfg *Config

// EnvPrefix prefixes environment overrides: mapping.file is RECORDR_MAPPING_FILE.
const EnvPrefix = "RECORDR"

// BindEnv lets environment variables override config keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults; every key needs one so Unmarshal sees env overrides
	v.SetDefault("version", "0.1")
	v.SetDefault("mapping.file", "")
	v.SetDefault("mapping.format", "auto")
	v.SetDefault("parser.format", "json")
	v.SetDefault("parser.csv.delimiter", ",")
	v.SetDefault("parser.csv.columns", []string{})
	v.SetDefault("timestamps.lenient", false)
	v.SetDefault("input.mode", "file")
	v.SetDefault("input.file_path", "")
	v.SetDefault("output.format", "ndjson")
	v.SetDefault("output.dir", "")
	v.SetDefault("output.reject_file", "")
	v.SetDefault("runner.fail_fast", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.run_log", "")
	v.SetDefault("metrics.textfile", "")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
