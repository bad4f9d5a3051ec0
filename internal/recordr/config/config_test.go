package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := Get()
	if cfg.Version != "0.1" {
		t.Errorf("default Version = %v, want 0.1", cfg.Version)
	}
	if cfg.Mapping.Format != "auto" {
		t.Errorf("default Mapping.Format = %v, want auto", cfg.Mapping.Format)
	}
	if cfg.Parser.Format != "json" {
		t.Errorf("default Parser.Format = %v, want json", cfg.Parser.Format)
	}
	if cfg.Parser.CSV.Delimiter != "," {
		t.Errorf("default CSV.Delimiter = %q, want ,", cfg.Parser.CSV.Delimiter)
	}
	if cfg.Output.Format != "ndjson" {
		t.Errorf("default Format = %v, want ndjson", cfg.Output.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Level = %v, want info", cfg.Logging.Level)
	}
	if cfg.Timestamps.Lenient {
		t.Error("default Timestamps.Lenient = true, want false")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	v := viper.New()
	v.Set("version", "0.2")
	v.Set("mapping.file", "./mapping.yaml")
	v.Set("mapping.format", "yaml")
	v.Set("parser.format", "csv")
	v.Set("parser.csv.delimiter", ";")
	v.Set("parser.csv.columns", []string{"ts", "user", "query"})
	v.Set("timestamps.lenient", true)
	v.Set("input.mode", "file")
	v.Set("input.file_path", "./input.log")
	v.Set("output.dir", "./output")
	v.Set("output.reject_file", "./rejected.jsonl")
	v.Set("logging.level", "debug")
	v.Set("logging.development", true)
	v.Set("logging.run_log", "./run.jsonl")
	v.Set("metrics.textfile", "./recordr.prom")
	v.Set("runner.fail_fast", true)

	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := Get()

	if cfg.Version != "0.2" {
		t.Errorf("Version = %v, want 0.2", cfg.Version)
	}

	// Mapping
	if cfg.Mapping.File != "./mapping.yaml" {
		t.Errorf("Mapping.File = %v, want ./mapping.yaml", cfg.Mapping.File)
	}
	if cfg.Mapping.Format != "yaml" {
		t.Errorf("Mapping.Format = %v, want yaml", cfg.Mapping.Format)
	}

	// Parser
	if cfg.Parser.Format != "csv" {
		t.Errorf("Parser.Format = %v, want csv", cfg.Parser.Format)
	}
	if cfg.Parser.CSV.Delimiter != ";" {
		t.Errorf("CSV.Delimiter = %v, want ;", cfg.Parser.CSV.Delimiter)
	}
	if len(cfg.Parser.CSV.Columns) != 3 || cfg.Parser.CSV.Columns[2] != "query" {
		t.Errorf("CSV.Columns = %v, want [ts user query]", cfg.Parser.CSV.Columns)
	}
	if !cfg.Timestamps.Lenient {
		t.Error("Timestamps.Lenient = false, want true")
	}

	// Input / Output
	if cfg.Input.FilePath != "./input.log" {
		t.Errorf("FilePath = %v, want ./input.log", cfg.Input.FilePath)
	}
	if cfg.Output.Dir != "./output" {
		t.Errorf("Dir = %v, want ./output", cfg.Output.Dir)
	}
	if cfg.Output.RejectFile != "./rejected.jsonl" {
		t.Errorf("RejectFile = %v, want ./rejected.jsonl", cfg.Output.RejectFile)
	}

	// Logging
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v, want debug", cfg.Logging.Level)
	}
	if !cfg.Logging.Development {
		t.Error("Development = false, want true")
	}
	if cfg.Logging.RunLog != "./run.jsonl" {
		t.Errorf("RunLog = %v, want ./run.jsonl", cfg.Logging.RunLog)
	}
	if cfg.Metrics.Textfile != "./recordr.prom" {
		t.Errorf("Metrics.Textfile = %v, want ./recordr.prom", cfg.Metrics.Textfile)
	}
	if !cfg.Runner.FailFast {
		t.Error("Runner.FailFast = false, want true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECORDR_MAPPING_FILE", "/etc/recordr/mapping.yaml")
	t.Setenv("RECORDR_INPUT_FILE_PATH", "/var/log/payloads.log")
	t.Setenv("RECORDR_OUTPUT_REJECT_FILE", "/tmp/rejects.jsonl")
	t.Setenv("RECORDR_PARSER_FORMAT", "regex")
	t.Setenv("RECORDR_RUNNER_FAIL_FAST", "true")

	v := viper.New()
	BindEnv(v)
	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := Get()
	if cfg.Mapping.File != "/etc/recordr/mapping.yaml" {
		t.Errorf("Mapping.File = %q, want /etc/recordr/mapping.yaml", cfg.Mapping.File)
	}
	if cfg.Input.FilePath != "/var/log/payloads.log" {
		t.Errorf("Input.FilePath = %q, want /var/log/payloads.log", cfg.Input.FilePath)
	}
	if cfg.Output.RejectFile != "/tmp/rejects.jsonl" {
		t.Errorf("Output.RejectFile = %q, want /tmp/rejects.jsonl", cfg.Output.RejectFile)
	}
	if cfg.Parser.Format != "regex" {
		t.Errorf("Parser.Format = %q, want regex", cfg.Parser.Format)
	}
	if !cfg.Runner.FailFast {
		t.Error("Runner.FailFast = false, want true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	v := viper.New()
	v.Set("timestamps.lenient", "sometimes") // not a bool

	if err := Load(v); err == nil {
		t.Error("Load() error = nil, want error for invalid config")
	}
}

func TestGet_NilConfig(t *testing.T) {
	cfg = nil

	c := Get()
	if c == nil {
		t.Error("Get() = nil, want empty config")
	}
	if c.Version != "" {
		t.Errorf("Version = %v, want empty string", c.Version)
	}
}

func TestGet_Singleton(t *testing.T) {
	cfg = nil

	c1 := Get()
	if c1 == nil {
		t.Fatal("Get() returned nil")
	}

	c2 := Get()
	if c2 != c1 {
		t.Error("Get() returned different instance")
	}
}
