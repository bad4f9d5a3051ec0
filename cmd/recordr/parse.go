package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/RecordR/internal/recordr/assembler"
	"github.com/vaibhaw-/RecordR/internal/recordr/config"
	"github.com/vaibhaw-/RecordR/internal/recordr/logger"
	"github.com/vaibhaw-/RecordR/internal/recordr/parsers"
	"github.com/vaibhaw-/RecordR/internal/recordr/runner"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert raw session payloads → NDJSON records",
	RunE:  runParse,
}

var (
	flagMapping         string
	flagMappingFormat   string
	flagFormat          string
	flagCSVDelimiter    string
	flagInput           string
	flagOutput          string
	flagRejectFile      string
	flagLenient         bool
	flagFailFast        bool
	flagMetricsTextfile string
)

func init() {
	parseCmd.Flags().StringVar(&flagMapping, "mapping", "", "field mapping file (json or yaml)")
	parseCmd.Flags().StringVar(&flagMappingFormat, "mapping-format", "", "mapping file format: auto|json|yaml")
	parseCmd.Flags().StringVar(&flagFormat, "format", "", "payload format: json|regex|csv")
	parseCmd.Flags().StringVar(&flagCSVDelimiter, "csv-delimiter", "", "csv field delimiter")
	parseCmd.Flags().StringVar(&flagInput, "input", "", "input file, one payload per line (default stdin)")
	parseCmd.Flags().StringVar(&flagOutput, "output", "", "output file (default stdout)")
	parseCmd.Flags().StringVar(&flagRejectFile, "reject-file", "", "file to store rejected payloads")
	parseCmd.Flags().BoolVar(&flagLenient, "lenient-timestamps", false, "fall back to free-form date parsing for non ISO-8601 timestamps")
	parseCmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "abort on the first payload that fails instead of rejecting it")
	parseCmd.Flags().StringVar(&flagMetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file when the run ends")
}

// applyParseFlags overrides config values with flags set on the command line.
func applyParseFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagMapping != "" {
		cfg.Mapping.File = flagMapping
	}
	if flagMappingFormat != "" {
		cfg.Mapping.Format = flagMappingFormat
	}
	if flagFormat != "" {
		cfg.Parser.Format = flagFormat
	}
	if flagCSVDelimiter != "" {
		cfg.Parser.CSV.Delimiter = flagCSVDelimiter
	}
	if flagInput != "" {
		cfg.Input.FilePath = flagInput
	}
	if flagRejectFile != "" {
		cfg.Output.RejectFile = flagRejectFile
	}
	if cmd.Flags().Changed("lenient-timestamps") {
		cfg.Timestamps.Lenient = flagLenient
	}
	if cmd.Flags().Changed("fail-fast") {
		cfg.Runner.FailFast = flagFailFast
	}
	if flagMetricsTextfile != "" {
		cfg.Metrics.Textfile = flagMetricsTextfile
	}
}

// openOutput picks --output, then <output.dir>/records.ndjson, then stdout.
func openOutput(cfg *config.Config) (io.Writer, func() error, error) {
	path := flagOutput
	if path == "" && cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
		path = filepath.Join(cfg.Output.Dir, "records.ndjson")
	}
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}

// finishOutput closes the record output. A close failure loses buffered
// records, so it fails the run unless the run already failed.
func finishOutput(runErr error, closeOut func() error) error {
	if err := closeOut(); err != nil && runErr == nil {
		return fmt.Errorf("close output: %w", err)
	}
	return runErr
}

func buildParser(cfg *config.Config) (parsers.PayloadParser, error) {
	p, err := parsers.NewFactory().NewParser(cfg.Parser.Format, parsers.ParserOptions{
		CSVDelimiter: cfg.Parser.CSV.Delimiter,
		CSVColumns:   cfg.Parser.CSV.Columns,
	})
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}
	return p, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logger.L()
	cfg := config.Get()
	applyParseFlags(cmd, cfg)

	if cfg.Mapping.File == "" {
		return fmt.Errorf("a mapping file is required (--mapping or mapping.file)")
	}
	mapping, err := config.LoadMappingFile(cfg.Mapping.File, cfg.Mapping.Format)
	if err != nil {
		return err
	}

	p, err := buildParser(cfg)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	var metrics *assembler.Metrics
	if cfg.Metrics.Textfile != "" {
		reg = prometheus.NewRegistry()
		if metrics, err = assembler.NewMetrics(reg); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
	}

	asm, err := assembler.New(mapping, p,
		assembler.WithMetrics(metrics),
		assembler.WithLenientTimestamps(cfg.Timestamps.Lenient),
	)
	if err != nil {
		log.Errorw("mapping rejected", "file", cfg.Mapping.File, "err", err.Error())
		return err
	}
	log.Infow("mapping loaded",
		"file", cfg.Mapping.File,
		"fields", len(mapping),
		"mode", asm.Mode().String(),
		"format", cfg.Parser.Format)

	// Input reader
	var in io.Reader = os.Stdin
	if cfg.Input.FilePath != "" {
		f, err := os.Open(cfg.Input.FilePath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out, closeOut, err := openOutput(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, runErr := runner.RunParse(ctx, asm, in, out, cfg)
	runErr = finishOutput(runErr, closeOut)

	if reg != nil {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.Errorw("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "err", err.Error())
		}
	}
	return runErr
}
