package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
	"github.com/vaibhaw-/RecordR/internal/recordr/logger"
	"github.com/vaibhaw-/RecordR/internal/recordr/record"
)

// maxPayloadBytes bounds a single input line.
const maxPayloadBytes = 4 * 1024 * 1024

// Reject reasons.
const (
	ReasonInvalidPayload = "invalid payload"
)

// RecordParser turns one payload into a record. A nil record with a nil
// error means the payload was rejected as invalid.
type RecordParser interface {
	ParseRecord(payload *string) (*record.Record, error)
}

type RunSummary struct {
	Timestamp     string `json:"timestamp"`
	Input         string `json:"input"`
	Output        string `json:"output"`
	RejectFile    string `json:"reject_file,omitempty"`
	RawCount      int    `json:"raw_count"`
	ParsedCount   int    `json:"parsed_count"`
	RejectedCount int    `json:"rejected_count"`
}

// RejectEntry is one line of the reject file.
type RejectEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Line      int    `json:"line"`
	Reason    string `json:"reason"`
	Payload   string `json:"payload"`
}

func newRejectEntry(lineNo int, reason, payload string) RejectEntry {
	return RejectEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Line:      lineNo,
		Reason:    reason,
		Payload:   payload,
	}
}

// recordEncoder writes records as NDJSON and rejects to the optional reject file.
type recordEncoder struct {
	enc    *json.Encoder
	reject *json.Encoder
	log    *zap.SugaredLogger
}

func newRecordEncoder(out io.Writer, reject io.Writer) *recordEncoder {
	var rejectEnc *json.Encoder
	if reject != nil {
		rejectEnc = json.NewEncoder(reject)
	}
	return &recordEncoder{
		enc:    json.NewEncoder(out),
		reject: rejectEnc,
		log:    logger.L(),
	}
}

func (e *recordEncoder) encodeRecord(rec *record.Record) error {
	if err := e.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}

func (e *recordEncoder) encodeReject(entry RejectEntry) error {
	if e.reject == nil {
		return nil
	}
	if err := e.reject.Encode(entry); err != nil {
		return fmt.Errorf("encode reject entry: %w", err)
	}
	return nil
}

func appendRunLog(path string, summary RunSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(summary)
}

// openRejectFile opens the reject file if configured, returns nil if not configured
func openRejectFile(cfg *config.Config) (io.WriteCloser, error) {
	if cfg == nil || cfg.Output.RejectFile == "" {
		return nil, nil
	}
	return os.OpenFile(cfg.Output.RejectFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// processLine handles one payload. It reports whether a record was written.
// A parse error is fatal only when failFast is set; otherwise the payload is
// rejected with the error as its reason.
func processLine(lineNo int, line string, p RecordParser, enc *recordEncoder, failFast bool) (bool, error) {
	log := enc.log

	rec, err := p.ParseRecord(&line)
	if err != nil {
		if failFast {
			return false, fmt.Errorf("line %d: %w", lineNo, err)
		}
		log.Debugw("rejecting payload", "line_number", lineNo, "err", err.Error())
		return false, enc.encodeReject(newRejectEntry(lineNo, err.Error(), line))
	}

	if rec == nil {
		log.Debugw("rejecting payload", "line_number", lineNo, "reason", ReasonInvalidPayload)
		return false, enc.encodeReject(newRejectEntry(lineNo, ReasonInvalidPayload, line))
	}

	if err := enc.encodeRecord(rec); err != nil {
		return false, err
	}
	return true, nil
}

// RunParse reads one payload per line from in, writes each accepted record
// to out as NDJSON and each rejected payload to the configured reject file.
// When cfg names a run log, a RunSummary is appended to it.
func RunParse(ctx context.Context, p RecordParser, in io.Reader, out io.Writer, cfg *config.Config) (RunSummary, error) {
	log := logger.L()
	if cfg == nil {
		cfg = &config.Config{}
	}
	log.Infow("starting parse run",
		"input", cfg.Input.FilePath,
		"output", cfg.Output.Dir,
		"reject_file", cfg.Output.RejectFile,
		"fail_fast", cfg.Runner.FailFast)

	summary := RunSummary{
		Input:      cfg.Input.FilePath,
		Output:     cfg.Output.Dir,
		RejectFile: cfg.Output.RejectFile,
	}

	rejectFile, err := openRejectFile(cfg)
	if err != nil {
		log.Errorw("failed to open reject file",
			"path", cfg.Output.RejectFile,
			"err", err.Error())
		return summary, fmt.Errorf("open reject file: %w", err)
	}
	if rejectFile != nil {
		defer rejectFile.Close()
	}

	enc := newRecordEncoder(out, rejectFile)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPayloadBytes)
	startTime := time.Now()

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.RawCount++
		if summary.RawCount%1000 == 0 {
			log.Infow("processing progress",
				"lines_processed", summary.RawCount,
				"parsed_count", summary.ParsedCount,
				"rejected_count", summary.RejectedCount)
		}

		parsed, err := processLine(summary.RawCount, scanner.Text(), p, enc, cfg.Runner.FailFast)
		if err != nil {
			log.Errorw("failed to process line",
				"line_number", summary.RawCount,
				"err", err.Error())
			return summary, err
		}

		if parsed {
			summary.ParsedCount++
		} else {
			summary.RejectedCount++
		}
	}

	if err := scanner.Err(); err != nil {
		log.Errorw("scanner error", "err", err.Error())
		return summary, fmt.Errorf("scan input: %w", err)
	}

	summary.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	if cfg.Logging.RunLog != "" {
		if err := appendRunLog(cfg.Logging.RunLog, summary); err != nil {
			log.Errorw("failed to write run log",
				"path", cfg.Logging.RunLog,
				"err", err.Error())
		}
	}

	duration := time.Since(startTime)
	log.Infow("completed parse run",
		"duration", duration,
		"lines_processed", summary.RawCount,
		"parsed_count", summary.ParsedCount,
		"rejected_count", summary.RejectedCount,
		"lines_per_second", float64(summary.RawCount)/duration.Seconds())

	return summary, nil
}
