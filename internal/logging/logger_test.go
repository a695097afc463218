package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dweagle/extras/internal/config"
	"github.com/dweagle/extras/internal/logging"
	"github.com/dweagle/extras/internal/services"
)

func TestConsoleLoggerLiftsSubjectIntoHeader(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Level: "info", Format: "console", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	ctx := services.WithItemIndex(services.WithMediaType(context.Background(), "series"), 3)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "matching"))
	logger.Info("remote match accepted", logging.String("title", "Breaking Bad"), logging.Float64("composite", 1.0666666666))

	out := buf.String()
	if !strings.Contains(out, "INFO  [matching] Series · Item #3 - remote match accepted") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, `    title: "Breaking Bad"`) {
		t.Fatalf("expected title field, got %q", out)
	}
	if !strings.Contains(out, "    composite: 1.0667") {
		t.Fatalf("expected rounded score, got %q", out)
	}
	if strings.Contains(out, "media_type:") || strings.Contains(out, "component:") {
		t.Fatalf("subject fields should not repeat as detail lines: %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	logger.Debug("near miss")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerHidesExtraInfoFields(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	attrs := make([]logging.Attr, 0, 10)
	for i := 0; i < 10; i++ {
		attrs = append(attrs, logging.Int("f"+string(rune('a'+i)), i))
	}
	logger.Info("many fields", logging.Args(attrs...)...)
	if !strings.Contains(buf.String(), "+ 2 more fields") {
		t.Fatalf("expected hidden field summary, got %q", buf.String())
	}
}

func TestJSONLoggerWritesRunIDAndDurations(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Format: "json", Console: &buf, RunID: "run-42"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	logger.Info("library fetched", logging.Duration("elapsed", 1500*time.Millisecond), logging.Float64("score", 0.123456))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%s)", err, buf.String())
	}
	if record["run_id"] != "run-42" {
		t.Fatalf("expected run_id, got %v", record["run_id"])
	}
	if record["level"] != "info" || record["msg"] != "library fetched" {
		t.Fatalf("unexpected level/msg: %v", record)
	}
	if record["elapsed_ms"] != float64(1500) {
		t.Fatalf("expected elapsed_ms 1500, got %v", record["elapsed_ms"])
	}
	if record["score"] != 0.1235 {
		t.Fatalf("expected rounded score, got %v", record["score"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesRotatingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.File = true
	cfg.Logging.Level = "info"

	logger, closer, err := logging.NewFromConfig(&cfg, "run-file")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("written to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	content, err := os.ReadFile(cfg.LogFilePath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"written to file"`) || !strings.Contains(string(content), `"run_id":"run-file"`) {
		t.Fatalf("unexpected log file content: %s", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	logging.WarnWithContext(logger, "library source unavailable", "library_fetch_failed",
		logging.Error(errors.New("connection refused")),
		logging.String(logging.FieldErrorHint, "check that the server is reachable"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldEventType] != "library_fetch_failed" {
		t.Fatalf("expected event_type, got %v", record)
	}
	if record[logging.FieldErrorHint] != "check that the server is reachable" {
		t.Fatalf("explicit hint should be kept, got %v", record[logging.FieldErrorHint])
	}
	if record[logging.FieldImpact] == nil {
		t.Fatalf("expected default impact, got %v", record)
	}
}

func TestNopLoggerAndNilSafety(t *testing.T) {
	logging.NewNop().Info("discarded")
	logging.WarnWithContext(nil, "ignored", "noop")
	if logger := logging.NewComponentLogger(nil, "x"); logger == nil {
		t.Fatal("expected non-nil component logger")
	}
}

func TestErrorWithContextAndScoreAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	attrs := append([]logging.Attr{logging.Title("Dune"), logging.TMDBID(438631)},
		logging.ScoreAttrs(0.95, 1, 0.2, 0.97)...)
	logging.ErrorWithContext(logger, "failed to write output document", "output_write_failed", attrs...)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldEventType] != "output_write_failed" || record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected event_type and default hint, got %v", record)
	}
	if record[logging.FieldTitle] != "Dune" || record[logging.FieldTMDBID] != float64(438631) {
		t.Fatalf("unexpected title/id fields %v", record)
	}
	if record[logging.FieldComposite] != 0.97 {
		t.Fatalf("expected composite 0.97, got %v", record[logging.FieldComposite])
	}
}
