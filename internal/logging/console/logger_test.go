package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-reportmd/internal/logging"
	"github.com/goliatone/go-reportmd/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := logging.ModuleLogger(provider, "report.extract")
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"request_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	logger.Debug("report.field.resolved",
		"field", "strengths",
		"count", 3,
		"strategy", "table",
	)

	got := strings.TrimSpace(buf.String())
	want := "2026-03-14T15:09:26.535897Z DEBUG report.field.resolved count=3 field=strengths logger=report.extract module=report.extract request_id=req-1234 strategy=table"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("report.cache")
	logger.Debug("ignored.debug", "key", "value")
	logger.Info("included.info", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: time.Now})
	provider.GetLogger("report").Warn("report.section.missing", "section", "Areas of Need", "dangling")

	line := buf.String()
	if !strings.Contains(line, `section="Areas of Need"`) {
		t.Fatalf("expected quoted value, got %s", line)
	}
	if !strings.Contains(line, "field_2=dangling") {
		t.Fatalf("expected positional field for odd argument, got %s", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"":        console.LevelInfo,
		"TRACE":   console.LevelTrace,
		"warning": console.LevelWarn,
		" error ": console.LevelError,
	}
	for name, want := range cases {
		got, err := console.ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): unexpected error %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q): expected %s, got %s", name, want, got)
		}
	}
	if _, err := console.ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
