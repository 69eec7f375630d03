package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-reportmd/internal/logging"
	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "json", "Console", "pretty"} {
		p, err := NewProvider(Config{Level: "warn", Format: format, Focus: []string{" report.cache ", ""}})
		if err != nil {
			t.Fatalf("format %q: unexpected error %v", format, err)
		}
		if p.GetLogger("report.cache") == nil {
			t.Fatalf("format %q: expected logger", format)
		}
	}
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestModuleLoggerOverGoLogger(t *testing.T) {
	p, err := NewProvider(Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	logger := logging.ExtractLogger(p)
	logger = logging.WithDocumentContext(logger, "doc-1", "0123456789abcdef", "standard")
	logger.Debug("report.field.resolved", "field", "strengths", "count", 3)
}

func TestNilProviderIsNoOp(t *testing.T) {
	var p *Provider
	if p.GetLogger("report") == nil {
		t.Fatalf("expected no-op logger")
	}
}

func TestAdapterDelegates(t *testing.T) {
	stub := &recordingLogger{}
	adapted := wrap(stub)

	adapted.Trace("report.trace")
	adapted.Debug("report.field.empty", "field", "barriers")
	adapted.Info("report.variant.registered")
	adapted.Warn("report.schema.violation")
	adapted.Error("report.cache.lookup_failed")
	adapted.Fatal("report.fatal")

	want := []string{"report.trace", "report.field.empty", "report.variant.registered", "report.schema.violation", "report.cache.lookup_failed", "report.fatal"}
	if len(stub.messages) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(stub.messages))
	}
	for i := range want {
		if stub.messages[i] != want[i] {
			t.Fatalf("message %d: expected %q, got %q", i, want[i], stub.messages[i])
		}
	}
}

func TestAdapterClonesFields(t *testing.T) {
	stub := &recordingLogger{}
	adapted, ok := wrap(stub).(interfaces.FieldsLogger)
	if !ok {
		t.Fatalf("expected adapter to support fields")
	}

	fields := map[string]any{"variant": "strict"}
	adapted.WithFields(fields)
	fields["variant"] = "standard"

	if len(stub.fields) != 1 || stub.fields[0]["variant"] != "strict" {
		t.Fatalf("expected cloned fields, got %v", stub.fields)
	}
	if adapted.WithFields(nil) != adapted.(interfaces.Logger) {
		t.Fatalf("expected empty fields to return the same logger")
	}
}

func TestAdapterPropagatesContext(t *testing.T) {
	stub := &recordingLogger{}
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"document_identity": "doc-1"})

	wrap(stub).WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}
}

type recordingLogger struct {
	messages []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*recordingLogger)(nil)
var _ glog.FieldsLogger = (*recordingLogger)(nil)

func (r *recordingLogger) Trace(msg string, _ ...any) { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Debug(msg string, _ ...any) { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.messages = append(r.messages, msg) }
func (r *recordingLogger) Fatal(msg string, _ ...any) { r.messages = append(r.messages, msg) }

func (r *recordingLogger) WithContext(ctx context.Context) glog.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

func (r *recordingLogger) WithFields(fields map[string]any) glog.Logger {
	r.fields = append(r.fields, fields)
	return r
}
