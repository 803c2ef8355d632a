package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatalf("phase level must skip file scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Fatalf("detail level must stop at file scope")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Fatalf("debug level emits everything")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatalf("off emits nothing")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
	// не должно паниковать
	Begin(tr, ScopePass, "parse", 0).WithExtra("k", "v").End("")
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePass, "parse", 0)
	Begin(tr, ScopeFile, "file:skipped.html", span.ID()).End("")
	span.WithExtra("nodes", "3").WithExtra("attrs", "1").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ parse") {
		t.Fatalf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "← parse (ok) {attrs=1, nodes=3}") {
		t.Fatalf("end line: %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Output: &buf, OutputPath: "run.ndjson"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Point(tr, ScopeNode, "recover", 7, "mismatched </b>")

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("not json: %v\n%s", err, buf.String())
	}
	if ev["kind"] != "point" || ev["scope"] != "node" || ev["name"] != "recover" {
		t.Fatalf("unexpected event: %v", ev)
	}
	if ev["parent_id"].(float64) != 7 {
		t.Fatalf("parent_id = %v", ev["parent_id"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, 0, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestMultiTracerAndRingLookup(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeDriver, "parse", 0).End("")

	ring, ok := Ring(tr)
	if !ok {
		t.Fatalf("ring not found in multi tracer")
	}
	if len(ring.Snapshot()) != 2 {
		t.Fatalf("ring holds %d events", len(ring.Snapshot()))
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream:\n%s", buf.String())
	}
}

func TestStreamTracerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			Begin(tr, ScopeFile, "file", 0).End("")
		})
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 32 {
		t.Fatalf("expected 32 events, got %d", got)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must give Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 42})

	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer lost in context")
	}
	if CurrentSpan(ctx).SpanID != 42 {
		t.Fatalf("span context lost")
	}
}

func TestStartPropagatesDocument(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx, run := Start(ctx, ScopeDriver, "parse-dir")

	docCtx, doc := Start(WithDocument(ctx, "a.html"), ScopeFile, "document")
	_, lex := Start(docCtx, ScopePass, "lex")
	Mark(docCtx, ScopeNode, "recover", "stray </b>")
	lex.End("")
	doc.End("")
	run.End("")

	events := r.Snapshot()
	if len(events) != 7 {
		t.Fatalf("expected 7 events, got %d", len(events))
	}
	for _, ev := range events {
		switch ev.Name {
		case "parse-dir":
			if ev.Doc != "" || ev.ParentID != 0 {
				t.Fatalf("run span: %+v", ev)
			}
		case "document":
			if ev.Doc != "a.html" || ev.ParentID != run.ID() {
				t.Fatalf("document span: %+v", ev)
			}
		case "lex", "recover":
			if ev.Doc != "a.html" || ev.ParentID != doc.ID() {
				t.Fatalf("%s under document expected: %+v", ev.Name, ev)
			}
		}
	}

	line := string(FormatEvent(&events[len(events)-2], FormatText))
	if !strings.Contains(line, "← document @a.html") {
		t.Fatalf("text line: %q", line)
	}
}

func TestStartWithoutTracer(t *testing.T) {
	ctx := context.Background()
	got, span := Start(ctx, ScopePass, "lex")
	if got != ctx || span.ID() != 0 {
		t.Fatalf("disabled tracer must not change the context")
	}
	span.End("")
	Mark(ctx, ScopeNode, "noop", "")
}

func TestRingTail(t *testing.T) {
	r := NewRingTracer(4, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		Point(r, ScopeNode, name, 0, "")
	}
	names := func(evs []Event) string {
		var sb strings.Builder
		for _, ev := range evs {
			sb.WriteString(ev.Name)
		}
		return sb.String()
	}
	if got := names(r.Tail(2)); got != "ef" {
		t.Fatalf("Tail(2) = %q", got)
	}
	if got := names(r.Tail(10)); got != "cdef" {
		t.Fatalf("Tail(10) = %q", got)
	}

	var buf bytes.Buffer
	if err := r.DumpTail(&buf, FormatText, 1); err != nil {
		t.Fatalf("DumpTail: %v", err)
	}
	if !strings.Contains(buf.String(), "• f") || strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestMultiTracerSkipsDisabled(t *testing.T) {
	m := NewMultiTracer(LevelPhase, Nop, nil)
	if m.Enabled() {
		t.Fatalf("multi tracer without live tracers must be disabled")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
