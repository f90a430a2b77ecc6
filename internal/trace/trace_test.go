package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"off": LevelOff, "": LevelOff, "ERROR": LevelError,
		"phase": LevelPhase, "Detail": LevelDetail, "debug": LevelDebug,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v", c.level, c.scope, got)
		}
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopePass, "parse", 0)
	file := root.Child(ScopeFile, "file:a.vd").WithExtra("nodes", "12")
	file.End("ok")
	Begin(tr, ScopeNode, "hidden", root.ID()).End("")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ parse") {
		t.Fatalf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← file:a.vd (ok) [") || !strings.HasSuffix(lines[2], "ms] {nodes=12}") {
		t.Fatalf("unexpected end line %q", lines[2])
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("node scope leaked at detail level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "run", 0).Point("start", "3 files")

	var got map[string]any
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected begin and point, got %q", buf.String())
	}
	if err := json.Unmarshal(lines[1], &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "driver" || got["detail"] != "3 files" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Begin(r, ScopeNode, name, 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("event %d = %q, want %q", i, snap[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level should give a disabled tracer")
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fan, ok := tr.(*Fanout)
	if !ok {
		t.Fatalf("both mode should give a Fanout, got %T", tr)
	}
	Begin(tr, ScopeDriver, "run", 0).End("")
	var dump bytes.Buffer
	if err := fan.Dump(&dump, FormatText); err != nil || strings.Count(dump.String(), "\n") != 2 {
		t.Fatalf("ring part should hold both events: %v\n%s", err, dump.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("stream part wrote nothing")
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should give Nop")
	}
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)

	ctx, outer := Start(ctx, ScopePass, "parse")
	_, inner := Start(ctx, ScopeFile, "file")
	inner.End("")
	outer.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %d", len(snap))
	}
	if snap[1].ParentID != outer.ID() {
		t.Fatalf("inner span parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
	if SpanFromContext(ctx) != outer {
		t.Fatalf("context should carry the outer span")
	}
	if snap[0].Seq >= snap[3].Seq || snap[3].Dur < snap[2].Dur {
		t.Fatalf("events out of order: %+v", snap)
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatalf("nop span should be inert")
	}
	sp.WithExtra("k", "v").Child(ScopeFile, "y").End("")
}

func TestFileOutputIsFlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson")
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeFile, "file:a.vd", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 || !strings.Contains(string(data), `"kind":"end"`) {
		t.Fatalf("unexpected output (%d lines):\n%s", n, data)
	}
}
