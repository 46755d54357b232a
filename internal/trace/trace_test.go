package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, false},
		{LevelPhase, ScopePhase, true},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel accepted an unknown level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	span := Begin(tr, ScopeFile, "a.ts", 0).WithExtra("diagnostics", "2")
	Point(tr, ScopeNode, "recover", "skipped", span.ID())
	span.End("corrupt")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want begin and end only:\n%s", len(lines), buf.String())
	}
	var end map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatal(err)
	}
	if end["kind"] != "end" || end["detail"] != "corrupt" || end["scope"] != "file" {
		t.Fatalf("end event = %v", end)
	}
	if extra, _ := end["extra"].(map[string]any); extra["diagnostics"] != "2" {
		t.Fatalf("extra = %v", end["extra"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopePhase, "parse", 0).WithExtra("path", "x.js").WithExtra("bytes", "10").End("")
	out := buf.String()
	if !strings.Contains(out, "> phase:parse") || !strings.Contains(out, "{bytes=10, path=x.js}") {
		t.Fatalf("text output:\n%s", out)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Fatalf("ring = %v, want [c d e]", names)
	}
}

func TestRingRecordsAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	Begin(ring, ScopePhase, "parse", 0).End("")
	Point(ring, ScopeNode, "recover", "", 0)
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want the phase span only", n)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatMsgpack); err != nil {
		t.Fatal(err)
	}
	events, err := DecodeMsgpack(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Kind != KindSpanBegin || events[1].Name != "parse" {
		t.Fatalf("decoded %+v", events)
	}
}

func TestLogTracer(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	tr := NewLogTracer(log, LevelPhase)
	Begin(tr, ScopeDriver, "check", 0).WithExtra("files", "3").End("")

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	last := entries[1]
	if last.Message != "check" || last.Data["event"] != "end" || last.Data["files"] != "3" {
		t.Fatalf("entry = %q %v", last.Message, last.Data)
	}
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(16, LevelError)
	multi := NewMultiTracer(NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	if multi.Level() != LevelPhase || multi.Ring() != ring {
		t.Fatalf("multi level %s ring %v", multi.Level(), multi.Ring())
	}
	Begin(multi, ScopeFile, "a.js", 0).End("")
	if buf.Len() != 0 {
		t.Fatalf("stream received a file event at phase level")
	}
	if len(ring.Snapshot()) != 2 {
		t.Fatalf("ring missed the file span")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should carry Nop")
	}
	ring := NewRingTracer(1, LevelDebug)
	if FromContext(WithTracer(context.Background(), ring)) != Tracer(ring) {
		t.Fatalf("tracer lost in context")
	}
	if span := Begin(Nop, ScopeDriver, "x", 0); span.End("") != 0 || span.ID() != 0 {
		t.Fatalf("nop span recorded something")
	}
}
