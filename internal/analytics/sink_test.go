package analytics

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
)

func tempSink(t *testing.T) *FileSink {
	t.Helper()
	s, err := NewFileSink(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWrite_OneLinePerEvent(t *testing.T) {
	s := tempSink(t)
	s.Write("u1", "therapeutic_response", map[string]interface{}{"content_used": "tipp"})
	s.Write("u1", "crisis_response", map[string]interface{}{"locale": "en"})
	s.Write("u2", "therapeutic_response", nil)

	f, err := os.Open(s.path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := sonic.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines+1, err)
		}
		if ev.ID == "" || ev.Type == "" || ev.CreatedAt == "" {
			t.Errorf("line %d missing required fields: %+v", lines+1, ev)
		}
		lines++
	}
	if lines != 3 {
		t.Errorf("got %d lines, want 3", lines)
	}
}

func TestTail(t *testing.T) {
	s := tempSink(t)
	for i := 0; i < 5; i++ {
		s.Write("u1", "therapeutic_response", map[string]interface{}{"n": i})
	}
	events, err := s.Tail(2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// ULIDs are lexically time-ordered, so the tail must be ascending.
	if events[0].ID >= events[1].ID {
		t.Errorf("tail not in append order: %s >= %s", events[0].ID, events[1].ID)
	}
}

func TestNopSink(t *testing.T) {
	// Must not panic on any input.
	NopSink{}.Write("", "", nil)
}
