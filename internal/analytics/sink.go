// Package analytics is the fire-and-forget event sink. A failed write is
// logged and dropped; it must never fail or delay a user-facing turn.
package analytics

// #region imports
import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/oklog/ulid/v2"
)

// #endregion

// #region event
// Event is one append-only analytics record, serialized as a single JSON line.
type Event struct {
	ID        string                 `json:"id"` // ULID, lexically time-ordered
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt string                 `json:"created_at"`
}

// #endregion event

// #region sink-interface
// Sink accepts events. Implementations must never propagate write failures.
type Sink interface {
	Write(userID, eventType string, payload map[string]interface{})
}

// NopSink discards everything. Used in tests and when analytics is disabled.
type NopSink struct{}

// Write implements Sink.
func (NopSink) Write(userID, eventType string, payload map[string]interface{}) {}

// #endregion sink-interface

// #region file-sink
// FileSink appends JSON lines to a single log file, serialized by a mutex.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// NewFileSink opens (or creates) the event log in append mode.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open analytics log: %w", err)
	}
	return &FileSink{file: f, path: path}, nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Write appends one event line. Errors are logged and swallowed.
func (s *FileSink) Write(userID, eventType string, payload map[string]interface{}) {
	ev := Event{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	line, err := sonic.Marshal(ev)
	if err != nil {
		log.Printf("[ANALYTICS] encode event failed: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		log.Printf("[ANALYTICS] write event failed: %v", err)
	}
}

// #endregion file-sink

// #region tail
// Tail reads the last n events from the log. Used by inspection tooling,
// never by the turn path.
func (s *FileSink) Tail(n int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open analytics log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := sonic.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan analytics log: %w", err)
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// #endregion tail
