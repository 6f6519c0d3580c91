// Package logging writes structured JSONL events. Each run gets its own
// session file named by a ULID, so interleaved runs never share a file. The
// TUI owns the terminal, so nothing is ever written to stdout or stderr.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Category names the subsystem generating the event.
type Category string

const (
	CategoryDriver    Category = "driver"
	CategoryDispatch  Category = "dispatch"
	CategoryInput     Category = "input"
	CategoryScheduler Category = "scheduler"
	CategoryConfig    Category = "config"
	CategoryUI        Category = "ui"
)

// Event is one structured log record.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	SessionID string         `json:"session_id,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

// Logger appends events to a per-session JSONL file. Safe for concurrent
// use. A nil *Logger discards everything, so callers never need nil checks.
type Logger struct {
	sessionID string
	file      *os.File
	mu        sync.Mutex
	minLevel  Level
}

// New creates a logger writing to <dir>/sessions/<ulid>.jsonl.
func New(dir string, minLevel Level) (*Logger, error) {
	sessionsDir := filepath.Join(dir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	sessionID := ulid.Make().String()
	file, err := os.OpenFile(
		filepath.Join(sessionsDir, sessionID+".jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
	)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}

	if _, ok := levelRank[minLevel]; !ok {
		minLevel = LevelInfo
	}
	return &Logger{sessionID: sessionID, file: file, minLevel: minLevel}, nil
}

// SessionID returns this run's ULID.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Close flushes and closes the session file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) log(level Level, category Category, message string, details map[string]any) {
	if l == nil || l.file == nil {
		return
	}
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	ev := Event{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Category:  category,
		SessionID: l.sessionID,
		Message:   message,
		Details:   details,
	}
	line, err := json.Marshal(ev)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.Write(line)
	l.file.Write([]byte{'\n'})
}

// Debug logs at debug level.
func (l *Logger) Debug(category Category, message string, details map[string]any) {
	l.log(LevelDebug, category, message, details)
}

// Info logs at info level.
func (l *Logger) Info(category Category, message string, details map[string]any) {
	l.log(LevelInfo, category, message, details)
}

// Warn logs at warn level.
func (l *Logger) Warn(category Category, message string, details map[string]any) {
	l.log(LevelWarn, category, message, details)
}

// Error logs at error level.
func (l *Logger) Error(category Category, message string, details map[string]any) {
	l.log(LevelError, category, message, details)
}
