package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// JSONLogger serializes log entries as JSON lines, one object per message.
// It is safe for concurrent use.
type JSONLogger struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLogger constructs a logger writing JSON lines to w.
func NewJSONLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{enc: json.NewEncoder(w)}
}

type logEntry struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
	At      time.Time      `json:"at"`
}

func (l *JSONLogger) emit(level, msg string, keyvals []any) {
	entry := logEntry{Level: level, Message: msg, At: time.Now().UTC()}
	if len(keyvals) > 0 {
		entry.Fields = make(map[string]any, len(keyvals)/2)
		for i := 0; i+1 < len(keyvals); i += 2 {
			key, ok := keyvals[i].(string)
			if !ok {
				key = fmt.Sprint(keyvals[i])
			}
			entry.Fields[key] = keyvals[i+1]
		}
	}
	l.mu.Lock()
	_ = l.enc.Encode(entry)
	l.mu.Unlock()
}

// Debug implements Logger.
func (l *JSONLogger) Debug(msg string, keyvals ...any) { l.emit("debug", msg, keyvals) }

// Info implements Logger.
func (l *JSONLogger) Info(msg string, keyvals ...any) { l.emit("info", msg, keyvals) }

// Warn implements Logger.
func (l *JSONLogger) Warn(msg string, keyvals ...any) { l.emit("warn", msg, keyvals) }

// Error implements Logger.
func (l *JSONLogger) Error(msg string, keyvals ...any) { l.emit("error", msg, keyvals) }
