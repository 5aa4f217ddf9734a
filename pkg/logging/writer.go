package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// destination is shared by a logger and every logger derived from it
type destination struct {
	mu          sync.Mutex
	writer      io.Writer
	file        *os.File
	path        string
	maxSize     int64
	maxBackups  int
	currentSize int64
}

// WriterLogger implements Logger on top of an io.Writer, optionally a
// size-rotated file
type WriterLogger struct {
	dest   *destination
	format Format
	level  Level
	fields Fields
	now    func() time.Time
}

// NewWriterLogger creates a logger writing to w (typically os.Stderr)
func NewWriterLogger(w io.Writer, format Format, level Level) *WriterLogger {
	return &WriterLogger{
		dest:   &destination{writer: w},
		format: format,
		level:  level,
		now:    time.Now,
	}
}

// NewFileLogger creates a new file logger
func NewFileLogger(config FileLoggerConfig) (*WriterLogger, error) {
	// Ensure directory exists
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open file in append mode
	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Get current file size
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &WriterLogger{
		dest: &destination{
			writer:      file,
			file:        file,
			path:        config.Path,
			maxSize:     config.MaxSize,
			maxBackups:  config.MaxBackups,
			currentSize: info.Size(),
		},
		format: config.Format,
		level:  config.Level,
		now:    time.Now,
	}, nil
}

// Debug logs a debug message
func (l *WriterLogger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.level <= DebugLevel {
		l.log(DebugLevel, msg, nil, fields)
	}
}

// Info logs an info message
func (l *WriterLogger) Info(ctx context.Context, msg string, fields Fields) {
	if l.level <= InfoLevel {
		l.log(InfoLevel, msg, nil, fields)
	}
}

// Warn logs a warning message
func (l *WriterLogger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.level <= WarnLevel {
		l.log(WarnLevel, msg, nil, fields)
	}
}

// Error logs an error message
func (l *WriterLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	if l.level <= ErrorLevel {
		l.log(ErrorLevel, msg, err, fields)
	}
}

// WithFields returns a logger with additional fields
func (l *WriterLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &WriterLogger{
		dest:   l.dest,
		format: l.format,
		level:  l.level,
		fields: newFields,
		now:    l.now,
	}
}

// Close closes the underlying file, if any
func (l *WriterLogger) Close() error {
	l.dest.mu.Lock()
	defer l.dest.mu.Unlock()
	if l.dest.file != nil {
		err := l.dest.file.Close()
		l.dest.file = nil
		l.dest.writer = io.Discard
		return err
	}
	return nil
}

// log writes a log entry
func (l *WriterLogger) log(level Level, msg string, err error, fields Fields) {
	// Merge fields
	allFields := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		allFields[k] = v
	}
	for k, v := range fields {
		allFields[k] = v
	}

	var line []byte
	var fmtErr error
	if l.format == FormatJSON {
		line, fmtErr = l.formatJSON(level, msg, err, allFields)
	} else {
		line = l.formatText(level, msg, err, allFields)
	}
	if fmtErr != nil {
		return
	}

	d := l.dest
	d.mu.Lock()
	defer d.mu.Unlock()

	// Check rotation before writing
	if d.maxSize > 0 && d.currentSize >= d.maxSize {
		d.rotate()
	}

	n, _ := d.writer.Write(line)
	d.currentSize += int64(n)
}

// formatJSON formats a log entry as JSON. encoding/json sorts map keys.
func (l *WriterLogger) formatJSON(level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = l.now().UTC().Format(time.RFC3339)
	entry["level"] = levelString(level)
	entry["message"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}

	return append(data, '\n'), nil
}

// formatText formats a log entry as plain text with fields in key order
func (l *WriterLogger) formatText(level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", l.now().UTC().Format("2006-01-02T15:04:05.000Z"), levelString(level), msg)

	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	b.WriteByte('\n')
	return []byte(b.String())
}

// rotate rotates the log file
func (d *destination) rotate() {
	if d.file == nil {
		return
	}

	// Close current file
	d.file.Close()

	// Rotate existing backups
	for i := d.maxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", d.path, i)
		newPath := fmt.Sprintf("%s.%d", d.path, i+1)
		os.Rename(oldPath, newPath)
	}

	// Rename current to .1
	os.Rename(d.path, d.path+".1")

	// Remove oldest if exceeds max backups
	if d.maxBackups > 0 {
		os.Remove(fmt.Sprintf("%s.%d", d.path, d.maxBackups+1))
	}

	// Open new file
	file, err := os.OpenFile(d.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		d.file = nil
		d.writer = io.Discard
		return
	}

	d.file = file
	d.writer = file
	d.currentSize = 0
}

// levelString returns the string representation of a log level
func levelString(level Level) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return WarnLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat parses a log format string
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", s)
	}
}

// LevelString returns level as string (exported version)
func LevelString(level Level) string {
	return levelString(level)
}
