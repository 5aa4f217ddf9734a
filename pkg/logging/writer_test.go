package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestNewFileLogger(t *testing.T) {
	tempDir := t.TempDir()

	logPath := filepath.Join(tempDir, "nested", "dir", "test.log")
	config := FileLoggerConfig{
		Path:       logPath,
		Format:     FormatText,
		Level:      InfoLevel,
		MaxSize:    1024 * 1024,
		MaxBackups: 3,
	}

	logger, err := NewFileLogger(config)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	// Verify file and directory were created
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestWriterLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, WarnLevel)

	ctx := context.Background()
	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)
	logger.Error(ctx, "error message", nil, nil)

	logContent := buf.String()

	if strings.Contains(logContent, "debug message") || strings.Contains(logContent, "info message") {
		t.Error("Debug and info messages should be filtered at WARN level")
	}
	if !strings.Contains(logContent, "[WARN] warn message") {
		t.Error("Warn message should be present")
	}
	if !strings.Contains(logContent, "[ERROR] error message") {
		t.Error("Error message should be present")
	}
}

func TestWriterLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, DebugLevel)
	logger.now = fixedClock

	logger.Error(context.Background(), "cannot read", errors.New("boom"), Fields{"path": "/b", "mode": "dir-to-dir"})

	want := `2024-01-02T03:04:05.000Z [ERROR] cannot read error="boom" mode=dir-to-dir path=/b` + "\n"
	if buf.String() != want {
		t.Errorf("text line = %q, want %q", buf.String(), want)
	}
}

func TestWriterLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatJSON, InfoLevel)
	logger.now = fixedClock

	logger.Info(context.Background(), "compared", Fields{"pairs": 3})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["level"] != "INFO" || entry["message"] != "compared" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["timestamp"] != "2024-01-02T03:04:05Z" {
		t.Errorf("timestamp = %v", entry["timestamp"])
	}
	if entry["pairs"] != float64(3) {
		t.Errorf("pairs = %v, want 3", entry["pairs"])
	}
}

func TestWriterLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatJSON, InfoLevel)

	ctx := context.Background()

	// Create logger with base fields
	loggerWithFields := logger.WithFields(Fields{"component": "engine"})

	// Log with additional fields
	loggerWithFields.Info(ctx, "test", Fields{"pair": "a.txt"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	// Should have both base and additional fields
	if entry["component"] != "engine" {
		t.Errorf("component = %v, want 'engine'", entry["component"])
	}
	if entry["pair"] != "a.txt" {
		t.Errorf("pair = %v, want 'a.txt'", entry["pair"])
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, id := WithRunID(NewWriterLogger(&buf, FormatText, InfoLevel))
	if id == "" {
		t.Fatal("WithRunID() returned an empty id")
	}

	logger.Info(context.Background(), "start", nil)
	if !strings.Contains(buf.String(), "run_id="+id) {
		t.Errorf("log line %q does not carry run_id", buf.String())
	}

	_, other := WithRunID(NewNullLogger())
	if other == id {
		t.Error("run ids should be unique")
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	tempDir := t.TempDir()

	logPath := filepath.Join(tempDir, "test.log")
	config := FileLoggerConfig{
		Path:       logPath,
		Format:     FormatText,
		Level:      InfoLevel,
		MaxSize:    100, // Very small for testing
		MaxBackups: 2,
	}

	logger, err := NewFileLogger(config)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctx := context.Background()

	// Write enough to trigger rotation
	for i := 0; i < 20; i++ {
		logger.Info(ctx, "This is a test message that is long enough to trigger rotation eventually", nil)
	}
	logger.Close()

	if _, err := os.Stat(logPath + ".1"); os.IsNotExist(err) {
		t.Error("Backup file .1 should exist after rotation")
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("Backup file .3 should have been removed")
	}
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Main log file should still exist")
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	// None of these should panic
	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil, nil)

	if newLogger := logger.WithFields(Fields{"key": "value"}); newLogger == nil {
		t.Error("WithFields should return a logger")
	}

	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", DebugLevel, false},
		{"DEBUG", DebugLevel, false},
		{"info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"warning", WarnLevel, false},
		{"ERROR", ErrorLevel, false},
		{"unknown", WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := LevelString(tt.level); result != tt.expected {
				t.Errorf("LevelString(%v) = %q, want %q", tt.level, result, tt.expected)
			}
		})
	}
}

func TestWriterLogger_ConcurrentWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: FormatText,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctx := context.Background()

	// Derived loggers share the destination lock
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			l := logger.WithFields(Fields{"goroutine": id})
			for j := 0; j < 100; j++ {
				l.Info(ctx, "concurrent message", Fields{"iteration": j})
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Timeout waiting for concurrent writes")
		}
	}

	logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1000 {
		t.Errorf("Expected 1000 log lines, got %d", len(lines))
	}
}
