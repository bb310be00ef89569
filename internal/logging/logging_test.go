package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLogOutput temporarily redirects the global logger into a buffer.
func captureLogOutput(f func()) string {
	var buf bytes.Buffer
	oldLogger := defaultLogger
	defaultLogger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	f()
	defaultLogger = oldLogger
	return buf.String()
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{name: "debug", log: func() { Debug("debug msg", "k", "v") }, want: `"level":"DEBUG"`},
		{name: "info", log: func() { Info("info msg") }, want: `"level":"INFO"`},
		{name: "warn", log: func() { Warn("warn msg") }, want: `"level":"WARN"`},
		{name: "error", log: func() { Error("error msg") }, want: `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLogOutput(tt.log)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestFileEvents(t *testing.T) {
	out := captureLogOutput(func() {
		FileRead("/tmp/sample.xra", "xra", "tiers", 3)
	})
	for _, want := range []string{"file_read", "sample.xra", `"format":"xra"`} {
		if !strings.Contains(out, want) {
			t.Errorf("FileRead output %q missing %q", out, want)
		}
	}

	out = captureLogOutput(func() {
		FileWrite("/tmp/sample.csv", "csv")
	})
	if !strings.Contains(out, "file_write") {
		t.Errorf("FileWrite output %q missing file_write event", out)
	}
}

func TestInitLogger(t *testing.T) {
	// must not panic for any combination, and GetLogger stays non-nil
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		for _, format := range []Format{FormatText, FormatJSON} {
			InitLogger(level, format)
			if GetLogger() == nil {
				t.Fatalf("GetLogger() = nil after InitLogger(%v, %v)", level, format)
			}
		}
	}
	InitLogger(LevelInfo, FormatText)
}
