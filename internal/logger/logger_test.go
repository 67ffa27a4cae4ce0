package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// TestHelpersWriteFields tests that domain helpers log their key/value pairs
func TestHelpersWriteFields(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *Logger)
		want []string
	}{
		{
			name: "build started",
			log:  func(l *Logger) { l.BuildStarted("/wiki", "/out", 4) },
			want: []string{"build started", "root=/wiki", "out_dir=/out", "workers=4"},
		},
		{
			name: "build completed",
			log:  func(l *Logger) { l.BuildCompleted(10, 2, 1, 1500*time.Microsecond) },
			want: []string{"build completed", "pages=10", "problems=2", "failed=1"},
		},
		{
			name: "page parsed",
			log:  func(l *Logger) { l.PageParsed("index.wiki", 7) },
			want: []string{"page parsed", "file=index.wiki", "blocks=7"},
		},
		{
			name: "parse problem",
			log:  func(l *Logger) { l.ParseProblem("a.wiki", errors.New("bad table")) },
			want: []string{"WARN", "parse problem", "file=a.wiki", "bad table"},
		},
		{
			name: "rendered",
			log:  func(l *Logger) { l.PageRendered("a.wiki", "a.html", 0) },
			want: []string{"INFO", "page rendered", "source=a.wiki", "dest=a.html"},
		},
		{
			name: "rendered with unresolved links",
			log:  func(l *Logger) { l.PageRendered("a.wiki", "a.html", 3) },
			want: []string{"WARN", "unresolved=3"},
		},
		{
			name: "formatted",
			log:  func(l *Logger) { l.PageFormatted("a.wiki", true) },
			want: []string{"page formatted", "changed=true"},
		},
		{
			name: "file error",
			log:  func(l *Logger) { l.FileError("a.wiki", errors.New("boom")) },
			want: []string{"ERRO", "file error", "boom"},
		},
		{
			name: "skipped",
			log:  func(l *Logger) { l.Skipped("notes.txt", "extension") },
			want: []string{"file skipped", "reason=extension"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWithLevel(&buf, log.DebugLevel))
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
		})
	}
}

// TestLevelFiltersDebug tests that debug helpers are quiet at info level
func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.PageParsed("index.wiki", 1)
	l.Skipped("x", "y")
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"warn", log.WarnLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vimwiki.log")
	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.BuildStarted("/wiki", "/out", 2)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "build started") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	l := NewMultiLogger(log.InfoLevel, &a, &b)
	l.Info("hello")
	if !strings.Contains(a.String(), "hello") || !strings.Contains(b.String(), "hello") {
		t.Errorf("expected both writers to receive the entry: %q, %q", a.String(), b.String())
	}
}
