package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/IvanShishkin/pathhound/internal/config"
)

func TestNewGenerator_FormatValidation(t *testing.T) {
	logger := zap.NewNop()

	for _, format := range []string{"", "text", "json"} {
		if _, err := NewGenerator(&config.Config{ReportFormat: format}, logger); err != nil {
			t.Errorf("NewGenerator(%q) error = %v", format, err)
		}
	}
	if _, err := NewGenerator(&config.Config{ReportFormat: "xml"}, logger); err == nil {
		t.Error("NewGenerator(xml) accepted an unsupported format")
	}
}

func TestRenderText(t *testing.T) {
	g, err := NewGenerator(&config.Config{ReportFormat: "text"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	data, err := g.renderText(&Results{
		Matches:  []string{"/a/b.txt", "/a/c.txt"},
		Skipped:  []string{"permission denied: /a/locked"},
		Duration: 120 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("renderText() error = %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "/a/b.txt") || !strings.Contains(out, "/a/c.txt") {
		t.Errorf("text report missing matches:\n%s", out)
	}
	if !strings.Contains(out, "Matched:  2") {
		t.Errorf("text report missing match count:\n%s", out)
	}
	if !strings.Contains(out, "permission denied: /a/locked") {
		t.Errorf("text report missing skip diagnostics:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	g, err := NewGenerator(&config.Config{ReportFormat: "json"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	data, err := g.renderJSON(&Results{
		Patterns: []string{"*.txt"},
		Roots:    []string{"."},
		Matches:  []string{"a.txt"},
		Duration: time.Second,
	})
	if err != nil {
		t.Fatalf("renderJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded["duration_ms"] != float64(1000) {
		t.Errorf("duration_ms = %v, want 1000", decoded["duration_ms"])
	}
	matches, ok := decoded["matches"].([]any)
	if !ok || len(matches) != 1 || matches[0] != "a.txt" {
		t.Errorf("matches = %v", decoded["matches"])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500.00ms"},
		{2 * time.Second, "2.00s"},
		{90 * time.Second, "1m30.00s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
