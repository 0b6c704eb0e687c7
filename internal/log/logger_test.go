package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %q, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat(\"\") = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("expected error for xml")
	}
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: FormatJSON, Output: &buf, Component: ComponentApp})

	logger.WithComponent(ComponentTracker).Info("Growth recorded", FieldRecordID, "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != ComponentTracker {
		t.Errorf("component = %v, want %s", entry[FieldComponent], ComponentTracker)
	}
	if entry[FieldRecordID] != "abc" {
		t.Errorf("record_id = %v", entry[FieldRecordID])
	}
	if strings.Count(buf.String(), `"component"`) != 1 {
		t.Errorf("component must appear once: %s", buf.String())
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf, Component: ComponentCLI})

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "component=cli") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentRecords).
		WithRecord("feedingRecords", "42").
		WithPeriod("week").
		WithOperation(OpDelete).
		WithError(errors.New("boom")).
		WithError(nil)

	if fields[FieldCollection] != "feedingRecords" || fields[FieldRecordID] != "42" {
		t.Errorf("record fields = %v", fields)
	}
	if fields[FieldOperation] != OpDelete {
		t.Errorf("operation field = %v", fields[FieldOperation])
	}
	if fields[FieldError] != "boom" {
		t.Errorf("error field = %v", fields[FieldError])
	}
	if got := len(fields.ToSlice()); got != 2*len(fields) {
		t.Errorf("ToSlice length = %d, want %d", got, 2*len(fields))
	}
}
