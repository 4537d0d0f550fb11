package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/bizspark-chat/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	at := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		transcript *internal.Transcript
		wantLines  int
		want       []string
	}{
		{
			name:       "empty transcript",
			transcript: internal.CreateTestTranscriptWithMessages("t1", nil),
			wantLines:  0,
		},
		{
			name:       "user and assistant",
			transcript: internal.CreateTestTranscript("t2"),
			wantLines:  2,
			want: []string{
				`"origin":"user"`,
				`"origin":"assistant"`,
				`"session_id":"t2"`,
			},
		},
		{
			name: "system notice",
			transcript: internal.CreateTestTranscriptWithMessages("t3", []internal.Message{
				{
					Seq:       1,
					Origin:    internal.OriginSystem,
					Notice:    &internal.SystemNotice{Text: "boom", Severity: internal.SeverityError},
					CreatedAt: at,
				},
			}),
			wantLines: 1,
			want: []string{
				`"severity":"error"`,
				`"text":"boom"`,
				`"timestamp":"2023-01-01T00:00:00Z"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			if err := exporter.Export(tt.transcript, &buf); err != nil {
				t.Fatalf("JSONLExporter.Export() error = %v", err)
			}

			output := buf.String()
			if tt.wantLines == 0 {
				if output != "" {
					t.Errorf("Empty transcript should produce empty output, got: %q", output)
				}
				return
			}

			lines := strings.Split(strings.TrimSpace(output), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d", len(lines), tt.wantLines)
			}
			for i, line := range lines {
				var msg map[string]interface{}
				if err := json.Unmarshal([]byte(line), &msg); err != nil {
					t.Errorf("Line %d is not valid JSON: %v", i, err)
				}
				if _, ok := msg["origin"]; !ok {
					t.Errorf("Line %d missing 'origin' field", i)
				}
			}
			for _, wantStr := range tt.want {
				if !strings.Contains(output, wantStr) {
					t.Errorf("Output should contain %q, got:\n%s", wantStr, output)
				}
			}
		})
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
