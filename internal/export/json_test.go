package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/bizspark-chat/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONExporter{}

	if err := exporter.Export(internal.CreateTestTranscript("sess-1"), &buf); err != nil {
		t.Fatalf("JSONExporter.Export() error = %v", err)
	}

	output := buf.String()
	var got internal.Transcript
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v\nOutput: %s", err, output)
	}

	if got.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", got.SessionID)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(got.Messages))
	}
	if got.Messages[1].Result == nil || got.Messages[1].Result.ItemData["item_name"] != "Standing Desk" {
		t.Errorf("assistant item_data not preserved: %+v", got.Messages[1].Result)
	}
	if !strings.Contains(output, "  ") {
		t.Errorf("Output should be pretty-printed with indentation")
	}
}

func TestJSONExporter_Extension(t *testing.T) {
	exporter := &JSONExporter{}
	if got := exporter.Extension(); got != "json" {
		t.Errorf("JSONExporter.Extension() = %v, want json", got)
	}
}
