package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/bizspark-chat/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range transcript.Messages {
		obj := map[string]interface{}{
			"session_id": transcript.SessionID,
			"seq":        msg.Seq,
			"origin":     msg.Origin,
			"text":       msg.Text(),
			"timestamp":  msg.CreatedAt.Format(time.RFC3339),
		}
		if msg.Result != nil {
			obj["result"] = msg.Result
		}
		if msg.Notice != nil {
			obj["severity"] = msg.Notice.Severity
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
