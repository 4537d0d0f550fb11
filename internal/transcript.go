package internal

import "time"

// Transcript is a snapshot of the timeline prepared for export
type Transcript struct {
	SessionID  string    `json:"session_id" yaml:"session_id"`
	Tab        string    `json:"tab,omitempty" yaml:"tab,omitempty"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Messages   []Message `json:"messages" yaml:"messages"`
}

// NewTranscript snapshots the store's timeline
func NewTranscript(sessionID, tab string, store *ConversationStore) *Transcript {
	return &Transcript{
		SessionID:  sessionID,
		Tab:        tab,
		ExportedAt: time.Now(),
		Messages:   store.Messages(),
	}
}
