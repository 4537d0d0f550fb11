package internal

import (
	"context"
	"time"
)

// CreateTestTranscript creates a transcript with a short user/assistant exchange
func CreateTestTranscript(sessionID string) *Transcript {
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	return CreateTestTranscriptWithMessages(sessionID, []Message{
		{Seq: 1, Origin: OriginUser, Query: "Do you have desks?", CreatedAt: at},
		{
			Seq:    2,
			Origin: OriginAssistant,
			Result: &ExchangeResult{
				Response:    "Yes, here is our best desk.",
				Suggestions: []string{"Show me chairs"},
				ItemData: RawItem{
					"item_id":          "D-100",
					"item_name":        "Standing Desk",
					"price":            299.0,
					"item_quantity":    4.0,
					"maximum_discount": 0.1,
				},
			},
			CreatedAt: at.Add(2 * time.Second),
		},
	})
}

// CreateTestTranscriptWithMessages creates a transcript with the given messages
func CreateTestTranscriptWithMessages(sessionID string, messages []Message) *Transcript {
	return &Transcript{
		SessionID:  sessionID,
		Tab:        DefaultTab,
		ExportedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Messages:   messages,
	}
}

// StaticAssistant answers every query with the same result or error
type StaticAssistant struct {
	Result *ExchangeResult
	Err    error
	// OnQuery, when set, runs before answering
	OnQuery func(req QueryRequest)

	Requests []QueryRequest
}

// Query records the request and returns the configured answer
func (a *StaticAssistant) Query(_ context.Context, req QueryRequest) (*ExchangeResult, error) {
	a.Requests = append(a.Requests, req)
	if a.OnQuery != nil {
		a.OnQuery(req)
	}
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Result, nil
}
