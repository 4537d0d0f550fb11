package internal

import (
	"encoding/json"
	"time"
)

// Origin identifies who produced a timeline entry
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
	OriginSystem    Origin = "system"
)

// Severity classifies a system notice
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
	SeverityInfo  Severity = "info"
)

// RawItem is an item record as sent by the assistant service. Field names
// vary between backend versions; see Normalize.
type RawItem map[string]interface{}

// ExchangeResult is the assistant's answer to one query
type ExchangeResult struct {
	Response         string    `json:"response" yaml:"response"`
	Suggestions      []string  `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	ItemData         RawItem   `json:"item_data,omitempty" yaml:"item_data,omitempty"`
	Items            []RawItem `json:"items,omitempty" yaml:"items,omitempty"`
	RecommendedItems []RawItem `json:"recommended_items,omitempty" yaml:"recommended_items,omitempty"`
}

// SystemNotice is the payload of a system-origin message
type SystemNotice struct {
	Text     string   `json:"message" yaml:"message"`
	Severity Severity `json:"type" yaml:"type"`
}

// Message is a single timeline entry. Exactly one payload field is set,
// matching Origin.
type Message struct {
	Seq       int             `json:"seq" yaml:"seq"`
	Origin    Origin          `json:"origin" yaml:"origin"`
	Query     string          `json:"query,omitempty" yaml:"query,omitempty"`
	Result    *ExchangeResult `json:"result,omitempty" yaml:"result,omitempty"`
	Notice    *SystemNotice   `json:"notice,omitempty" yaml:"notice,omitempty"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
}

// Text returns the human-readable body of the message
func (m Message) Text() string {
	switch m.Origin {
	case OriginUser:
		return m.Query
	case OriginAssistant:
		if m.Result != nil {
			return m.Result.Response
		}
	case OriginSystem:
		if m.Notice != nil {
			return m.Notice.Text
		}
	}
	return ""
}

// QueryRequest is the body of POST /query
type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// ItemsResponse is the body of GET /items and POST /items/search
type ItemsResponse struct {
	Items []RawItem `json:"items"`
	Count *int      `json:"count,omitempty"`
}

// ItemQuery is the body of POST /items/search
type ItemQuery struct {
	SearchQuery string   `json:"search_query,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	SortBy      string   `json:"sort_by,omitempty"`
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ConversationHistory is the body of GET /conversation/{session_id}
type ConversationHistory struct {
	SessionID string            `json:"session_id"`
	History   []json.RawMessage `json:"history"`
}
