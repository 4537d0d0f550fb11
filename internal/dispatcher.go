package internal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ExchangeState is the dispatcher's position in the exchange cycle
type ExchangeState int

const (
	StateIdle ExchangeState = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s ExchangeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports how a Submit or Bootstrap call ended
type Outcome int

const (
	// OutcomeSkipped: blank input, nothing happened
	OutcomeSkipped Outcome = iota
	// OutcomeBusy: another exchange was in flight, nothing happened
	OutcomeBusy
	OutcomeSucceeded
	OutcomeFailed
	// OutcomeFallback: bootstrap failed and the canned greeting was used
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeBusy:
		return "busy"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

const (
	// BootstrapQuery is sent on startup to obtain the greeting
	BootstrapQuery = "hello"

	// FallbackGreeting is shown when the bootstrap exchange fails
	FallbackGreeting = "👋 Welcome to our Business Assistant! I'm here to help you find the perfect products for your needs. How can I assist you today?"

	// ErrorBanner is the user-facing error after a failed exchange
	ErrorBanner = "Failed to get response. Please try again."

	// FailureNotice is the system timeline entry after a failed exchange
	FailureNotice = "Failed to get response from assistant. Please try again."
)

// FallbackSuggestions accompany FallbackGreeting
var FallbackSuggestions = []string{
	"Show me laptops under $500",
	"Do you have any office supplies?",
	"What are your best-selling items?",
}

// QueryDispatcher runs request/response exchanges against the assistant
// and commits their results to the conversation and suggestion state.
// At most one exchange is in flight at a time; overlapping calls are
// rejected with OutcomeBusy.
type QueryDispatcher struct {
	assistant   Assistant
	store       *ConversationStore
	suggestions *SuggestionEngine

	mu    sync.Mutex
	state ExchangeState
}

// NewQueryDispatcher wires a dispatcher to its collaborators
func NewQueryDispatcher(assistant Assistant, store *ConversationStore, suggestions *SuggestionEngine) *QueryDispatcher {
	return &QueryDispatcher{
		assistant:   assistant,
		store:       store,
		suggestions: suggestions,
	}
}

// State returns the current exchange state
func (d *QueryDispatcher) State() ExchangeState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Busy reports whether an exchange is in flight
func (d *QueryDispatcher) Busy() bool {
	return d.State() == StateSending
}

// Submit sends a user query. Blank input is ignored.
func (d *QueryDispatcher) Submit(ctx context.Context, sessionID, rawText string) Outcome {
	query := strings.TrimSpace(rawText)
	if query == "" {
		return OutcomeSkipped
	}
	if !d.begin() {
		LogWarn("Rejecting query while another exchange is in flight")
		return OutcomeBusy
	}

	d.suggestions.Clear()
	d.store.AppendUser(query)

	result, err := d.exchange(ctx, sessionID, query)
	if err != nil {
		d.store.SetError(ErrorBanner)
		d.store.AppendSystem(FailureNotice, SeverityError)
		d.finish(StateFailed)
		return OutcomeFailed
	}

	d.store.AppendAssistant(result)
	if result.Suggestions != nil {
		d.suggestions.Replace(result.Suggestions)
	}
	d.finish(StateSucceeded)
	return OutcomeSucceeded
}

// Bootstrap sends the synthetic greeting query. On failure the canned
// greeting and suggestions are committed instead of an error.
func (d *QueryDispatcher) Bootstrap(ctx context.Context, sessionID string) Outcome {
	if !d.begin() {
		return OutcomeBusy
	}

	result, err := d.exchange(ctx, sessionID, BootstrapQuery)
	if err != nil {
		fallback := &ExchangeResult{
			Response:    FallbackGreeting,
			Suggestions: append([]string(nil), FallbackSuggestions...),
		}
		d.store.AppendAssistant(fallback)
		d.suggestions.Replace(fallback.Suggestions)
		d.finish(StateFailed)
		return OutcomeFallback
	}

	d.store.AppendAssistant(result)
	if result.Suggestions != nil {
		d.suggestions.Replace(result.Suggestions)
	}
	d.finish(StateSucceeded)
	return OutcomeSucceeded
}

// begin moves Idle -> Sending; false if an exchange is already in flight
func (d *QueryDispatcher) begin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateSending {
		return false
	}
	d.state = StateSending
	return true
}

// finish records the terminal state, clears loading and returns to Idle
func (d *QueryDispatcher) finish(final ExchangeState) {
	d.mu.Lock()
	d.state = final
	d.mu.Unlock()

	d.store.SetLoading(false)

	d.mu.Lock()
	d.state = StateIdle
	d.mu.Unlock()
}

// exchange performs the single network call of one cycle. Loading is set
// for its whole duration; panics in the assistant are turned into failures.
func (d *QueryDispatcher) exchange(ctx context.Context, sessionID, query string) (result *ExchangeResult, err error) {
	d.store.SetLoading(true)
	d.store.SetError("")

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &TransportError{Op: "query", Err: panicError{r}}
		}
		if err == nil && result == nil {
			err = &DecodeError{Endpoint: "query", Err: errEmptyResult}
		}
		ev := log.Info()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("session_id", sessionID).
			Str("query", query).
			Dur("duration", time.Since(start)).
			Bool("ok", err == nil).
			Msg("exchange completed")
	}()

	return d.assistant.Query(ctx, QueryRequest{Query: query, SessionID: sessionID})
}
