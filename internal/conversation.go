package internal

import (
	"strings"
	"sync"
	"time"
)

// ChangeKind identifies what a Change notification is about
type ChangeKind int

const (
	ChangeAppended ChangeKind = iota
	ChangeLoading
	ChangeError
)

// Change is sent after every store mutation
type Change struct {
	Kind ChangeKind
	Len  int
}

// ConversationStore owns the timeline, the loading flag and the last error.
// The timeline only grows: entries are never edited, reordered or removed.
type ConversationStore struct {
	mu       sync.RWMutex
	messages []Message
	loading  bool
	errMsg   string
	now      func() time.Time

	changes chan Change
}

// NewConversationStore creates an empty store
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		now:     time.Now,
		changes: make(chan Change, 1),
	}
}

// Changes delivers change notifications. Notifications are coalesced: a
// slow reader sees the latest change, not every change.
func (s *ConversationStore) Changes() <-chan Change {
	return s.changes
}

// AppendUser records a submitted query. query must not be blank.
func (s *ConversationStore) AppendUser(query string) {
	if strings.TrimSpace(query) == "" {
		LogWarn("Ignoring blank user message")
		return
	}
	s.append(Message{Origin: OriginUser, Query: query})
}

// AppendAssistant records an assistant result
func (s *ConversationStore) AppendAssistant(result *ExchangeResult) {
	if result == nil {
		result = &ExchangeResult{}
	}
	s.append(Message{Origin: OriginAssistant, Result: result})
}

// AppendSystem records a diagnostic notice
func (s *ConversationStore) AppendSystem(text string, severity Severity) {
	s.append(Message{Origin: OriginSystem, Notice: &SystemNotice{Text: text, Severity: severity}})
}

func (s *ConversationStore) append(msg Message) {
	s.mu.Lock()
	msg.Seq = len(s.messages) + 1
	msg.CreatedAt = s.now()
	s.messages = append(s.messages, msg)
	n := len(s.messages)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeAppended, Len: n})
}

// SetLoading sets the in-flight flag
func (s *ConversationStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	n := len(s.messages)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeLoading, Len: n})
}

// SetError sets the user-facing error message; "" clears it
func (s *ConversationStore) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	n := len(s.messages)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeError, Len: n})
}

// ClearError dismisses the error message
func (s *ConversationStore) ClearError() {
	s.SetError("")
}

// Messages returns a copy of the timeline in insertion order
func (s *ConversationStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of timeline entries
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Loading reports whether an exchange is in flight
func (s *ConversationStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the current error message, "" when there is none
func (s *ConversationStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *ConversationStore) notify(c Change) {
	for {
		select {
		case s.changes <- c:
			return
		default:
		}
		// drop the stale notification and retry with the newer one
		select {
		case <-s.changes:
		default:
		}
	}
}
