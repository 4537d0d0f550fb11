package internal

import "sync"

// SuggestionEngine holds the suggested follow-up queries. The list is only
// ever replaced as a whole.
type SuggestionEngine struct {
	mu    sync.RWMutex
	items []string
}

// NewSuggestionEngine creates an engine with no suggestions
func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{}
}

// Replace discards the current list and installs a copy of list
func (s *SuggestionEngine) Replace(list []string) {
	next := make([]string, len(list))
	copy(next, list)

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
}

// Clear removes all suggestions
func (s *SuggestionEngine) Clear() {
	s.Replace(nil)
}

// Current returns a copy of the suggestions in display order
func (s *SuggestionEngine) Current() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of suggestions
func (s *SuggestionEngine) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
