package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscript(t *testing.T) {
	store := NewConversationStore()
	store.AppendUser("hi")
	store.AppendAssistant(&ExchangeResult{Response: "hello"})

	tr := NewTranscript("s-1", "work", store)
	assert.Equal(t, "s-1", tr.SessionID)
	assert.Equal(t, "work", tr.Tab)
	assert.False(t, tr.ExportedAt.IsZero())
	require.Len(t, tr.Messages, 2)

	store.AppendUser("later")
	assert.Len(t, tr.Messages, 2, "transcript is a snapshot")
}
