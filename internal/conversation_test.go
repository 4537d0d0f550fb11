package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestConversationStoreAppend(t *testing.T) {
	s := NewConversationStore()
	at := time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC)
	s.now = fixedClock(at)

	s.AppendUser("Do you have desks?")
	s.AppendAssistant(&ExchangeResult{Response: "Yes."})
	s.AppendSystem("Something broke", SeverityError)
	s.AppendAssistant(nil)

	msgs := s.Messages()
	require.Len(t, msgs, 4)

	assert.Equal(t, OriginUser, msgs[0].Origin)
	assert.Equal(t, "Do you have desks?", msgs[0].Text())
	assert.Equal(t, OriginAssistant, msgs[1].Origin)
	assert.Equal(t, "Yes.", msgs[1].Text())
	assert.Equal(t, OriginSystem, msgs[2].Origin)
	assert.Equal(t, SeverityError, msgs[2].Notice.Severity)
	require.NotNil(t, msgs[3].Result, "nil result is stored as empty")
	assert.Equal(t, "", msgs[3].Text())

	for i, m := range msgs {
		assert.Equal(t, i+1, m.Seq)
		assert.Equal(t, at, m.CreatedAt)
	}
}

func TestConversationStoreIgnoresBlankUserMessage(t *testing.T) {
	s := NewConversationStore()
	s.AppendUser("   ")
	assert.Equal(t, 0, s.Len())
}

func TestConversationStoreMessagesIsACopy(t *testing.T) {
	s := NewConversationStore()
	s.AppendUser("one")

	msgs := s.Messages()
	msgs[0].Query = "changed"

	assert.Equal(t, "one", s.Messages()[0].Query)
	assert.Equal(t, 1, s.Len())
}

func TestConversationStoreFlags(t *testing.T) {
	s := NewConversationStore()
	assert.False(t, s.Loading())
	assert.Equal(t, "", s.Error())

	s.SetLoading(true)
	assert.True(t, s.Loading())

	s.SetError(ErrorBanner)
	assert.Equal(t, ErrorBanner, s.Error())

	s.ClearError()
	assert.Equal(t, "", s.Error())
}

func TestConversationStoreChangesCoalesce(t *testing.T) {
	s := NewConversationStore()

	s.AppendUser("one")
	s.SetLoading(true)
	s.AppendUser("two")

	select {
	case c := <-s.Changes():
		assert.Equal(t, ChangeAppended, c.Kind)
		assert.Equal(t, 2, c.Len)
	default:
		t.Fatal("expected a pending change")
	}

	select {
	case c := <-s.Changes():
		t.Fatalf("unexpected extra change %+v", c)
	default:
	}
}
