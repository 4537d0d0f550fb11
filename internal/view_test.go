package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewController(t *testing.T) {
	c := NewViewController()
	assert.Equal(t, ViewConversation, c.Active())

	c.Select(ViewCatalog)
	assert.Equal(t, ViewCatalog, c.Active())

	assert.Equal(t, ViewInformational, c.Next())
	assert.Equal(t, ViewConversation, c.Next(), "Next wraps around")
	assert.Equal(t, ViewInformational, c.Prev(), "Prev wraps around")
}

func TestViewControllerRejectsUnknownView(t *testing.T) {
	c := NewViewController()
	assert.Panics(t, func() { c.Select(View(7)) })
	assert.Equal(t, ViewConversation, c.Active())
}

func TestViewLabels(t *testing.T) {
	assert.Equal(t, "Chat", ViewConversation.Label(3))
	assert.Equal(t, "Items (3)", ViewCatalog.Label(3))
	assert.Equal(t, "Items (0)", ViewCatalog.Label(0))
	assert.Equal(t, "About", ViewInformational.Label(3))
	assert.Equal(t, "items", ViewCatalog.String())
}
