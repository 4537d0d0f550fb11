package internal

import (
	"fmt"
	"sync"
)

// View is one of the client's panels
type View int

const (
	ViewConversation View = iota
	ViewCatalog
	ViewInformational
)

// Views lists every panel in tab order
var Views = []View{ViewConversation, ViewCatalog, ViewInformational}

func (v View) valid() bool {
	return v >= ViewConversation && v <= ViewInformational
}

func (v View) String() string {
	switch v {
	case ViewConversation:
		return "chat"
	case ViewCatalog:
		return "items"
	case ViewInformational:
		return "about"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Label returns the tab title; the catalog tab shows its item count
func (v View) Label(catalogCount int) string {
	switch v {
	case ViewConversation:
		return "Chat"
	case ViewCatalog:
		return fmt.Sprintf("Items (%d)", catalogCount)
	case ViewInformational:
		return "About"
	default:
		return v.String()
	}
}

// ViewController tracks the single active view
type ViewController struct {
	mu     sync.RWMutex
	active View
}

// NewViewController starts on the conversation view
func NewViewController() *ViewController {
	return &ViewController{active: ViewConversation}
}

// Select makes v the active view. v outside the closed set is a
// programming error and panics.
func (c *ViewController) Select(v View) {
	if !v.valid() {
		panic(fmt.Sprintf("internal: invalid view %d", int(v)))
	}
	c.mu.Lock()
	c.active = v
	c.mu.Unlock()
}

// Active returns the active view
func (c *ViewController) Active() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Next activates the following view, wrapping around
func (c *ViewController) Next() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = Views[(int(c.active)+1)%len(Views)]
	return c.active
}

// Prev activates the preceding view, wrapping around
func (c *ViewController) Prev() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = Views[(int(c.active)+len(Views)-1)%len(Views)]
	return c.active
}
