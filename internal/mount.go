package internal

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Backend is everything the client needs from the assistant service
type Backend interface {
	Assistant
	Inventory
}

// App wires the conversation core together for one tab scope
type App struct {
	Session     *SessionManager
	Store       *ConversationStore
	Suggestions *SuggestionEngine
	Dispatcher  *QueryDispatcher
	Catalog     *Catalog
	Views       *ViewController
	Normalizer  *Normalizer
}

// NewApp creates the core components over the given backend and storage
func NewApp(backend Backend, storage TabStorage, catalogTTL time.Duration) *App {
	store := NewConversationStore()
	suggestions := NewSuggestionEngine()
	return &App{
		Session:     NewSessionManager(storage),
		Store:       store,
		Suggestions: suggestions,
		Dispatcher:  NewQueryDispatcher(backend, store, suggestions),
		Catalog:     NewCatalog(backend, catalogTTL),
		Views:       NewViewController(),
		Normalizer:  NewNormalizer(),
	}
}

// SessionID returns the tab's session identifier
func (a *App) SessionID() string {
	return a.Session.GetOrCreateSessionID()
}

// Mount performs the startup sequence: establish the session, then run the
// bootstrap exchange and the catalog load side by side. Neither can fail;
// their errors are already turned into state by the time they return.
func (a *App) Mount(ctx context.Context) Outcome {
	sessionID := a.SessionID()
	LogInfo("Mounting conversation for session %s", sessionID)

	var outcome Outcome
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		outcome = a.Dispatcher.Bootstrap(gctx, sessionID)
		return nil
	})
	g.Go(func() error {
		a.Catalog.Load(gctx)
		return nil
	})
	_ = g.Wait()

	return outcome
}

// Submit sends a user query on the tab's session
func (a *App) Submit(ctx context.Context, text string) Outcome {
	return a.Dispatcher.Submit(ctx, a.SessionID(), text)
}
