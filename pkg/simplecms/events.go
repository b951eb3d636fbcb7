package simplecms

import (
	"context"
	"log/slog"
)

// Collection names a persisted collection. The value doubles as its kv key.
type Collection string

const (
	CollectionArticles     Collection = "articles"
	CollectionCategories   Collection = "categories"
	CollectionPages        Collection = "pages"
	CollectionMenuItems    Collection = "menuItems"
	CollectionMedia        Collection = "media"
	CollectionSiteSettings Collection = "siteSettings"
)

// Collections lists every persisted collection in load order
var Collections = []Collection{
	CollectionArticles,
	CollectionCategories,
	CollectionPages,
	CollectionMenuItems,
	CollectionMedia,
	CollectionSiteSettings,
}

// Key returns the kv key the collection is stored under
func (c Collection) Key() string {
	return string(c)
}

// EventType describes what happened to a collection
type EventType string

const (
	EventLoaded    EventType = "loaded"
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventDeleted   EventType = "deleted"
	EventReordered EventType = "reordered"
)

// Event is delivered to listeners after a change has been applied and persisted.
// ID is empty for whole-collection events.
type Event struct {
	Type       EventType
	Collection Collection
	ID         string
}

// Listener observes store changes. Listeners run synchronously on the
// mutating goroutine, outside the store lock, so they may query the store.
type Listener func(ctx context.Context, event Event)

type subscription struct {
	id       uint64
	listener Listener
}

// Subscribe registers listener and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *service) Subscribe(listener Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.nextSubscription++
	id := s.nextSubscription
	s.subscriptions = append(s.subscriptions, subscription{id: id, listener: listener})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, sub := range s.subscriptions {
			if sub.id == id {
				s.subscriptions = append(s.subscriptions[:i:i], s.subscriptions[i+1:]...)
				return
			}
		}
	}
}

func (s *service) notify(ctx context.Context, events ...Event) {
	s.listenersMu.Lock()
	subs := make([]subscription, len(s.subscriptions))
	copy(subs, s.subscriptions)
	s.listenersMu.Unlock()

	for _, event := range events {
		for _, sub := range subs {
			sub.listener(ctx, event)
		}
	}
}

// LoggingListener returns a Listener that logs every event at debug level
func LoggingListener(logger *slog.Logger) Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, event Event) {
		logger.DebugContext(ctx, "content changed",
			"type", event.Type,
			"collection", event.Collection,
			"id", event.ID)
	}
}
