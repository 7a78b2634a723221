// Package events defines the article events exchanged between the API and the indexing pipeline.
package events

import (
	"context"
	"time"
)

// ArticleEventType is the kind of change that happened to an article.
type ArticleEventType string

const (
	ArticleCreated ArticleEventType = "created"
	ArticleUpdated ArticleEventType = "updated"
	ArticleDeleted ArticleEventType = "deleted"
)

// ArticleEvent carries only the article id; consumers reload the current state.
type ArticleEvent struct {
	Type      ArticleEventType `json:"type"`
	ArticleID uint             `json:"article_id"`
	At        time.Time        `json:"at"`
}

// Handler processes an article event.
type Handler interface {
	Handle(ctx context.Context, event ArticleEvent) error
}

// Publisher publishes article events after a successful write.
type Publisher interface {
	Publish(ctx context.Context, event ArticleEvent) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event ArticleEvent) error

func (f PublisherFunc) Publish(ctx context.Context, event ArticleEvent) error {
	return f(ctx, event)
}

// Direct returns a Publisher that hands events straight to h in the calling goroutine.
// It is used when Kafka is disabled.
func Direct(h Handler) Publisher {
	return PublisherFunc(func(ctx context.Context, event ArticleEvent) error {
		return h.Handle(ctx, event)
	})
}

// Discard is a Publisher that drops every event.
var Discard Publisher = PublisherFunc(func(context.Context, ArticleEvent) error { return nil })
