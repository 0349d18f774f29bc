// Package pubsub provides a generic publish/subscribe broker whose
// subscriptions can be drained from a Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the subject of an event.
type EventType string

const (
	// ChangedEvent reports new content.
	ChangedEvent EventType = "changed"
	// RemovedEvent reports that the subject is gone (deleted or renamed away).
	RemovedEvent EventType = "removed"
	// ErrorEvent reports a failure of the publisher itself.
	ErrorEvent EventType = "error"
)

// Event is one published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
