// Package pubsub provides a generic publish/subscribe event system used to
// fan out refresh triggers and log entries to the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload's subject.
type EventType string

const (
	CreatedEvent EventType = "created"
	ChangedEvent EventType = "changed"
	RemovedEvent EventType = "removed"
)

// Event is one published notification. Timestamp is set at publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber is the consuming half of a broker.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher is the producing half of a broker.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
