// Package events provides the typed in-process event bus used to push
// dashboard notifications (alerts, trades, briefings) to connected clients.
package events

import (
	"sync"
	"time"
)

// EventType identifies a class of event on the bus
type EventType string

const (
	// VibeAlertRaised fires when sentiment analysis crosses an alert threshold
	VibeAlertRaised EventType = "vibe_alert_raised"
	// TradePlaced fires after a mock trade has been computed
	TradePlaced EventType = "trade_placed"
	// BriefingGenerated fires after a hype briefing finished synthesizing
	BriefingGenerated EventType = "briefing_generated"
	// SignalsAnalyzed fires after a batch of signals has been analyzed
	SignalsAnalyzed EventType = "signals_analyzed"
)

// Event is a single published event
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Handler receives published events
type Handler func(*Event)

// Bus is a minimal publish/subscribe fanout. Subscribers are invoked
// synchronously in Publish; handlers must not block.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler for all events and returns an unsubscribe function
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers an event to every subscriber
func (b *Bus) Publish(data EventData) {
	event := &Event{
		Type:      data.EventType(),
		Timestamp: time.Now(),
		Data:      data,
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
