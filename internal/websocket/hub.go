package websocket

import (
	"errors"
	"sync"

	"github.com/dafibh/condo/condo-backend/internal/metrics"
	"github.com/rs/zerolog/log"
)

var (
	// ErrClientClosed is returned when sending to a closed subscriber
	ErrClientClosed = errors.New("client is closed")

	// ErrSlowClient is returned when a subscriber's send buffer is full
	ErrSlowClient = errors.New("client send buffer full")
)

// Subscriber is one live connection listening on a channel
type Subscriber interface {
	ID() string
	Channel() int32
	Send(data []byte) error
	Close() error
}

// Hub fans ledger, reading and settlement events out to subscribers. Each
// unit has its own channel; staff listen on AdminChannel.
//
// Events for one channel are delivered in publish order, so a subscriber
// never sees a later running balance before an earlier one. A subscriber
// whose buffer is full is disconnected rather than allowed to stall
// the publisher.
type Hub struct {
	mu       sync.RWMutex
	channels map[int32]map[string]Subscriber
	closed   bool
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{channels: make(map[int32]map[string]Subscriber)}
}

// Register adds a subscriber under its channel. After Close, new
// subscribers are closed immediately.
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = s.Close()
		return
	}
	channel := s.Channel()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[string]Subscriber)
	}
	h.channels[channel][s.ID()] = s
	h.reportLocked()
	h.mu.Unlock()

	log.Debug().
		Int32("channel", channel).
		Str("client_id", s.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a subscriber. It reports whether the subscriber was
// still registered.
func (h *Hub) Unregister(s Subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removeLocked(s)
}

func (h *Hub) removeLocked(s Subscriber) bool {
	subs, ok := h.channels[s.Channel()]
	if !ok {
		return false
	}
	if _, ok := subs[s.ID()]; !ok {
		return false
	}
	delete(subs, s.ID())
	if len(subs) == 0 {
		delete(h.channels, s.Channel())
	}
	h.reportLocked()
	return true
}

// reportLocked publishes subscriber gauges split by audience
func (h *Hub) reportLocked() {
	admins := len(h.channels[AdminChannel])
	residents := 0
	for channel, subs := range h.channels {
		if channel != AdminChannel {
			residents += len(subs)
		}
	}
	metrics.SetLiveSubscribers("admin", admins)
	metrics.SetLiveSubscribers("resident", residents)
}

// Broadcast sends an event to every subscriber of a channel
func (h *Hub) Broadcast(channel int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("channel", channel).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.channels[channel]))
	for _, s := range h.channels[channel] {
		subs = append(subs, s)
	}
	h.mu.RUnlock()
	if len(subs) == 0 {
		return
	}

	// Send only enqueues, so delivering in the caller keeps per-channel order.
	dropped := 0
	for _, s := range subs {
		err := s.Send(data)
		if err == nil {
			continue
		}
		dropped++
		log.Warn().
			Err(err).
			Int32("channel", channel).
			Str("client_id", s.ID()).
			Msg("Dropping websocket client")
		if h.Unregister(s) && errors.Is(err, ErrSlowClient) {
			metrics.IncDroppedSubscriber()
		}
		_ = s.Close()
	}

	log.Debug().
		Int32("channel", channel).
		Str("event_type", event.Type).
		Int("delivered", len(subs)-dropped).
		Msg("Broadcast event")
}

// ClientCount returns the number of subscribers on a channel
func (h *Hub) ClientCount(channel int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// TotalClientCount returns the number of subscribers across all channels
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, subs := range h.channels {
		total += len(subs)
	}
	return total
}

// Close disconnects every subscriber and refuses new ones. It is called on
// server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	var all []Subscriber
	for _, subs := range h.channels {
		for _, s := range subs {
			all = append(all, s)
		}
	}
	h.channels = make(map[int32]map[string]Subscriber)
	h.reportLocked()
	h.mu.Unlock()

	for _, s := range all {
		_ = s.Close()
	}
	log.Info().Int("clients", len(all)).Msg("WebSocket hub closed")
}
