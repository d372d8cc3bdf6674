package websocket

// AdminChannel receives every event regardless of unit
const AdminChannel int32 = 0

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients listening on the channel
	Publish(channel int32, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the channel
func (h *Hub) Publish(channel int32, event Event) {
	h.Broadcast(channel, event)
}

// PublishToUnit sends the event to the unit's residents and to admins
func PublishToUnit(p EventPublisher, unitNumber int32, event Event) {
	if p == nil {
		return
	}
	if unitNumber != AdminChannel {
		p.Publish(unitNumber, event)
	}
	p.Publish(AdminChannel, event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(channel int32, event Event) {}
