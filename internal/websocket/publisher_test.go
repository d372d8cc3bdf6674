package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_Implements_EventPublisher(t *testing.T) {
	// Compile-time check that Hub implements EventPublisher
	var _ EventPublisher = (*Hub)(nil)
}

func TestHub_Publish(t *testing.T) {
	hub := NewHub()

	client := newFakeSubscriber("client-1", 15)
	hub.Register(client)

	var publisher EventPublisher = hub
	event := LedgerEntryCreated(map[string]interface{}{"id": float64(42)})
	publisher.Publish(15, event)

	messages := client.received()
	assert.Len(t, messages, 1)
}

func TestPublishToUnit_ReachesUnitAndAdmins(t *testing.T) {
	hub := NewHub()

	resident := newFakeSubscriber("resident", 15)
	neighbour := newFakeSubscriber("neighbour", 16)
	admin := newFakeSubscriber("admin", AdminChannel)
	hub.Register(resident)
	hub.Register(neighbour)
	hub.Register(admin)

	PublishToUnit(hub, 15, LedgerEntryCreated(map[string]interface{}{"id": float64(1)}))

	assert.Len(t, resident.received(), 1)
	assert.Len(t, admin.received(), 1)
	assert.Empty(t, neighbour.received())
}

func TestPublishToUnit_AdminChannelOnlyOnce(t *testing.T) {
	hub := NewHub()
	admin := newFakeSubscriber("admin", AdminChannel)
	hub.Register(admin)

	PublishToUnit(hub, AdminChannel, SettlementCompleted(map[string]interface{}{"failed": float64(0)}))

	assert.Len(t, admin.received(), 1)
}

func TestPublishToUnit_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		PublishToUnit(nil, 1, ReadingCreated(nil))
	})
}

func TestNoOpPublisher_Publish(t *testing.T) {
	publisher := &NoOpPublisher{}

	assert.NotPanics(t, func() {
		event := LedgerEntryCreated(map[string]interface{}{"id": float64(1)})
		publisher.Publish(1, event)
	})
}

func TestNoOpPublisher_Implements_EventPublisher(t *testing.T) {
	// Compile-time check that NoOpPublisher implements EventPublisher
	var _ EventPublisher = (*NoOpPublisher)(nil)
}
