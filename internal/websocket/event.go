package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, completed)
type EventType string

const (
	EventTypeCreated   EventType = "created"
	EventTypeUpdated   EventType = "updated"
	EventTypeDeleted   EventType = "deleted"
	EventTypeCompleted EventType = "completed"
	EventTypeImported  EventType = "imported"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeLedgerEntry EntityType = "ledger_entry"
	EntityTypeReading     EntityType = "reading"
	EntityTypeSettlement  EntityType = "settlement"
	EntityTypeTariff      EntityType = "tariff"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "ledger_entry.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "ledger_entry"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEntryCreated creates a ledger_entry.created event
func LedgerEntryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLedgerEntry, payload)
}

// ReadingCreated creates a reading.created event
func ReadingCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeReading, payload)
}

// ReadingUpdated creates a reading.updated event
func ReadingUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeReading, payload)
}

// ReadingsImported creates a reading.imported event
func ReadingsImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeReading, payload)
}

// SettlementCompleted creates a settlement.completed event
func SettlementCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeSettlement, payload)
}

// TariffCreated creates a tariff.created event
func TariffCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTariff, payload)
}

// TariffDeleted creates a tariff.deleted event
func TariffDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTariff, payload)
}
