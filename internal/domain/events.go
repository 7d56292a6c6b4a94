package domain

import "time"

// Event types
const (
	EventTypeEntryRecorded    = "ledger.entry_recorded"
	EventTypeMovementRecorded = "inventory.movement_recorded"
	EventTypeEntityCreated    = "entity.created"
	EventTypeProductCreated   = "product.created"
)

// Aggregate types
const (
	AggregateTypeLedgerEntry       = "ledger_entry"
	AggregateTypeInventoryMovement = "inventory_movement"
	AggregateTypeEntity            = "entity"
	AggregateTypeProduct           = "product"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntryRecordedEvent payload
type EntryRecordedEvent struct {
	EntryID    string `json:"entry_id"`
	TenantID   string `json:"tenant_id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Direction  string `json:"direction"`
	Amount     string `json:"amount"`
	Balance    string `json:"balance"`
}

// MovementRecordedEvent payload
type MovementRecordedEvent struct {
	MovementID string `json:"movement_id"`
	TenantID   string `json:"tenant_id"`
	ProductID  string `json:"product_id"`
	Kind       string `json:"kind"`
	Quantity   int64  `json:"quantity"`
	Stock      int64  `json:"stock"`
}

// EntityCreatedEvent payload
type EntityCreatedEvent struct {
	EntityID   string `json:"entity_id"`
	TenantID   string `json:"tenant_id"`
	EntityType string `json:"entity_type"`
	Name       string `json:"name"`
}

// ProductCreatedEvent payload
type ProductCreatedEvent struct {
	ProductID string `json:"product_id"`
	TenantID  string `json:"tenant_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
}
