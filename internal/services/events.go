package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// inventoryExchange is the topic exchange inventory events are published to.
const inventoryExchange = "inventory"

// Event routing keys.
const (
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventProductDeleted      = "product.deleted"
	EventManufacturerCreated = "manufacturer.created"
	EventManufacturerUpdated = "manufacturer.updated"
	EventManufacturerDeleted = "manufacturer.deleted"
	EventStockLow            = "stock.low"
)

// EventPublisher publishes inventory events. Implemented by
// rabbitmq.Client; a nil publisher disables events.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Event is the envelope published for every inventory event.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// publishEvent publishes best-effort: failures are logged and never fail the
// request that produced them.
func publishEvent(logger *slog.Logger, pub EventPublisher, eventType string, data interface{}) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		logger.Warn("failed to marshal event", "type", eventType, "error", err)
		return
	}
	if err := pub.Publish(inventoryExchange, eventType, body); err != nil {
		logger.Warn("failed to publish event", "type", eventType, "error", err)
	}
}

// paging helpers shared by the list operations.

// pageWindow converts 1-based page/limit into a skip/limit window. Page
// values below 1 behave like page 1; limit 0 means all results.
func pageWindow(page, limit int) (skip, lim int64) {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return int64(page-1) * int64(limit), int64(limit)
}

// hasNextPage reports whether more results exist past the current window.
// Unlimited queries never have a next page.
func hasNextPage(skip, count, total, limit int64) bool {
	return limit > 0 && skip+count < total
}
