package ports

import "github.com/autolot/car-inventory-service/internal/core/domain"

// EventHub fans out change events to every currently connected realtime
// subscriber. Delivery is best-effort and at-most-once: a subscriber
// whose buffer is full misses the event, and nothing is replayed.
type EventHub interface {
	Subscribe() (string, <-chan domain.ChangeEvent)
	Unsubscribe(id string)
	Publish(event domain.ChangeEvent)
	Close()
}
