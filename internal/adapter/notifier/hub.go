package notifier

import (
	"sync"

	"github.com/google/uuid"

	"github.com/autolot/car-inventory-service/internal/core/domain"
	"github.com/autolot/car-inventory-service/internal/core/ports"
)

// subscriberBuffer bounds each client's outbound queue. A subscriber
// that falls this far behind starts losing events rather than blocking
// the publisher.
const subscriberBuffer = 16

// Hub is an in-process publish/subscribe fan-out for change events.
// Events are at-most-once: nothing is buffered for clients that connect
// later, and a full subscriber channel drops the event for that client.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan domain.ChangeEvent
	closed      bool
	logger      ports.LoggerPort
}

func NewHub(logger ports.LoggerPort) *Hub {
	return &Hub{
		subscribers: make(map[string]chan domain.ChangeEvent),
		logger:      logger,
	}
}

func (h *Hub) Subscribe() (string, <-chan domain.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan domain.ChangeEvent, subscriberBuffer)
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subscribers[id] = ch

	h.logger.Info("Realtime client subscribed", map[string]interface{}{
		"subscriber_id": id,
		"subscribers":   len(h.subscribers),
	})
	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subscribers[id]
	if !ok {
		return
	}
	delete(h.subscribers, id)
	close(ch)

	h.logger.Info("Realtime client unsubscribed", map[string]interface{}{
		"subscriber_id": id,
		"subscribers":   len(h.subscribers),
	})
}

// Publish delivers the event to every current subscriber. The read lock
// held for the duration keeps Unsubscribe from closing a channel
// mid-send.
func (h *Hub) Publish(event domain.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("Subscriber buffer full, event dropped", map[string]interface{}{
				"subscriber_id": id,
				"event":         string(event.Kind),
				"car_id":        event.CarID,
			})
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}
