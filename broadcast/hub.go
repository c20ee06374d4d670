package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

// CapacityUpdate is the payload pushed to live watchers of an event.
type CapacityUpdate struct {
	EventID           uuid.UUID `json:"event_id"`
	CurrentAttendance int       `json:"current_attendance"`
	TotalCapacity     int       `json:"total_capacity"`
}

// Subscription receives updates for a single event. Updates stop arriving
// once the subscription is dropped or unsubscribed; C is closed either way.
type Subscription struct {
	eventID uuid.UUID
	C       chan CapacityUpdate
}

// Hub fans capacity updates out to in-process subscribers, grouped per
// event. Delivery is best-effort: a subscriber whose buffer is full is
// dropped rather than blocking the publisher.
type Hub struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: map[uuid.UUID]map[*Subscription]struct{}{},
	}
}

func (h *Hub) Subscribe(eventID uuid.UUID, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}

	sub := &Subscription{
		eventID: eventID,
		C:       make(chan CapacityUpdate, buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[eventID]
	if !ok {
		room = map[*Subscription]struct{}{}
		h.rooms[eventID] = room
	}
	room[sub] = struct{}{}

	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(sub)
}

func (h *Hub) Publish(update CapacityUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.rooms[update.EventID] {
		select {
		case sub.C <- update:
		default:
			// subscriber is not keeping up, drop it
			h.remove(sub)
		}
	}
}

// remove must be called with the mutex held.
func (h *Hub) remove(sub *Subscription) {
	room, ok := h.rooms[sub.eventID]
	if !ok {
		return
	}
	if _, ok := room[sub]; !ok {
		return
	}

	delete(room, sub)
	if len(room) == 0 {
		delete(h.rooms, sub.eventID)
	}
	close(sub.C)
}
