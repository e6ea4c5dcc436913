package hub

import (
	"sync"

	"expert-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotChanged is pushed to every session watching an expert's calendar
// whenever a slot is taken or freed. Delivery is best-effort and
// at-most-once; viewers that need authoritative state re-query the
// calendar instead of trusting the stream.
type SlotChanged struct {
	ExpertID uuid.UUID            `json:"expert_id"`
	Date     string               `json:"date"`
	Slot     string               `json:"slot"`
	Status   entity.BookingStatus `json:"status"`
}

// Subscriber is one connected viewer session. Events arrive on a bounded
// buffer; when the consumer falls behind, the oldest buffered event is
// dropped so Publish never waits on a slow connection.
type Subscriber struct {
	expertID uuid.UUID
	events   chan SlotChanged
	closed   bool
}

// Events returns the channel the session reads from. The channel is
// closed when the subscriber is removed from the hub.
func (s *Subscriber) Events() <-chan SlotChanged {
	return s.events
}

// Hub is the in-process registry of calendar viewers, keyed by expert ID.
// It is constructed once per process and injected into the booking
// service and the realtime transport. It carries no correctness weight:
// events are never persisted or replayed.
type Hub struct {
	mu         sync.RWMutex
	subs       map[uuid.UUID]map[*Subscriber]struct{}
	bufferSize int
	closed     bool
	log        *zap.Logger
}

func New(bufferSize int, log *zap.Logger) *Hub {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &Hub{
		subs:       make(map[uuid.UUID]map[*Subscriber]struct{}),
		bufferSize: bufferSize,
		log:        log.With(zap.String("component", "hub")),
	}
}

// Subscribe registers a new viewer session for an expert's calendar.
// Events published before this call are never replayed.
func (h *Hub) Subscribe(expertID uuid.UUID) *Subscriber {
	sub := &Subscriber{
		expertID: expertID,
		events:   make(chan SlotChanged, h.bufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.closed = true
		close(sub.events)
		return sub
	}

	if h.subs[expertID] == nil {
		h.subs[expertID] = make(map[*Subscriber]struct{})
	}
	h.subs[expertID][sub] = struct{}{}

	h.log.Debug("Subscriber added",
		zap.String("expert_id", expertID.String()),
		zap.Int("subscribers", len(h.subs[expertID])),
	)

	return sub
}

// Unsubscribe removes a session and closes its event channel. Calling it
// twice, or with a subscriber that was never registered, is a no-op.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[sub.expertID]; ok {
		if _, registered := set[sub]; registered {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, sub.expertID)
			}
		}
	}

	if !sub.closed {
		sub.closed = true
		close(sub.events)
	}
}

// Publish fans the event out to every session subscribed to its expert.
// It never blocks and never returns an error: a full buffer loses its
// oldest event, a missing audience loses the event entirely.
func (h *Hub) Publish(event SlotChanged) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	set := h.subs[event.ExpertID]
	if len(set) == 0 {
		return
	}

	for sub := range set {
		h.deliver(sub, event)
	}

	h.log.Debug("Slot event published",
		zap.String("expert_id", event.ExpertID.String()),
		zap.String("date", event.Date),
		zap.String("slot", event.Slot),
		zap.String("status", string(event.Status)),
		zap.Int("subscribers", len(set)),
	)
}

// deliver enqueues without blocking. On a full buffer it drops the oldest
// buffered event and retries, keeping per-subscriber FIFO for what remains.
// Caller holds at least the read lock, so the channel cannot be closed
// underneath the send.
func (h *Hub) deliver(sub *Subscriber, event SlotChanged) {
	for {
		select {
		case sub.events <- event:
			return
		default:
		}

		select {
		case <-sub.events:
			h.log.Warn("Subscriber buffer full, dropped oldest event",
				zap.String("expert_id", sub.expertID.String()),
			)
		default:
		}
	}
}

// Close shuts down the hub and closes every subscriber channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, set := range h.subs {
		for sub := range set {
			if !sub.closed {
				sub.closed = true
				close(sub.events)
			}
		}
	}
	h.subs = make(map[uuid.UUID]map[*Subscriber]struct{})
}
