package hub

import (
	"testing"

	"expert-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func event(expertID uuid.UUID, slot string) SlotChanged {
	return SlotChanged{
		ExpertID: expertID,
		Date:     "2026-09-15",
		Slot:     slot,
		Status:   entity.BookingStatusConfirmed,
	}
}

func TestPublishFansOutToExpertSubscribers(t *testing.T) {
	h := New(4, zap.NewNop())
	defer h.Close()

	expertA := uuid.New()
	expertB := uuid.New()

	subA1 := h.Subscribe(expertA)
	subA2 := h.Subscribe(expertA)
	subB := h.Subscribe(expertB)

	h.Publish(event(expertA, "10:00"))

	for _, sub := range []*Subscriber{subA1, subA2} {
		select {
		case got := <-sub.Events():
			assert.Equal(t, "10:00", got.Slot)
			assert.Equal(t, expertA, got.ExpertID)
		default:
			t.Fatal("subscriber should have received the event")
		}
	}

	select {
	case <-subB.Events():
		t.Fatal("other expert's subscriber must not receive the event")
	default:
	}
}

func TestNoRetroactiveDelivery(t *testing.T) {
	h := New(4, zap.NewNop())
	defer h.Close()

	expertID := uuid.New()
	h.Publish(event(expertID, "09:00"))

	sub := h.Subscribe(expertID)

	select {
	case <-sub.Events():
		t.Fatal("events published before Subscribe must not be replayed")
	default:
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	h := New(4, zap.NewNop())
	defer h.Close()

	// Must not panic or block.
	h.Publish(event(uuid.New(), "09:00"))
}

func TestUnsubscribeClosesChannelAndIsIdempotent(t *testing.T) {
	h := New(4, zap.NewNop())
	defer h.Close()

	expertID := uuid.New()
	sub := h.Subscribe(expertID)

	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	h.Unsubscribe(nil)

	_, open := <-sub.Events()
	assert.False(t, open, "channel must be closed after Unsubscribe")

	// Publishing after removal goes nowhere.
	h.Publish(event(expertID, "10:00"))
}

func TestPublishDropsOldestWhenBufferFull(t *testing.T) {
	h := New(2, zap.NewNop())
	defer h.Close()

	expertID := uuid.New()
	sub := h.Subscribe(expertID)

	for _, slot := range []string{"09:00", "10:00", "11:00", "12:00"} {
		h.Publish(event(expertID, slot))
	}

	// Oldest events were dropped; the survivors stay in order.
	first := <-sub.Events()
	second := <-sub.Events()
	assert.Equal(t, "11:00", first.Slot)
	assert.Equal(t, "12:00", second.Slot)

	select {
	case <-sub.Events():
		t.Fatal("buffer should hold at most two events")
	default:
	}
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	h := New(1, zap.NewNop())
	defer h.Close()

	expertID := uuid.New()
	slow := h.Subscribe(expertID)
	fast := h.Subscribe(expertID)

	h.Publish(event(expertID, "09:00"))

	// fast keeps up, slow does not read at all.
	got := <-fast.Events()
	require.Equal(t, "09:00", got.Slot)

	// Both publishes return promptly even though slow never drained;
	// slow is left holding only the newest event.
	h.Publish(event(expertID, "10:00"))

	got = <-fast.Events()
	assert.Equal(t, "10:00", got.Slot)

	got = <-slow.Events()
	assert.Equal(t, "10:00", got.Slot)

	select {
	case <-slow.Events():
		t.Fatal("slow subscriber's oldest event should have been dropped")
	default:
	}
}

func TestCloseClosesAllSubscribers(t *testing.T) {
	h := New(4, zap.NewNop())

	subA := h.Subscribe(uuid.New())
	subB := h.Subscribe(uuid.New())

	h.Close()
	h.Close()

	_, openA := <-subA.Events()
	_, openB := <-subB.Events()
	assert.False(t, openA)
	assert.False(t, openB)

	// A hub that is already closed hands out closed subscribers.
	late := h.Subscribe(uuid.New())
	_, open := <-late.Events()
	assert.False(t, open)
}
