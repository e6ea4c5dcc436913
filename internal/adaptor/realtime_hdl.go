package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"expert-booking/internal/hub"
	"expert-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const heartbeatInterval = 25 * time.Second

// RealtimeHandler streams slot-change events over Server-Sent Events so a
// calendar view updates without polling.
type RealtimeHandler struct {
	events *hub.Hub
	log    *zap.Logger
}

func NewRealtimeHandler(events *hub.Hub, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		events: events,
		log:    log.With(zap.String("handler", "realtime")),
	}
}

// StreamSlotEvents handles GET /api/experts/{id}/events
func (h *RealtimeHandler) StreamSlotEvents(w http.ResponseWriter, r *http.Request) {
	expertID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid expert ID", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.ResponseInternalError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.events.Subscribe(expertID)
	defer h.events.Unsubscribe(sub)

	h.log.Info("Slot event stream opened", zap.String("expert_id", expertID.String()))

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("Slot event stream closed", zap.String("expert_id", expertID.String()))
			return

		case event, open := <-sub.Events():
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Error("Failed to encode slot event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: slot_changed\ndata: %s\n\n", payload)
			flusher.Flush()

		case <-heartbeat.C:
			// Comment line keeps intermediaries from timing out idle streams.
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
