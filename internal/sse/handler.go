package sse

import (
	"net/http"
	"strings"

	"github.com/osse101/tidepool/internal/logger"
)

// Handler returns an HTTP handler streaming hub events to one client
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			for _, t := range strings.Split(filterParam, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		client := hub.Register(eventTypes)
		if client == nil {
			http.Error(w, ErrMsgHubStopped, http.StatusServiceUnavailable)
			return
		}

		log := logger.FromContext(r.Context())
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes)

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		connected := hub.newEvent(client.ID, EventTypeConnected, map[string]interface{}{
			"client_id": client.ID,
			"filters":   eventTypes,
		})
		if !writeEvent(w, flusher, connected) {
			return
		}

		ticker := hub.clock.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.Events():
				if !ok {
					// Hub is shutting down
					return
				}
				if !writeEvent(w, flusher, event) {
					return
				}

			case <-ticker.Chan():
				if !writeEvent(w, flusher, hub.newEvent("", EventTypeKeepalive, nil)) {
					return
				}
			}
		}
	}
}

// writeEvent reports false when the client connection is gone
func writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		logger.Error(LogMsgWriteError, "event_type", event.Type, "error", err)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		logger.Debug(LogMsgWriteError, "event_type", event.Type, "error", err)
		return false
	}
	flusher.Flush()
	return true
}
