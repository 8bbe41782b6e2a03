package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
)

// ChangesHandler streams committed data changes to the client over
// server-sent events so list views can refresh without polling.
type ChangesHandler struct {
	hub *realtime.Hub
}

func NewChangesHandler(hub *realtime.Hub) *ChangesHandler {
	return &ChangesHandler{hub: hub}
}

func (h *ChangesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	changes, cancel := h.hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, open := <-changes:
			if !open {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				logger.Error("change encoding failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
