package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
	"github.com/presenz/presenz-backend-go/internal/pkg/jwt"
	"github.com/presenz/presenz-backend-go/internal/pkg/sse"
	"github.com/presenz/presenz-backend-go/internal/service/live"
)

const keepaliveInterval = 30 * time.Second

type LiveHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type liveHandlerImpl struct {
	liveService live.LiveService
	jwtService  jwt.Service
}

func NewLiveHandler(liveService live.LiveService, jwtService jwt.Service) LiveHandler {
	return &liveHandlerImpl{
		liveService: liveService,
		jwtService:  jwtService,
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event sse.Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		slog.Error("failed to encode live event", "topic", event.Topic, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
	flusher.Flush()
}

// Stream handles GET /live/{topic}?token=
func (h *liveHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (EventSource can't send headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	uid, role, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	topic := chi.URLParam(r, "topic")
	if !sse.IsValidTopic(topic) {
		response.NotFound(w, "Unknown topic")
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	sub, err := h.liveService.Subscribe(r.Context(), topic, role)
	if err != nil {
		if errors.Is(err, live.ErrUnknownTopic) {
			response.NotFound(w, "Unknown topic")
			return
		}
		if errors.Is(err, live.ErrForbidden) {
			response.Forbidden(w, "Admin privilege required")
			return
		}
		response.HandleError(w, err)
		return
	}
	defer sub.Close()

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	slog.Debug("live subscriber connected", "uid", uid, "topic", topic)
	writeEvent(w, flusher, sub.Snapshot)

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			writeEvent(w, flusher, event)

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
