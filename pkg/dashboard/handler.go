package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/orario/orario/internal/rest"
	"github.com/orario/orario/pkg/business"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	counters *Counters
}

func NewHandler(counters *Counters) *Handler {
	return &Handler{counters: counters}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	businessId, err := business.CurrentId(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.counters.Summary(businessId))
}

// Stream pushes counter ticks as server-sent events until the client
// disconnects. The first event is the current summary so consumers do not
// start blind.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	businessId, err := business.CurrentId(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		rest.WriteError(w, http.StatusInternalServerError, rest.CodeInternal, "streaming not supported")
		return
	}

	// The server's write timeout would cut long-lived streams off.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Debugf("could not clear write deadline for SSE stream: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticks, unsubscribe := h.counters.SubscribeStream(businessId)
	defer unsubscribe()

	summary := h.counters.Summary(businessId)
	writeSSE(w, "summary", summary)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case tick := <-ticks:
			writeSSE(w, "tick", tick)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to encode SSE payload: %v", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
