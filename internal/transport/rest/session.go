package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultKeepAlive = 25 * time.Second

// SessionHandler serves the browser's session: snapshot, sign-in,
// sign-out and the event stream.
type SessionHandler struct {
	log       *slog.Logger
	eventBuf  int
	keepAlive time.Duration
}

// NewSessionHandler creates a SessionHandler. eventBuf is the per-stream
// event buffer; events beyond it are dropped and counted.
func NewSessionHandler(logger *slog.Logger, eventBuf int) *SessionHandler {
	if eventBuf <= 0 {
		eventBuf = 16
	}
	return &SessionHandler{
		log:       logger.With("handler", "session"),
		eventBuf:  eventBuf,
		keepAlive: defaultKeepAlive,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Get handles GET /api/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(client.Snapshot()))
}

// SignIn handles POST /api/session/sign-in.
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req signInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, err := client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(snap))
}

// SignOut handles POST /api/session/sign-out.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	if err := client.SignOut(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(client.Snapshot()))
}

type eventPayload struct {
	Name    string          `json:"name"`
	Dropped int             `json:"dropped,omitempty"`
	Session sessionResponse `json:"session"`
}

// Events handles GET /api/session/events as a server-sent event stream.
// The first event is a snapshot; later events carry the client event name
// and the snapshot taken when it happened.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	rc := http.NewResponseController(w)
	// The stream outlives the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	events, dropped, unsubscribe := client.Events(h.eventBuf)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", eventPayload{Name: "snapshot", Session: toSessionResponse(client.Snapshot())}); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		h.log.WarnContext(r.Context(), "event stream not flushable", slog.String("error", err.Error()))
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.Done():
			return
		case e := <-events:
			payload := eventPayload{
				Name:    e.Name,
				Dropped: dropped.Count(),
				Session: toSessionResponse(e.Snapshot),
			}
			if err := writeEvent(w, string(e.Type), payload); err != nil {
				return
			}
		case <-ticker.C:
			client.KeepAlive()
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, payload eventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
