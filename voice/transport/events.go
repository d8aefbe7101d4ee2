package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	isync "github.com/imtaco/voicelink/internal/sync"
	"github.com/imtaco/voicelink/internal/utils"
	"github.com/imtaco/voicelink/internal/workflow"
	"github.com/imtaco/voicelink/voice"
)

const (
	pingInterval = 10 * time.Second
	pingTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	bufEvents    = 64
)

// Event is the JSON frame sent on the event stream.
type Event struct {
	Type          string          `json:"type"`
	Status        string          `json:"status,omitempty"`
	ParticipantID string          `json:"participantId,omitempty"`
	Speaking      *bool           `json:"speaking,omitempty"`
	Error         string          `json:"error,omitempty"`
	Code          string          `json:"code,omitempty"`
	Snapshot      *voice.Snapshot `json:"snapshot,omitempty"`
}

const typeSnapshot = "snapshot"

func newEvent(ev voice.Event) Event {
	out := Event{Type: ev.Kind.String()}
	switch ev.Kind {
	case voice.EventStatus:
		out.Status = ev.Status.String()
	case voice.EventSpeaking:
		out.ParticipantID = ev.ParticipantID
		out.Speaking = utils.Ptr(ev.Speaking)
	case voice.EventError:
		if ev.Err != nil {
			out.Error = ev.Err.Error()
			if code, ok := errors.CodeOf(ev.Err); ok {
				out.Code = string(code)
			}
		}
	}
	return out
}

type client struct {
	ch      chan Event
	evicted chan struct{}
	once    sync.Once
}

func (c *client) evict() {
	c.once.Do(func() { close(c.evicted) })
}

// EventHub fans controller events out to WebSocket clients. A client that
// cannot keep up is disconnected rather than slowing the others down.
type EventHub struct {
	clients  *isync.Map[string, *client]
	origins  []string
	snapshot func() voice.Snapshot
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewEventHub creates a hub. snapshot, when set, is sent to each client as
// its first frame.
func NewEventHub(origins []string, snapshot func() voice.Snapshot, logger *log.Logger) *EventHub {
	if logger == nil {
		panic("logger is required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &EventHub{
		clients:  isync.NewMap[string, *client](),
		origins:  origins,
		snapshot: snapshot,
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
}

// Callbacks is the registration that feeds the hub.
func (h *EventHub) Callbacks() voice.Callbacks {
	return voice.Callbacks{
		OnConnectionStatusChange: func(s voice.ConnectionStatus) {
			h.Broadcast(voice.StatusEvent(s))
		},
		OnParticipantSpeaking: func(id string, speaking bool) {
			h.Broadcast(voice.SpeakingEvent(id, speaking))
		},
		OnError: func(err error) {
			h.Broadcast(voice.ErrorEvent(err))
		},
		OnAllSilent: func() {
			h.Broadcast(voice.Event{Kind: voice.EventAllSilent})
		},
		OnAutoMuted: func() {
			h.Broadcast(voice.Event{Kind: voice.EventAutoMuted})
		},
	}
}

func (h *EventHub) Broadcast(ev voice.Event) {
	frame := newEvent(ev)
	streamEvents.Add(h.ctx, 1)
	h.clients.Range(func(id string, c *client) bool {
		select {
		case c.ch <- frame:
		default:
			h.logger.Warn("event stream client too slow", log.String("client", id))
			streamEvictions.Add(h.ctx, 1)
			c.evict()
		}
		return true
	})
}

// Clients is the number of connected streams.
func (h *EventHub) Clients() int {
	return h.clients.Len()
}

// Serve upgrades the request and streams events until the client leaves or
// the hub closes. Client messages are ignored.
func (h *EventHub) Serve(w http.ResponseWriter, r *http.Request) {
	if !h.enter() {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer h.wg.Done()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn("event stream upgrade failed",
			log.String("remote_addr", r.RemoteAddr),
			log.Error(err))
		return
	}

	ctx, cancel := workflow.WithEitherDone(r.Context(), h.ctx)
	defer cancel()
	ctx = conn.CloseRead(ctx)

	// registered before the snapshot is taken; events racing it are queued
	// behind the snapshot frame
	id := uuid.NewString()
	c := &client{
		ch:      make(chan Event, bufEvents),
		evicted: make(chan struct{}),
	}
	h.clients.Store(id, c)
	streamClients.Add(ctx, 1)
	defer func() {
		h.clients.Delete(id)
		streamClients.Add(context.Background(), -1)
	}()

	h.logger.Info("event stream opened",
		log.String("client", id),
		log.String("remote_addr", r.RemoteAddr))

	if h.snapshot != nil {
		snap := h.snapshot()
		if err := write(ctx, conn, Event{Type: typeSnapshot, Snapshot: &snap}); err != nil {
			_ = conn.Close(websocket.StatusInternalError, "write failed")
			h.logger.Info("event stream closed", log.String("client", id), log.Error(err))
			return
		}
	}

	code, reason := h.pump(ctx, conn, c)
	_ = conn.Close(code, reason)
	h.logger.Info("event stream closed", log.String("client", id), log.String("reason", reason))
}

// enter registers a handler unless the hub is closed.
func (h *EventHub) enter() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

func (h *EventHub) pump(ctx context.Context, conn *websocket.Conn, c *client) (websocket.StatusCode, string) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if h.ctx.Err() != nil {
				return websocket.StatusGoingAway, "server shutting down"
			}
			return websocket.StatusNormalClosure, "client gone"
		case <-c.evicted:
			return websocket.StatusPolicyViolation, "too slow"
		case ev := <-c.ch:
			if err := write(ctx, conn, ev); err != nil {
				return websocket.StatusInternalError, "write failed"
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return websocket.StatusGoingAway, "ping timeout"
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, ev Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, ev)
}

// Close disconnects every client and waits for their handlers to return.
func (h *EventHub) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	h.wg.Wait()
}
