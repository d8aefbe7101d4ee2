package session

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/voice"
)

type fakeConn struct {
	transport *fakeTransport
	token     string
	events    voice.TransportEvents
	remote    atomic.Bool
	micErr    error

	mu     sync.Mutex
	mic    bool
	closed bool
}

func (c *fakeConn) SetMicrophoneEnabled(_ context.Context, enabled bool) error {
	if c.micErr != nil {
		return c.micErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mic = enabled
	return nil
}

func (c *fakeConn) IsAnyRemoteUnmuted() bool {
	return c.remote.Load()
}

func (c *fakeConn) Disconnect(_ context.Context) error {
	c.mu.Lock()
	wasClosed := c.closed
	c.closed = true
	c.mu.Unlock()
	if !wasClosed {
		c.transport.closed()
	}
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) micOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mic
}

// fakeTransport counts open connections. A gate registered for a token
// holds Connect until it is closed, ignoring ctx like an SDK that finishes
// its handshake anyway.
type fakeTransport struct {
	entered chan string

	mu      sync.Mutex
	gates   map[string]chan struct{}
	err     error
	open    int
	maxOpen int
	conns   []*fakeConn
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		entered: make(chan string, 64),
		gates:   make(map[string]chan struct{}),
	}
}

func (t *fakeTransport) gate(token string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan struct{})
	t.gates[token] = ch
	return ch
}

func (t *fakeTransport) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

func (t *fakeTransport) Connect(_ context.Context, _, token string, events voice.TransportEvents) (voice.Connection, error) {
	select {
	case t.entered <- token:
	default:
	}

	t.mu.Lock()
	gate := t.gates[token]
	t.mu.Unlock()
	if gate != nil {
		<-gate
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	t.open++
	if t.open > t.maxOpen {
		t.maxOpen = t.open
	}
	conn := &fakeConn{transport: t, token: token, events: events}
	t.conns = append(t.conns, conn)
	return conn, nil
}

func (t *fakeTransport) closed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open--
}

func (t *fakeTransport) openCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *fakeTransport) peak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxOpen
}

func (t *fakeTransport) opened() []*fakeConn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*fakeConn(nil), t.conns...)
}

func (t *fakeTransport) last() *fakeConn {
	conns := t.opened()
	if len(conns) == 0 {
		return nil
	}
	return conns[len(conns)-1]
}

// recorder collects what the bus delivers.
type recorder struct {
	mu       sync.Mutex
	statuses []voice.ConnectionStatus
	errs     []error
	speaking []string
	silent   int
}

func (r *recorder) callbacks() voice.Callbacks {
	return voice.Callbacks{
		OnConnectionStatusChange: func(s voice.ConnectionStatus) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.statuses = append(r.statuses, s)
		},
		OnParticipantSpeaking: func(id string, speaking bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			mark := "-"
			if speaking {
				mark = "+"
			}
			r.speaking = append(r.speaking, mark+id)
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		OnAllSilent: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.silent++
		},
	}
}

func (r *recorder) statusList() []voice.ConnectionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]voice.ConnectionStatus(nil), r.statuses...)
}

func (r *recorder) errList() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

func (r *recorder) speakingList() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.speaking...)
}

func (r *recorder) silentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.silent
}

func tokenFor(roomID string) voice.Token {
	return voice.Token{Token: "tok-" + roomID, ServerURL: "wss://sfu.example.org", RoomID: roomID}
}

var errBackendDown = errors.New(voice.ErrTokenIssue, "backend down")
