package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	intotel "github.com/imtaco/voicelink/internal/otel"
	"github.com/imtaco/voicelink/voice"
)

var tracer = intotel.Tracer("voicelink/session")

// Manager owns the single live connection. Every Connect and Disconnect
// bumps the generation; work started under an older generation drops its
// results, and closes anything it opened, instead of touching shared state.
//
// Transport opens and closes run one at a time through slot, so a new
// connection is only opened after every retired one has been closed.
type Manager struct {
	tokens          voice.TokenSource
	transport       voice.Transport
	audio           voice.AudioSession
	bus             *Bus
	silence         *SilenceMonitor
	guard           Guard
	slot            chan struct{}
	teardownTimeout time.Duration
	logger          *log.Logger
	wg              sync.WaitGroup

	mu          sync.Mutex
	status      voice.ConnectionStatus
	roomID      string
	conn        voice.Connection
	connGen     Generation
	listener    *listener
	mic         bool
	retired     []voice.Connection
	opCancel    context.CancelFunc
	audioActive bool
	closed      bool
}

type Option func(*options)

type options struct {
	clock clockwork.Clock
	audio voice.AudioSession
}

// WithClock drives the silence timer from clock.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithAudioSession activates audio before the first transport open and
// releases it after the last teardown.
func WithAudioSession(audio voice.AudioSession) Option {
	return func(o *options) { o.audio = audio }
}

func NewManager(
	tokens voice.TokenSource,
	transport voice.Transport,
	cfg *Config,
	logger *log.Logger,
	opts ...Option,
) (*Manager, error) {
	if logger == nil {
		panic("logger is required")
	}
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}

	silence, err := cfg.Silence()
	if err != nil {
		return nil, err
	}
	teardownTimeout := cfg.TeardownTimeout
	if teardownTimeout <= 0 {
		teardownTimeout = 10 * time.Second
	}

	m := &Manager{
		tokens:          tokens,
		transport:       transport,
		audio:           o.audio,
		bus:             NewBus(logger.Module("Bus")),
		slot:            make(chan struct{}, 1),
		teardownTimeout: teardownTimeout,
		logger:          logger,
	}
	m.silence = NewSilenceMonitor(o.clock, silence, m.IsAnyoneUnmuted, m.onSilent, logger.Module("Silence"))
	return m, nil
}

// Connect joins roomID and reports whether this call ended connected. A
// live connection to the same room is reused; only the microphone changes.
func (m *Manager) Connect(ctx context.Context, roomID string, micEnabled bool) (ok bool) {
	ctx, span := intotel.StartSpan(ctx, tracer, "session.connect", attribute.String("room.id", roomID))
	defer func() {
		span.SetAttributes(attribute.Bool("ok", ok))
		intotel.EndSpan(span, nil)
	}()
	connectAttempts.Add(ctx, 1)
	start := time.Now()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	gen := m.bumpLocked()
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.opCancel = cancel

	if m.conn != nil && m.roomID == roomID && m.status != voice.StatusConnecting {
		conn := m.conn
		m.mu.Unlock()
		connectShortcut.Add(ctx, 1)
		m.logger.Debug("already connected", log.Room(roomID), log.Gen(gen))
		return m.applyMicrophone(opCtx, gen, conn, micEnabled)
	}

	m.detachLocked()
	m.roomID = roomID
	m.setStatusLocked(voice.StatusConnecting)
	m.mu.Unlock()

	m.logger.Info("connecting", log.Room(roomID), log.Gen(gen), log.Bool("mic", micEnabled))

	// the previous connection must be gone before anything else happens
	err := m.teardown(opCtx)
	if !m.guard.IsCurrent(gen) {
		return m.discard(ctx, gen, "teardown")
	}
	if err != nil {
		return m.fail(ctx, gen, errors.Wrap(voice.ErrTransportConnect, err, "wait for teardown"))
	}

	tok, fromCache, err := m.tokens.Token(opCtx, roomID)
	if !m.guard.IsCurrent(gen) {
		return m.discard(ctx, gen, "token")
	}
	if err != nil {
		return m.fail(ctx, gen, err)
	}

	conn, err := m.open(opCtx, gen, tok)
	if conn == nil {
		if !m.guard.IsCurrent(gen) {
			return m.discard(ctx, gen, "open")
		}
		m.tokens.Invalidate()
		return m.fail(ctx, gen, err)
	}

	var micErr error
	if micEnabled {
		microphoneToggle.Add(ctx, 1)
		micErr = conn.SetMicrophoneEnabled(opCtx, true)
	}

	m.mu.Lock()
	if !m.guard.IsCurrent(gen) {
		// the connection is stored; whoever superseded us retires it
		m.mu.Unlock()
		return m.discard(ctx, gen, "microphone")
	}
	m.mic = micEnabled && micErr == nil
	m.setStatusLocked(voice.StatusConnected)
	if micErr != nil {
		m.bus.Publish(voice.ErrorEvent(errors.Wrap(voice.ErrMicrophone, micErr, "enable microphone")))
	}
	m.silence.Touch()
	m.mu.Unlock()

	connectSuccess.Add(ctx, 1)
	connectDuration.Record(ctx, time.Since(start).Seconds())
	m.logger.Info("connected",
		log.Room(roomID),
		log.Gen(gen),
		log.Bool("tokenFromCache", fromCache),
		log.Duration("took", time.Since(start)))
	return true
}

// open opens the transport inside the slot. It returns nil when the open
// failed or the generation went stale; in the latter case the connection
// has already been closed again.
func (m *Manager) open(ctx context.Context, gen Generation, tok voice.Token) (voice.Connection, error) {
	if err := m.acquire(ctx); err != nil {
		return nil, errors.Wrap(voice.ErrTransportConnect, err, "wait for transport")
	}
	defer m.release()

	m.closeRetired()
	if !m.guard.IsCurrent(gen) {
		return nil, nil
	}
	m.activateAudio(ctx)

	l := newListener(m, gen)
	conn, err := m.transport.Connect(ctx, tok.ServerURL, tok.Token, l)
	if err != nil {
		return nil, errors.Wrap(voice.ErrTransportConnect, err, "open transport")
	}
	openConnections.Add(ctx, 1)

	m.mu.Lock()
	if !m.guard.IsCurrent(gen) {
		m.mu.Unlock()
		m.closeConn(conn)
		return nil, nil
	}
	m.conn = conn
	m.connGen = gen
	m.listener = l
	m.mu.Unlock()
	return conn, nil
}

func (m *Manager) applyMicrophone(ctx context.Context, gen Generation, conn voice.Connection, enabled bool) bool {
	m.mu.Lock()
	unchanged := m.mic == enabled
	m.mu.Unlock()

	var err error
	if !unchanged {
		microphoneToggle.Add(ctx, 1)
		err = conn.SetMicrophoneEnabled(ctx, enabled)
	}

	m.mu.Lock()
	if !m.guard.IsCurrent(gen) {
		m.mu.Unlock()
		return m.discard(ctx, gen, "microphone")
	}
	if err != nil {
		m.bus.Publish(voice.ErrorEvent(errors.Wrap(voice.ErrMicrophone, err, "toggle microphone")))
	} else {
		m.mic = enabled
	}
	if m.mic {
		m.silence.Touch()
	}
	m.mu.Unlock()

	if !enabled {
		m.silence.Recheck()
	}
	return true
}

// Disconnect tears down the connection, including one still being opened,
// and returns after the transport is closed. Calling it while disconnected
// reports nothing new.
func (m *Manager) Disconnect(ctx context.Context) {
	disconnects.Add(ctx, 1)

	m.mu.Lock()
	gen := m.bumpLocked()
	m.detachLocked()
	m.roomID = ""
	m.mu.Unlock()

	if err := m.teardown(ctx); err != nil {
		m.logger.Warn("teardown continues in background", log.Gen(gen), log.Error(err))
		m.teardownAsync()
	}
	m.releaseAudio(ctx, gen)

	m.mu.Lock()
	if m.guard.IsCurrent(gen) {
		m.setStatusLocked(voice.StatusDisconnected)
	}
	m.mu.Unlock()
	m.logger.Debug("disconnected", log.Gen(gen))
}

// SetMicrophoneEnabled toggles local transmit on the live connection.
func (m *Manager) SetMicrophoneEnabled(ctx context.Context, enabled bool) bool {
	m.mu.Lock()
	conn := m.conn
	if conn == nil || m.status == voice.StatusConnecting {
		m.mu.Unlock()
		return false
	}
	gen := m.guard.Current()
	m.mu.Unlock()

	microphoneToggle.Add(ctx, 1)
	err := conn.SetMicrophoneEnabled(ctx, enabled)

	m.mu.Lock()
	if !m.guard.IsCurrent(gen) || m.conn != conn {
		m.mu.Unlock()
		staleDiscards.Add(ctx, 1)
		return false
	}
	if err != nil {
		m.bus.Publish(voice.ErrorEvent(errors.Wrap(voice.ErrMicrophone, err, "toggle microphone")))
		m.mu.Unlock()
		return false
	}
	m.mic = enabled
	if enabled {
		m.silence.Touch()
	}
	m.mu.Unlock()

	if !enabled {
		m.silence.Recheck()
	}
	return true
}

// IsAnyoneUnmuted reports whether the local or any remote microphone is on.
func (m *Manager) IsAnyoneUnmuted() bool {
	m.mu.Lock()
	mic, conn := m.mic, m.conn
	m.mu.Unlock()

	if mic {
		return true
	}
	return conn != nil && conn.IsAnyRemoteUnmuted()
}

func (m *Manager) Status() voice.ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// RoomID is the room connected to or being connected to.
func (m *Manager) RoomID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roomID
}

func (m *Manager) MicrophoneEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mic
}

func (m *Manager) Generation() uint64 {
	return m.guard.Current()
}

func (m *Manager) SetCallbacks(cb voice.Callbacks) {
	m.bus.SetCallbacks(cb)
}

func (m *Manager) SetSilenceTimeout(d time.Duration) {
	m.silence.SetTimeout(d)
}

func (m *Manager) SilenceTimeout() time.Duration {
	return m.silence.Timeout()
}

// Close disconnects and stops the background goroutines. Queued events are
// still delivered.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.Disconnect(context.Background())
	m.silence.Close()
	m.wg.Wait()
	m.bus.Close()
}

func (m *Manager) onSilent() {
	m.mu.Lock()
	live := m.conn != nil && m.status == voice.StatusConnected
	m.mu.Unlock()
	if !live {
		return
	}
	m.logger.Info("every microphone silent")
	m.bus.Publish(voice.Event{Kind: voice.EventAllSilent})
}

func (m *Manager) fail(ctx context.Context, gen Generation, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.guard.IsCurrent(gen) {
		staleDiscards.Add(ctx, 1)
		return false
	}
	connectFailed.Add(ctx, 1)
	m.logger.Warn("connect failed", log.Room(m.roomID), log.Gen(gen), log.Error(err))

	m.roomID = ""
	m.setStatusLocked(voice.StatusError)
	m.bus.Publish(voice.ErrorEvent(err))
	m.setStatusLocked(voice.StatusDisconnected)
	return false
}

func (m *Manager) discard(ctx context.Context, gen Generation, stage string) bool {
	staleDiscards.Add(ctx, 1)
	m.logger.Debug("superseded", log.Gen(gen), log.String("stage", stage))
	return false
}

// bumpLocked starts a new generation and cancels the waits of the previous
// operation.
func (m *Manager) bumpLocked() Generation {
	if m.opCancel != nil {
		m.opCancel()
		m.opCancel = nil
	}
	return m.guard.Bump()
}

// detachLocked retires the live connection; the next slot holder closes it.
// Its speakers stop speaking as far as the callbacks are concerned.
func (m *Manager) detachLocked() {
	if m.conn != nil {
		m.retired = append(m.retired, m.conn)
		m.conn = nil
	}
	if m.listener != nil {
		for _, id := range m.listener.speakers.Clear() {
			m.bus.Publish(voice.SpeakingEvent(id, false))
		}
		m.listener = nil
	}
	m.mic = false
	m.silence.Stop()
}

func (m *Manager) setStatusLocked(s voice.ConnectionStatus) {
	if m.status == s {
		return
	}
	m.logger.Debug("status", log.Stringer("from", m.status), log.Stringer("to", s))
	m.status = s
	m.bus.Publish(voice.StatusEvent(s))
}

func (m *Manager) acquire(ctx context.Context) error {
	select {
	case m.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release() {
	<-m.slot
}

// teardown waits for the slot, so an open in flight finishes (and closes
// itself if stale) first, then closes every retired connection.
func (m *Manager) teardown(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()
	m.closeRetired()
	return nil
}

func (m *Manager) teardownAsync() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		_ = m.teardown(context.Background())
	}()
}

func (m *Manager) closeRetired() {
	m.mu.Lock()
	conns := m.retired
	m.retired = nil
	m.mu.Unlock()

	for _, conn := range conns {
		m.closeConn(conn)
	}
}

func (m *Manager) closeConn(conn voice.Connection) {
	ctx, cancel := context.WithTimeout(context.Background(), m.teardownTimeout)
	defer cancel()
	if err := conn.Disconnect(ctx); err != nil {
		m.logger.Warn("transport disconnect failed", log.Error(err))
	}
	openConnections.Add(ctx, -1)
}

func (m *Manager) activateAudio(ctx context.Context) {
	if m.audio == nil {
		return
	}
	m.mu.Lock()
	active := m.audioActive
	m.mu.Unlock()
	if active {
		return
	}

	if err := m.audio.Activate(ctx); err != nil {
		m.logger.Warn("audio session activate failed", log.Error(err))
		return
	}
	m.mu.Lock()
	m.audioActive = true
	m.mu.Unlock()
}

// releaseAudio gives the device audio session back unless a newer operation
// needs it again.
func (m *Manager) releaseAudio(ctx context.Context, gen Generation) {
	if m.audio == nil {
		return
	}
	m.mu.Lock()
	if !m.audioActive || !m.guard.IsCurrent(gen) || m.conn != nil {
		m.mu.Unlock()
		return
	}
	m.audioActive = false
	m.mu.Unlock()

	if err := m.audio.Release(ctx); err != nil {
		m.logger.Warn("audio session release failed", log.Error(err))
	}
}
