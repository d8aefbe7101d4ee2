package lifecycle

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/internal/scheduler"
	isync "github.com/imtaco/voicelink/internal/sync"
	"github.com/imtaco/voicelink/voice"
	"github.com/imtaco/voicelink/voice/session"
)

const backgroundKey = "background"

type action int

const (
	actNone action = iota
	actConnect
	actDisconnect
	actSwitch
)

type plan struct {
	act  action
	room string
}

// Controller turns room, participant and app-state input into connect and
// disconnect calls on the session manager, and relays the manager's events
// to the UI.
//
// Decisions are taken under mu; the manager is called after mu is released.
type Controller struct {
	mgr      voice.SessionManager
	perms    voice.Permissions
	bus      *session.Bus
	sched    *scheduler.KeyedScheduler
	grace    time.Duration
	speakers *isync.Set[string]
	logger   *log.Logger
	wg       sync.WaitGroup

	mu         sync.Mutex
	desired    string
	count      int
	manual     bool
	suppressed bool
	mic        bool
	micGranted bool
	appState   voice.AppState
	graceDue   time.Time
	graceDown  bool
	closed     bool
}

type Option func(*options)

type options struct {
	clock clockwork.Clock
}

// WithClock drives the background grace timer from clock.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

func NewController(
	mgr voice.SessionManager,
	perms voice.Permissions,
	cfg *Config,
	logger *log.Logger,
	opts ...Option,
) (*Controller, error) {
	if logger == nil {
		panic("logger is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	grace := cfg.BackgroundGrace
	if grace == 0 {
		grace = DefaultBackgroundGrace
	}

	c := &Controller{
		mgr:      mgr,
		perms:    perms,
		bus:      session.NewBus(logger.Module("Bus")),
		sched:    scheduler.NewKeyedSchedulerWithClock(logger, o.clock),
		grace:    grace,
		speakers: isync.NewSet[string](),
		logger:   logger,
		appState: voice.AppStateForeground,
	}
	mgr.SetCallbacks(c.sessionCallbacks())

	c.wg.Add(1)
	go c.loop()
	return c, nil
}

// Update feeds the room the UI shows and how many other participants are
// in it.
func (c *Controller) Update(ctx context.Context, roomID string, participantCount int) {
	if participantCount < 0 {
		participantCount = 0
	}
	status, connected := c.mgr.Status(), c.mgr.RoomID()

	c.mu.Lock()
	if roomID != c.desired {
		c.logger.Info("room changed", log.String("from", c.desired), log.String("to", roomID))
		c.manual = false
		c.suppressed = false
		c.graceDown = false
		c.mic = false
	}
	if participantCount != c.count {
		c.suppressed = false
	}
	c.desired, c.count = roomID, participantCount
	p := c.planLocked(status, connected)
	c.mu.Unlock()

	c.run(ctx, p)
}

// planLocked decides what the input calls for given the manager's state.
func (c *Controller) planLocked(status voice.ConnectionStatus, connected string) plan {
	live := status.Live()
	background := c.appState == voice.AppStateBackground

	switch {
	case c.desired == "":
		if live {
			return plan{act: actDisconnect}
		}
	case live && connected != c.desired:
		if c.count > 0 && !background {
			return plan{act: actSwitch, room: c.desired}
		}
		return plan{act: actDisconnect}
	case !live:
		if c.count > 0 && !c.suppressed && !background && !c.graceDown {
			return plan{act: actConnect, room: c.desired}
		}
	case c.count == 0 && !c.manual:
		return plan{act: actDisconnect}
	}
	return plan{act: actNone}
}

func (c *Controller) run(ctx context.Context, p plan) bool {
	switch p.act {
	case actConnect:
		autoConnects.Add(ctx, 1)
		c.logger.Info("auto connect", log.Room(p.room))
		return c.mgr.Connect(ctx, p.room, false)
	case actDisconnect:
		autoDisconnects.Add(ctx, 1)
		c.logger.Info("auto disconnect")
		c.mgr.Disconnect(ctx)
	case actSwitch:
		roomSwitches.Add(ctx, 1)
		c.logger.Info("switch room", log.Room(p.room))
		c.mgr.Disconnect(ctx)
		return c.mgr.Connect(ctx, p.room, false)
	}
	return false
}

// Connect is the user asking to stay in roomID, or in the current room when
// roomID is empty. The connection survives being alone.
func (c *Controller) Connect(ctx context.Context, roomID string) bool {
	c.mu.Lock()
	if roomID == "" {
		roomID = c.desired
	}
	if roomID == "" {
		c.mu.Unlock()
		return false
	}
	if roomID != c.desired {
		c.desired = roomID
		c.mic = false
	}
	c.manual = true
	c.suppressed = false
	c.graceDown = false
	mic := c.mic && c.appState != voice.AppStateBackground
	c.mu.Unlock()

	c.logger.Info("user connect", log.Room(roomID))
	return c.mgr.Connect(ctx, roomID, mic)
}

// Disconnect is the user leaving voice. Nothing reconnects automatically
// until the room or the participant count changes.
func (c *Controller) Disconnect(ctx context.Context) {
	c.mu.Lock()
	c.manual = false
	c.suppressed = true
	c.mic = false
	c.graceDown = false
	c.cancelGraceLocked()
	c.mu.Unlock()

	c.logger.Info("user disconnect")
	c.mgr.Disconnect(ctx)
}

// Unmute enables the microphone, asking for permission until it is granted
// once and connecting first when needed.
func (c *Controller) Unmute(ctx context.Context) bool {
	c.mu.Lock()
	if c.appState == voice.AppStateBackground {
		c.mu.Unlock()
		c.logger.Info("unmute refused in background")
		return false
	}
	room, granted := c.desired, c.micGranted
	c.mu.Unlock()

	if room == "" {
		room = c.mgr.RoomID()
	}
	if room == "" {
		return false
	}

	if !granted {
		ok, err := c.perms.RequestMicrophone(ctx)
		if err != nil || !ok {
			permissionDenials.Add(ctx, 1)
			if err == nil {
				err = errors.New(voice.ErrPermissionDenied, "microphone access refused")
			} else {
				err = errors.Wrap(voice.ErrPermissionDenied, err, "request microphone permission")
			}
			c.logger.Warn("unmute aborted", log.Error(err))
			c.bus.Publish(voice.ErrorEvent(err))
			return false
		}
	}

	c.mu.Lock()
	c.micGranted = true
	if c.desired == "" {
		c.desired = room
	}
	c.manual = true
	c.suppressed = false
	c.graceDown = false
	c.mu.Unlock()

	if !c.mgr.Connect(ctx, room, true) {
		return false
	}
	enabled := c.mgr.MicrophoneEnabled()

	c.mu.Lock()
	if c.appState == voice.AppStateBackground {
		// backgrounded while connecting
		c.mic = false
		c.mu.Unlock()
		c.mgr.SetMicrophoneEnabled(ctx, false)
		return false
	}
	c.mic = enabled
	c.mu.Unlock()
	return enabled
}

func (c *Controller) Mute(ctx context.Context) {
	c.mu.Lock()
	c.mic = false
	c.mu.Unlock()

	if c.mgr.MicrophoneEnabled() {
		c.mgr.SetMicrophoneEnabled(ctx, false)
	}
}

// SetAppState mutes at once on background and tears the connection down
// when the grace period runs out. Returning to foreground cancels the
// teardown, or reconnects listen-only if it already happened.
func (c *Controller) SetAppState(ctx context.Context, state voice.AppState) {
	status, connected := c.mgr.Status(), c.mgr.RoomID()

	c.mu.Lock()
	switch state {
	case voice.AppStateBackground:
		if c.appState == voice.AppStateBackground {
			c.mu.Unlock()
			return
		}
		c.appState = state
		c.mic = false
		if status.Live() {
			c.graceDue = c.sched.Reset(backgroundKey, c.grace)
		}
		c.mu.Unlock()

		c.logger.Info("background", log.Bool("armed", status.Live()))
		if c.mgr.MicrophoneEnabled() {
			c.mgr.SetMicrophoneEnabled(ctx, false)
		}

	case voice.AppStateForeground:
		if c.appState == voice.AppStateForeground {
			c.mu.Unlock()
			return
		}
		c.appState = state
		c.cancelGraceLocked()
		autoMuted := c.graceDown
		c.graceDown = false
		p := c.planLocked(status, connected)
		c.mu.Unlock()

		c.logger.Info("foreground", log.Bool("reconnect", p.act == actConnect))
		if c.run(ctx, p) && autoMuted {
			c.bus.Publish(voice.Event{Kind: voice.EventAutoMuted})
		}

	default:
		// inactive is a transient state (calls, system sheets); nothing changes
		c.mu.Unlock()
	}
}

func (c *Controller) SetSilenceTimeout(d time.Duration) {
	c.mgr.SetSilenceTimeout(d)
}

func (c *Controller) IsParticipantSpeaking(participantID string) bool {
	return c.speakers.Has(participantID)
}

func (c *Controller) IsMicrophoneEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mic
}

func (c *Controller) ConnectionStatus() voice.ConnectionStatus {
	return c.mgr.Status()
}

func (c *Controller) Snapshot() voice.Snapshot {
	status, room, gen := c.mgr.Status(), c.mgr.RoomID(), c.mgr.Generation()
	speaking := c.speakers.Keys()
	slices.Sort(speaking)

	c.mu.Lock()
	defer c.mu.Unlock()
	return voice.Snapshot{
		Status:            status,
		RoomID:            room,
		DesiredRoomID:     c.desired,
		ParticipantCount:  c.count,
		MicrophoneEnabled: c.mic,
		Manual:            c.manual,
		AppState:          c.appState,
		Speaking:          speaking,
		Generation:        gen,
	}
}

// SetCallbacks registers the UI. The last registration wins.
func (c *Controller) SetCallbacks(cb voice.Callbacks) {
	c.bus.SetCallbacks(cb)
}

// Close stops the grace timer and delivers queued UI events. The session
// manager is left to its owner.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.sched.Shutdown()
	c.wg.Wait()
	c.bus.Close()
}

func (c *Controller) cancelGraceLocked() {
	if c.graceDue.IsZero() {
		return
	}
	c.graceDue = time.Time{}
	c.sched.Cancel(backgroundKey)
}

// spawn runs fn off the manager's delivery goroutine.
func (c *Controller) spawn(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *Controller) loop() {
	defer c.wg.Done()
	for f := range c.sched.Chan() {
		c.mu.Lock()
		if f.Key != backgroundKey || c.graceDue.IsZero() || !f.Due.Equal(c.graceDue) ||
			c.appState != voice.AppStateBackground {
			c.mu.Unlock()
			continue
		}
		c.graceDue = time.Time{}
		c.graceDown = true
		c.manual = false
		c.mic = false
		c.mu.Unlock()

		ctx := context.Background()
		backgroundTeardowns.Add(ctx, 1)
		c.logger.Info("background grace expired")
		c.mgr.Disconnect(ctx)
	}
}

func (c *Controller) sessionCallbacks() voice.Callbacks {
	return voice.Callbacks{
		OnConnectionStatusChange: c.onStatus,
		OnParticipantSpeaking:    c.onSpeaking,
		OnError: func(err error) {
			c.bus.Publish(voice.ErrorEvent(err))
		},
		OnAllSilent: c.onAllSilent,
	}
}

func (c *Controller) onStatus(status voice.ConnectionStatus) {
	if !status.Live() {
		c.mu.Lock()
		c.mic = false
		c.mu.Unlock()
		for _, id := range c.speakers.Clear() {
			c.bus.Publish(voice.SpeakingEvent(id, false))
		}
	}
	c.bus.Publish(voice.StatusEvent(status))
}

func (c *Controller) onSpeaking(participantID string, speaking bool) {
	var changed bool
	if speaking {
		changed = c.speakers.Add(participantID)
	} else {
		changed = c.speakers.Remove(participantID)
	}
	if changed {
		c.bus.Publish(voice.SpeakingEvent(participantID, speaking))
	}
}

// onAllSilent applies the idle policy: leave voice and stay out until the
// room or the participant count changes or the user acts.
func (c *Controller) onAllSilent() {
	c.bus.Publish(voice.Event{Kind: voice.EventAllSilent})
	gen := c.mgr.Generation()

	c.spawn(func() {
		if c.mgr.Generation() != gen {
			return
		}
		c.mu.Lock()
		c.manual = false
		c.suppressed = true
		c.mic = false
		c.mu.Unlock()

		ctx := context.Background()
		silenceTeardowns.Add(ctx, 1)
		c.logger.Info("everyone silent, leaving voice")
		c.mgr.Disconnect(ctx)
	})
}
