package rtc

import (
	"context"
	"sync"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/pion/webrtc/v4"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/voice"
)

const (
	ErrDial     errors.Code = "livekit dial failed"
	ErrTeardown errors.Code = "livekit teardown incomplete"
	ErrPublish  errors.Code = "microphone publish failed"
)

// Dialer opens LiveKit rooms.
type Dialer struct {
	cfg    *Config
	logger *log.Logger
}

func NewDialer(cfg *Config, logger *log.Logger) *Dialer {
	if logger == nil {
		panic("logger is required")
	}
	return &Dialer{cfg: cfg, logger: logger}
}

type dialResult struct {
	room *lksdk.Room
	err  error
}

// Connect joins the room the token grants. The SDK handshake cannot be
// interrupted; when ctx ends first the room is closed as soon as it is up.
func (d *Dialer) Connect(
	ctx context.Context,
	serverURL, token string,
	events voice.TransportEvents,
) (voice.Connection, error) {
	if d.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.DialTimeout)
		defer cancel()
	}

	b := newBridge(events)
	done := make(chan dialResult, 1)
	go func() {
		room, err := lksdk.ConnectToRoomWithToken(serverURL, token, b.roomCallback(),
			lksdk.WithAutoSubscribe(d.cfg.AutoSubscribe))
		done <- dialResult{room: room, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, errors.Wrap(ErrDial, res.err, "connect to room")
		}
		d.logger.Info("room joined",
			log.String("url", serverURL),
			log.String("room", res.room.Name()),
			log.String("identity", res.room.LocalParticipant.Identity()))
		return &connection{room: res.room, bridge: b, trackName: d.cfg.TrackName, logger: d.logger}, nil

	case <-ctx.Done():
		b.closing.Store(true)
		go func() {
			if res := <-done; res.room != nil {
				d.logger.Debug("closing room joined after cancel")
				res.room.Disconnect()
			}
		}()
		return nil, errors.Wrap(ErrDial, ctx.Err(), "connect to room")
	}
}

type connection struct {
	room      *lksdk.Room
	bridge    *bridge
	trackName string
	logger    *log.Logger

	mu  sync.Mutex
	pub *lksdk.LocalTrackPublication
}

// SetMicrophoneEnabled publishes the microphone track on first enable and
// mutes or unmutes that publication afterwards.
func (c *connection) SetMicrophoneEnabled(_ context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pub == nil {
		if !enabled {
			return nil
		}
		pub, err := c.publishMicrophone()
		if err != nil {
			return err
		}
		c.pub = pub
	}
	c.pub.SetMuted(!enabled)
	return nil
}

func (c *connection) publishMicrophone() (*lksdk.LocalTrackPublication, error) {
	track, err := lksdk.NewLocalTrack(webrtc.RTPCodecCapability{
		MimeType:  webrtc.MimeTypeOpus,
		ClockRate: 48000,
		Channels:  2,
	})
	if err != nil {
		return nil, errors.Wrap(ErrPublish, err, "create microphone track")
	}
	pub, err := c.room.LocalParticipant.PublishTrack(track, &lksdk.TrackPublicationOptions{
		Name:   c.trackName,
		Source: livekit.TrackSource_MICROPHONE,
	})
	if err != nil {
		return nil, errors.Wrap(ErrPublish, err, "publish microphone track")
	}
	c.logger.Debug("microphone published", log.String("track", pub.SID()))
	return pub, nil
}

func (c *connection) IsAnyRemoteUnmuted() bool {
	for _, rp := range c.room.GetRemoteParticipants() {
		for _, pub := range rp.TrackPublications() {
			if pub.Kind() == lksdk.TrackKindAudio && !pub.IsMuted() {
				return true
			}
		}
	}
	return false
}

// Disconnect leaves the room and waits for the SDK to release the peer
// connections, or for ctx.
func (c *connection) Disconnect(ctx context.Context) error {
	c.bridge.closing.Store(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.room.Disconnect()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ErrTeardown, ctx.Err(), "leave room")
	}
}
