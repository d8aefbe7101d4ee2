package rtc

import (
	"fmt"

	lksdk "github.com/livekit/server-sdk-go/v2"
	"go.uber.org/atomic"

	"github.com/imtaco/voicelink/voice"
)

// bridge forwards one room's SDK callbacks to voice.TransportEvents. It goes
// quiet once the connection starts closing so a local disconnect is not
// reported as a drop.
type bridge struct {
	events  voice.TransportEvents
	closing atomic.Bool
}

func newBridge(events voice.TransportEvents) *bridge {
	return &bridge{events: events}
}

func (b *bridge) roomCallback() *lksdk.RoomCallback {
	return &lksdk.RoomCallback{
		ParticipantCallback: lksdk.ParticipantCallback{
			OnTrackMuted: func(pub lksdk.TrackPublication, p lksdk.Participant) {
				b.trackMuted(pub.Kind(), p.Identity(), true)
			},
			OnTrackUnmuted: func(pub lksdk.TrackPublication, p lksdk.Participant) {
				b.trackMuted(pub.Kind(), p.Identity(), false)
			},
		},
		OnDisconnectedWithReason: func(reason lksdk.DisconnectionReason) {
			b.disconnected(fmt.Sprint(reason))
		},
		OnReconnecting: b.reconnecting,
		OnReconnected:  b.reconnected,
		OnParticipantConnected: func(rp *lksdk.RemoteParticipant) {
			b.participantConnected(rp.Identity())
		},
		OnParticipantDisconnected: func(rp *lksdk.RemoteParticipant) {
			b.participantDisconnected(rp.Identity())
		},
		OnActiveSpeakersChanged: func(ps []lksdk.Participant) {
			ids := make([]string, 0, len(ps))
			for _, p := range ps {
				ids = append(ids, p.Identity())
			}
			b.speakersChanged(ids)
		},
	}
}

func (b *bridge) quiet() bool {
	return b.closing.Load()
}

func (b *bridge) reconnecting() {
	if !b.quiet() {
		b.events.OnReconnecting()
	}
}

func (b *bridge) reconnected() {
	if !b.quiet() {
		b.events.OnReconnected()
	}
}

func (b *bridge) disconnected(reason string) {
	if !b.quiet() {
		b.events.OnDisconnected(reason)
	}
}

func (b *bridge) participantConnected(identity string) {
	if !b.quiet() {
		b.events.OnParticipantConnected(identity)
	}
}

func (b *bridge) participantDisconnected(identity string) {
	if !b.quiet() {
		b.events.OnParticipantDisconnected(identity)
	}
}

func (b *bridge) speakersChanged(identities []string) {
	if !b.quiet() {
		b.events.OnActiveSpeakersChanged(identities)
	}
}

// trackMuted reports microphone changes; video and screen tracks are ignored.
func (b *bridge) trackMuted(kind lksdk.TrackKind, identity string, muted bool) {
	if kind != lksdk.TrackKindAudio || b.quiet() {
		return
	}
	b.events.OnMicrophoneMuted(identity, muted)
}
