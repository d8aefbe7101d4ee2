package session

import (
	"context"

	"github.com/imtaco/voicelink/internal/log"
	isync "github.com/imtaco/voicelink/internal/sync"
	"github.com/imtaco/voicelink/voice"
)

// listener receives one connection's transport events. It is bound to the
// generation that opened the connection and goes quiet once that connection
// is no longer the live one.
type listener struct {
	m        *Manager
	gen      Generation
	speakers *isync.Set[string]
}

func newListener(m *Manager, gen Generation) *listener {
	return &listener{
		m:        m,
		gen:      gen,
		speakers: isync.NewSet[string](),
	}
}

// liveLocked reports whether this listener's connection is the live one.
func (l *listener) liveLocked() bool {
	return l.m.conn != nil && l.m.connGen == l.gen
}

func (l *listener) OnReconnecting() {
	l.setStatus(voice.StatusReconnecting)
}

// OnReconnected re-arms the silence timer if it expired while the
// connection was recovering.
func (l *listener) OnReconnected() {
	if !l.setStatus(voice.StatusConnected) {
		return
	}
	if !l.m.silence.Armed() {
		l.m.silence.Recheck()
	}
}

func (l *listener) setStatus(s voice.ConnectionStatus) bool {
	m := l.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if !l.liveLocked() {
		return false
	}
	m.logger.Info("transport status", log.Stringer("status", s), log.Gen(l.gen))
	m.setStatusLocked(s)
	return true
}

// OnDisconnected handles a connection the transport gave up on. The
// generation is left alone: no caller asked for this.
func (l *listener) OnDisconnected(reason string) {
	m := l.m
	m.mu.Lock()
	if !l.liveLocked() {
		m.mu.Unlock()
		return
	}
	gen := m.guard.Current()
	m.logger.Warn("transport disconnected",
		log.Room(m.roomID),
		log.Gen(l.gen),
		log.String("reason", reason))

	m.detachLocked()
	m.roomID = ""
	m.setStatusLocked(voice.StatusDisconnected)
	m.mu.Unlock()

	transportDrops.Add(context.Background(), 1)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx := context.Background()
		_ = m.teardown(ctx)
		m.releaseAudio(ctx, gen)
	}()
}

func (l *listener) OnParticipantConnected(identity string) {
	l.m.logger.Debug("participant joined", log.String("participant", identity), log.Gen(l.gen))
}

func (l *listener) OnParticipantDisconnected(identity string) {
	m := l.m
	m.mu.Lock()
	if !l.liveLocked() {
		m.mu.Unlock()
		return
	}
	if l.speakers.Remove(identity) {
		m.bus.Publish(voice.SpeakingEvent(identity, false))
	}
	m.mu.Unlock()

	m.logger.Debug("participant left", log.String("participant", identity), log.Gen(l.gen))
	m.silence.Recheck()
}

func (l *listener) OnActiveSpeakersChanged(identities []string) {
	m := l.m
	m.mu.Lock()
	if !l.liveLocked() {
		m.mu.Unlock()
		return
	}
	added, removed := l.speakers.Replace(identities)
	for _, id := range removed {
		m.bus.Publish(voice.SpeakingEvent(id, false))
	}
	for _, id := range added {
		m.bus.Publish(voice.SpeakingEvent(id, true))
	}
	if len(identities) > 0 {
		m.silence.Touch()
	}
	m.mu.Unlock()
}

func (l *listener) OnMicrophoneMuted(identity string, muted bool) {
	m := l.m
	m.mu.Lock()
	live := l.liveLocked()
	m.mu.Unlock()
	if !live {
		return
	}

	m.logger.Debug("microphone", log.String("participant", identity), log.Bool("muted", muted))
	if muted {
		m.silence.Recheck()
		return
	}
	m.silence.Touch()
}
