package voice

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/imtaco/voicelink/voice TokenSource,SessionManager,Controller,AuthStore,Permissions,AudioSession

// TokenSource hands out room credentials, cache first.
type TokenSource interface {
	Token(ctx context.Context, roomID string) (tok Token, fromCache bool, err error)
	Invalidate()
}

// AuthStore holds the signed-in user's backend session.
type AuthStore interface {
	SetAuthToken(authToken string)
	Clear()
	AuthToken(ctx context.Context) (string, error)
}

// Transport opens connections to the media server.
type Transport interface {
	Connect(ctx context.Context, serverURL, token string, events TransportEvents) (Connection, error)
}

// Connection is one open room connection. Disconnect returns once every
// resource the connection holds has been released.
type Connection interface {
	SetMicrophoneEnabled(ctx context.Context, enabled bool) error
	IsAnyRemoteUnmuted() bool
	Disconnect(ctx context.Context) error
}

// TransportEvents receives the transport's own event stream. Calls may come
// from any goroutine.
type TransportEvents interface {
	OnReconnecting()
	OnReconnected()
	OnDisconnected(reason string)
	OnParticipantConnected(identity string)
	OnParticipantDisconnected(identity string)
	OnActiveSpeakersChanged(identities []string)
	OnMicrophoneMuted(identity string, muted bool)
}

// Permissions is the platform permission prompt.
type Permissions interface {
	RequestMicrophone(ctx context.Context) (granted bool, err error)
}

// AudioSession is the device audio session (route, focus, ducking).
type AudioSession interface {
	Activate(ctx context.Context) error
	Release(ctx context.Context) error
}

// SessionManager owns the single live connection.
type SessionManager interface {
	Connect(ctx context.Context, roomID string, micEnabled bool) bool
	Disconnect(ctx context.Context)
	SetMicrophoneEnabled(ctx context.Context, enabled bool) bool
	IsAnyoneUnmuted() bool
	Status() ConnectionStatus
	RoomID() string
	MicrophoneEnabled() bool
	Generation() uint64
	SetCallbacks(cb Callbacks)
	SetSilenceTimeout(d time.Duration)
	Close()
}

// Controller is the application-facing surface: it decides when to connect
// and disconnect from room, participant and app-state input.
type Controller interface {
	Update(ctx context.Context, roomID string, participantCount int)
	Connect(ctx context.Context, roomID string) bool
	Disconnect(ctx context.Context)
	Unmute(ctx context.Context) bool
	Mute(ctx context.Context)
	SetAppState(ctx context.Context, state AppState)
	SetSilenceTimeout(d time.Duration)
	IsParticipantSpeaking(participantID string) bool
	IsMicrophoneEnabled() bool
	ConnectionStatus() ConnectionStatus
	Snapshot() Snapshot
	SetCallbacks(cb Callbacks)
}

// Callbacks is the single event registration. Nil members are skipped.
type Callbacks struct {
	OnConnectionStatusChange func(status ConnectionStatus)
	OnParticipantSpeaking    func(participantID string, speaking bool)
	OnError                  func(err error)
	OnAllSilent              func()
	OnAutoMuted              func()
}

// Token is a room credential issued by the backend.
type Token struct {
	Token     string    `json:"token"`
	ServerURL string    `json:"serverUrl"`
	RoomID    string    `json:"roomId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ValidFor reports whether the token can be used to join roomID at now.
func (t *Token) ValidFor(roomID string, now time.Time) bool {
	return t != nil && t.RoomID == roomID && now.Before(t.ExpiresAt)
}

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	Status            ConnectionStatus `json:"status"`
	RoomID            string           `json:"roomId"`
	DesiredRoomID     string           `json:"desiredRoomId"`
	ParticipantCount  int              `json:"participantCount"`
	MicrophoneEnabled bool             `json:"microphoneEnabled"`
	Manual            bool             `json:"manual"`
	AppState          AppState         `json:"appState"`
	Speaking          []string         `json:"speaking"`
	Generation        uint64           `json:"generation"`
}
