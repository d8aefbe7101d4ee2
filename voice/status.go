package voice

import (
	"fmt"
	"time"
)

type ConnectionStatus int

const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
	StatusReconnecting
	StatusError
)

var statusNames = [...]string{
	StatusDisconnected: "disconnected",
	StatusConnecting:   "connecting",
	StatusConnected:    "connected",
	StatusReconnecting: "reconnecting",
	StatusError:        "error",
}

func (s ConnectionStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("ConnectionStatus(%d)", int(s))
	}
	return statusNames[s]
}

func (s ConnectionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Live reports whether a connection is open or being opened.
func (s ConnectionStatus) Live() bool {
	return s == StatusConnecting || s == StatusConnected || s == StatusReconnecting
}

type AppState string

const (
	AppStateForeground AppState = "foreground"
	AppStateBackground AppState = "background"
	AppStateInactive   AppState = "inactive"
)

type SilencePreset string

const (
	SilenceAggressive SilencePreset = "aggressive"
	SilenceBalanced   SilencePreset = "balanced"
	SilenceRelaxed    SilencePreset = "relaxed"
	SilenceNever      SilencePreset = "never"
)

var silencePresets = map[SilencePreset]time.Duration{
	SilenceAggressive: 30 * time.Second,
	SilenceBalanced:   2 * time.Minute,
	SilenceRelaxed:    5 * time.Minute,
	SilenceNever:      0,
}

// DefaultSilenceTimeout is the aggressive preset.
const DefaultSilenceTimeout = 30 * time.Second

// Timeout returns the preset's duration; 0 means never disconnect.
func (p SilencePreset) Timeout() (time.Duration, bool) {
	d, ok := silencePresets[p]
	return d, ok
}
