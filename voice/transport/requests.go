package transport

type SessionRequest struct {
	AuthToken string `json:"authToken" binding:"required"`
}

// RoomRequest reports the room on screen. An empty RoomID means no room.
type RoomRequest struct {
	RoomID           string `json:"roomId" binding:"omitempty,roomid"`
	ParticipantCount int    `json:"participantCount" binding:"min=0"`
}

type ConnectRequest struct {
	RoomID string `json:"roomId" binding:"omitempty,roomid"`
}

type AppStateRequest struct {
	State string `json:"state" binding:"required,appstate"`
}

// SilenceTimeoutRequest carries either a preset name or a timeout in
// milliseconds; 0 disables the silence teardown.
type SilenceTimeoutRequest struct {
	Preset    string `json:"preset" binding:"omitempty,silencepreset"`
	TimeoutMs *int64 `json:"timeoutMs" binding:"omitempty,min=0"`
}

type SpeakingRequest struct {
	ParticipantID string `uri:"participantId" binding:"required,max=256"`
}
