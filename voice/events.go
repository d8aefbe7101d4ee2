package voice

type EventKind int

const (
	EventStatus EventKind = iota
	EventSpeaking
	EventError
	EventAllSilent
	EventAutoMuted
)

var eventKindNames = [...]string{
	EventStatus:    "status",
	EventSpeaking:  "speaking",
	EventError:     "error",
	EventAllSilent: "allSilent",
	EventAutoMuted: "autoMuted",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is one entry of the ordered event stream.
type Event struct {
	Kind          EventKind
	Status        ConnectionStatus
	ParticipantID string
	Speaking      bool
	Err           error
}

func StatusEvent(s ConnectionStatus) Event {
	return Event{Kind: EventStatus, Status: s}
}

func SpeakingEvent(participantID string, speaking bool) Event {
	return Event{Kind: EventSpeaking, ParticipantID: participantID, Speaking: speaking}
}

func ErrorEvent(err error) Event {
	return Event{Kind: EventError, Err: err}
}

// Dispatch invokes the member of cb matching e.
func (e Event) Dispatch(cb *Callbacks) {
	if cb == nil {
		return
	}
	switch e.Kind {
	case EventStatus:
		if cb.OnConnectionStatusChange != nil {
			cb.OnConnectionStatusChange(e.Status)
		}
	case EventSpeaking:
		if cb.OnParticipantSpeaking != nil {
			cb.OnParticipantSpeaking(e.ParticipantID, e.Speaking)
		}
	case EventError:
		if cb.OnError != nil {
			cb.OnError(e.Err)
		}
	case EventAllSilent:
		if cb.OnAllSilent != nil {
			cb.OnAllSilent()
		}
	case EventAutoMuted:
		if cb.OnAutoMuted != nil {
			cb.OnAutoMuted()
		}
	}
}
