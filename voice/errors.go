package voice

import "github.com/imtaco/voicelink/internal/errors"

const (
	// ErrAuth means there is no valid signed-in session. Never retried.
	ErrAuth errors.Code = "not authenticated"
	// ErrTokenIssue means the backend failed to issue a room token.
	ErrTokenIssue errors.Code = "token issue failed"
	// ErrTransportConnect means the media server could not be reached or refused the join.
	ErrTransportConnect errors.Code = "transport connect failed"
	// ErrPermissionDenied means the user refused microphone access.
	ErrPermissionDenied errors.Code = "microphone permission denied"
	// ErrMicrophone means the local microphone track could not be toggled.
	ErrMicrophone errors.Code = "microphone toggle failed"
)
