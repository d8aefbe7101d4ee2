package lifecycle

import "context"

// StaticPermissions answers the microphone prompt from configuration, for
// hosts without an interactive permission system.
type StaticPermissions struct {
	granted bool
}

func NewStaticPermissions(cfg *Config) *StaticPermissions {
	return &StaticPermissions{granted: cfg.MicPermission != PermissionDenied}
}

func (p *StaticPermissions) RequestMicrophone(_ context.Context) (bool, error) {
	return p.granted, nil
}
