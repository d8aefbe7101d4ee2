package log

import (
	"time"

	"go.uber.org/zap"
)

// Field is an alias for zap.Field to avoid importing zap in other packages.
type Field = zap.Field

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

func String(key string, val string) Field {
	return zap.String(key, val)
}

func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}

// Stringer logs enum-like values (statuses, app states) by their String form.
func Stringer(key string, val interface{ String() string }) Field {
	return zap.Stringer(key, val)
}

func Error(err error) Field {
	return zap.Error(err)
}

func Any(key string, val any) Field {
	return zap.Any(key, val)
}

func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

func Time(key string, val time.Time) Field {
	return zap.Time(key, val)
}

// Room and Gen are the two fields nearly every session log line carries.
func Room(roomID string) Field {
	return zap.String("roomId", roomID)
}

func Gen(gen uint64) Field {
	return zap.Uint64("gen", gen)
}
