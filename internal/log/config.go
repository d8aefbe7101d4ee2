package log

import (
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap/zapcore"
)

const (
	envLevel  = "LOG_LEVEL"
	envFormat = "LOG_FORMAT"
)

// swapped by tests
var envFunc = func(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func parseLevel(s string) (zapcore.Level, bool) {
	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(s)); err != nil {
		return zapcore.InfoLevel, false
	}
	return lvl, true
}

// levelKeys lists the env keys consulted for a module path, most specific
// first: ["Lifecycle", "SessionMgr"] gives LOG_LEVEL__LIFECYCLE__SESSION_MGR,
// LOG_LEVEL__LIFECYCLE, LOG_LEVEL.
func levelKeys(names []string) []string {
	keys := make([]string, 0, len(names)+1)
	key := envLevel
	for _, n := range names {
		key += "__" + strcase.ToScreamingSnake(n)
		keys = append(keys, key)
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return append(keys, envLevel)
}

func moduleLevel(names []string) zapcore.Level {
	for _, k := range levelKeys(names) {
		v, ok := envFunc(k)
		if !ok {
			continue
		}
		if lv, ok := parseLevel(v); ok {
			return lv
		}
	}
	return zapcore.InfoLevel
}

// jsonOutput reports whether LOG_FORMAT asks for JSON lines.
func jsonOutput() bool {
	v, _ := envFunc(envFormat)
	return strings.EqualFold(v, "json")
}
