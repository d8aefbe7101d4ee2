package log

import (
	"encoding/json"
	//nolint:depguard
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

const rootName = "voicelink"

// for init only
func Fatal(v ...any) {
	log.Fatal(v...)
}

// Logger is a zap logger that knows its module path.
type Logger struct {
	*zap.Logger
	names []string
	build func(names []string) *zap.Logger
}

// Module returns a child logger for name. Its level comes from the most
// specific LOG_LEVEL__ key matching the module path.
func (l *Logger) Module(name string) *Logger {
	names := append(append([]string(nil), l.names...), name)
	return &Logger{
		Logger: l.build(names),
		names:  names,
		build:  l.build,
	}
}

// NewLogger builds the process logger. An empty configFile selects stderr
// output with per-module env levels, console or JSON per LOG_FORMAT;
// otherwise the file holds a JSON zap.Config.
func NewLogger(configFile string) (*Logger, error) {
	if configFile == "" {
		return newEnvLogger(), nil
	}
	return loadLoggerFromFile(configFile)
}

func loadLoggerFromFile(configFile string) (*Logger, error) {
	bs, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrap(err, "read log config")
	}

	var cfg zap.Config
	if err := json.Unmarshal(bs, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse log config %s", configFile)
	}
	base, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	return &Logger{
		Logger: base.Named(rootName),
		build: func(names []string) *zap.Logger {
			return base.Named(strings.Join(names, "."))
		},
	}, nil
}

func newEncoder() zapcore.Encoder {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if jsonOutput() {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encCfg)
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + name + "]")
	}
	return zapcore.NewConsoleEncoder(encCfg)
}

func newEnvLogger() *Logger {
	encoder := newEncoder()
	sink := zapcore.Lock(os.Stderr)

	at := func(level zapcore.Level) *zap.Logger {
		core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
		return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel))
	}

	return &Logger{
		Logger: at(moduleLevel(nil)).Named(rootName),
		build: func(names []string) *zap.Logger {
			return at(moduleLevel(names)).Named(strings.Join(names, "."))
		},
	}
}

// NewTest routes log output through t so it only shows for failing tests.
func NewTest(t zaptest.TestingT) *Logger {
	base := zaptest.NewLogger(t)
	return &Logger{
		Logger: base,
		build: func(names []string) *zap.Logger {
			return base.Named(strings.Join(names, "."))
		},
	}
}

func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{
		Logger: base,
		build:  func([]string) *zap.Logger { return base },
	}
}
