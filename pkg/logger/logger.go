package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Init builds the process logger. "production" gets JSON at info level,
// anything else a colored console logger at debug level.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	}
	if err != nil {
		l = zap.NewExample()
	}

	mu.Lock()
	log = l.Sugar().With("env", environment)
	mu.Unlock()
}

// Set replaces the process logger. Used by tests to capture output.
func Set(l *zap.Logger) {
	mu.Lock()
	log = l.Sugar()
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, keysAndValues ...any) {
	current().Debugw(msg, normalize(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	current().Infow(msg, normalize(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	current().Warnw(msg, normalize(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	current().Errorw(msg, normalize(keysAndValues)...)
}

func Fatal(msg string, keysAndValues ...any) {
	current().Fatalw(msg, normalize(keysAndValues)...)
}

func Sync() {
	_ = current().Sync()
}

// normalize lets callers pass a bare error as the only argument.
func normalize(kv []any) []any {
	if len(kv) == 1 {
		if err, ok := kv[0].(error); ok {
			return []any{"error", err}
		}
		return []any{"detail", kv[0]}
	}
	return kv
}
