package logger

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
	ModeOff         = "off"
)

var (
	logMu sync.RWMutex
	log   *zap.Logger
	sugar *zap.SugaredLogger
	runID = uuid.NewString()
)

// RunID identifies the current process in log lines and metrics.
func RunID() string {
	return runID
}

// Init builds a logger for mode at the given level ("debug", "info", "warn", "error").
// Logs go to stderr so stdout stays free for command output.
func Init(mode, level string) error {
	var cfg zap.Config
	switch mode {
	case ModeOff:
		setLogger(zap.NewNop())
		return nil
	case ModeDevelopment:
		cfg = zap.NewDevelopmentConfig()
	case ModeProduction, "":
		cfg = zap.NewProductionConfig()
	default:
		return fmt.Errorf("unknown log mode %q", mode)
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return err
		}
		cfg.Level = lvl
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	setLogger(l.With(zap.String("run", runID)))
	return nil
}

// InitProduction JSON logger at info level.
func InitProduction() error {
	return Init(ModeProduction, "")
}

// InitDevelopment console logger at debug level.
func InitDevelopment() error {
	return Init(ModeDevelopment, "")
}

// setLogger swaps the package logger and zap's globals, flushing the old one.
func setLogger(l *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	zap.ReplaceGlobals(l)
	if log != nil {
		_ = log.Sync()
	}
	log = l
	sugar = l.Sugar()
}

// Log returns a non-nil *zap.Logger; before Init it is zap's global (a no-op by default).
func Log() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	if log != nil {
		return log
	}
	return zap.L()
}

// S returns a non-nil *zap.SugaredLogger.
func S() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	if sugar != nil {
		return sugar
	}
	return zap.S()
}

// Sync flush logs
func Sync() {
	logMu.RLock()
	defer logMu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}
