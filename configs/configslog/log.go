package configslog

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the structured logger used for errors and field-rich entries.
	Log *zap.Logger
	// SLog is the sugared logger used for progress messages.
	SLog *zap.SugaredLogger
)

func init() {
	// Usable before InitLogger runs (tests, tooling).
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger configures the global loggers. Call it after the config (and
// .env) has been loaded.
func InitLogger(level, format string) {
	logger, err := NewLogger(level, format)
	if err != nil {
		logger = zap.NewExample()
		logger.Warn("Logger configuration failed, falling back to example logger", zap.Error(err))
	}
	Log = logger
	SLog = logger.Sugar()
}

// NewLogger builds a logger for the given level ("debug", "info", "warn",
// "error") and format ("json" or "console"). Unknown values fall back to info/json.
func NewLogger(level, format string) (*zap.Logger, error) {
	zapLevel := zapcore.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if strings.ToLower(format) == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service_name", "luax-health")), nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
