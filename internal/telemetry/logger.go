package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions selects level, encoding and destination of the logger.
type LogOptions struct {
	Level  string // debug, info, warn, error
	Format string // "json" or "console"
	File   string // empty writes to stderr
}

// NewLogger builds a zap logger. The terminal belongs to the game screen
// while it runs, so callers normally point File at a log file.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.EncoderConfig.ConsoleSeparator = "  "
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("run", runID)), nil
}
