// Package logging builds the two log streams the service writes: an
// activity stream for user-facing audit lines and an internal stream for
// diagnostics. Both are size-rotated files.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ActivityFile = "user_activity.log"
	InternalFile = "internal_activity.log"
)

type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	// Console mirrors the internal stream to stderr.
	Console bool
}

type Loggers struct {
	Activity *zap.Logger
	Internal *zap.Logger
}

func New(opts Options) (*Loggers, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", opts.Dir, err)
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())

	activityCore := zapcore.NewCore(enc, rotating(opts, ActivityFile), zapcore.InfoLevel)

	internalCore := zapcore.NewCore(enc, rotating(opts, InternalFile), zapcore.DebugLevel)
	if opts.Console {
		internalCore = zapcore.NewTee(
			internalCore,
			zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.InfoLevel),
		)
	}

	return &Loggers{
		Activity: zap.New(activityCore).Named("user_activity"),
		Internal: zap.New(internalCore, zap.AddCaller()).Named("internal_activity"),
	}, nil
}

// NewNop discards everything.
func NewNop() *Loggers {
	return &Loggers{
		Activity: zap.NewNop(),
		Internal: zap.NewNop(),
	}
}

func (l *Loggers) Sync() {
	_ = l.Activity.Sync()
	_ = l.Internal.Sync()
}

func rotating(opts Options, name string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, name),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	})
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
