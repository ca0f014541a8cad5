package logger

import (
	"fmt"
	"os"
	"strings"

	"signlearn_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log starts as a no-op so packages can log before InitLogger runs.
var Log = zap.NewNop()

// level is shared by every core InitLogger builds, so ApplyConfig takes effect
// without rebuilding the logger.
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// ParseLevel resolves the configured level. An empty name means debug in
// debug mode and info otherwise.
func ParseLevel(name, mode string) (zapcore.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if mode == "debug" {
			return zap.DebugLevel, nil
		}
		return zap.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return l, nil
}

// New builds a logger writing JSON to the rotated file in cfg and, when
// cfg.Console is set, human-readable lines to stdout.
func New(cfg config.LogConfig, lvl zap.AtomicLevel) *zap.Logger {
	var cores []zapcore.Core
	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, lvl))
	}
	if cfg.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), lvl))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).Named("signlearn")
}

func InitLogger(cfg *config.Config) error {
	if err := ApplyConfig(cfg); err != nil {
		return err
	}
	Log = New(cfg.Log, level)
	return nil
}

// ApplyConfig moves the running logger to the level in cfg. Output settings
// need a restart.
func ApplyConfig(cfg *config.Config) error {
	l, err := ParseLevel(cfg.Log.Level, cfg.Server.Mode)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// Enabled reports whether the process logger currently emits lvl.
func Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl)
}
