package logging

import (
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	fileRotationTime = 24 * time.Hour
	fileMaxAge       = 7 * 24 * time.Hour
)

type Config struct {
	Level string
	Dev   bool
	// Output defaults to stderr so command output on stdout stays clean.
	Output io.Writer
	// File, when set, also writes JSON lines to a daily rotated file. File
	// itself becomes a symlink to the current segment.
	File string
}

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// New builds a console logger in dev mode and a JSON logger otherwise. The
// returned close func flushes the logger and releases the log file.
func New(cfg Config) (*zap.Logger, func() error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	lvl := levelFromString(cfg.Level)

	var enc zapcore.Encoder
	if cfg.Dev {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		enc = jsonEncoder()
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(out), lvl)

	var (
		file    *rotatelogs.RotateLogs
		fileErr error
	)
	if cfg.File != "" {
		file, fileErr = newRotatingFile(cfg.File)
		if fileErr == nil {
			core = zapcore.NewTee(core, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(file), lvl))
		}
	}
	lg := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if fileErr != nil {
		lg.Warn("log file disabled", zap.String("file", cfg.File), zap.Error(fileErr))
	}
	closeFn := func() error {
		// Sync on a terminal stderr fails with EINVAL; only the file matters.
		_ = lg.Sync()
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return lg, closeFn
}

func jsonEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}

func newRotatingFile(path string) (*rotatelogs.RotateLogs, error) {
	return rotatelogs.New(
		path+".%Y%m%d",
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(fileRotationTime),
		rotatelogs.WithMaxAge(fileMaxAge),
	)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
