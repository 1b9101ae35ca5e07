package utils

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// Logger returns the process logger: JSON to stdout, also appended to
// LOG_FILE when it is set. LOG_LEVEL picks the minimum level (default info).
func Logger() *zap.Logger {
	once.Do(func() { logger = New(os.Getenv("LOG_FILE"), os.Getenv("LOG_LEVEL")) })
	return logger
}

func New(logFile, level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.Set(level); err != nil {
			lvl = zapcore.InfoLevel
		}
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
	if logFile == "" {
		return zap.New(consoleCore)
	}
	_ = os.MkdirAll(filepath.Dir(logFile), 0o755)
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.New(consoleCore)
	}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
	return zap.New(zapcore.NewTee(fileCore, consoleCore))
}
