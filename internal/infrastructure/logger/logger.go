// Package logger implements the structured logging port on top of zap,
// appending JSON lines to a file. No global logger state: the adapter is
// constructed once and injected.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"login-agent/internal/application/port/output"
)

// DefaultPath is where log lines go when no override is configured.
const DefaultPath = "logs/login-agent.log"

var _ output.Logger = (*Adapter)(nil)

// Options configures the file sink and verbosity.
type Options struct {
	// Path of the append-only log file. Empty means DefaultPath. The
	// parent directory is created on demand.
	Path string
	// Debug lowers the level from info to debug.
	Debug bool
}

// Adapter wraps a sugared zap logger bound to one log file.
type Adapter struct {
	log  *zap.SugaredLogger
	file *os.File
}

// New opens (or creates) the log file and builds the adapter.
func New(opts Options) (*Adapter, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level)

	return &Adapter{
		log:  zap.New(core).Sugar(),
		file: file,
	}, nil
}

// NewNop returns an adapter that discards everything. For tests.
func NewNop() *Adapter {
	return &Adapter{log: zap.NewNop().Sugar()}
}

func (a *Adapter) Debug(msg string, args ...any) { a.log.Debugw(msg, args...) }
func (a *Adapter) Info(msg string, args ...any)  { a.log.Infow(msg, args...) }
func (a *Adapter) Warn(msg string, args ...any)  { a.log.Warnw(msg, args...) }
func (a *Adapter) Error(msg string, args ...any) { a.log.Errorw(msg, args...) }

// With returns a child adapter sharing the file; only the root adapter
// should be closed.
func (a *Adapter) With(args ...any) output.Logger {
	return &Adapter{log: a.log.With(args...), file: a.file}
}

func (a *Adapter) Close() error {
	_ = a.log.Sync()
	if a.file == nil {
		return nil
	}
	return a.file.Close()
}
