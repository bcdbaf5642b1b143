// Package di wires the logger, browser factory and session controller.
package di

import (
	"path/filepath"
	"time"

	"login-agent/internal/application/port/input"
	"login-agent/internal/application/port/output"
	"login-agent/internal/infrastructure/browser/rod"
	"login-agent/internal/infrastructure/logger"
	"login-agent/internal/usecase/session"
)

// Options is the recognized configuration surface. Every field has a
// documented effect; there is nothing to ignore or reject.
type Options struct {
	// Headless runs the browser without a visible window.
	Headless bool
	// WindowWidth / WindowHeight set the initial viewport.
	WindowWidth  int
	WindowHeight int
	// ImplicitWait bounds element lookups inside the browser.
	ImplicitWait time.Duration
	// LogPath overrides the default log file location.
	LogPath string
	// CaptureOnFailure writes a screenshot next to the log file when the
	// login hook fails.
	CaptureOnFailure bool
	// Debug lowers the log level.
	Debug bool
}

func DefaultOptions() Options {
	return Options{
		Headless:     true,
		ImplicitWait: 10 * time.Second,
		LogPath:      logger.DefaultPath,
	}
}

type Container struct {
	Logger        output.Logger
	Browser       output.BrowserFactory
	Authenticator input.Authenticator
}

// NewContainer validates the credentials and builds the full stack. The
// caller owns Close.
func NewContainer(email, secret string, opts Options) (*Container, error) {
	logPath := opts.LogPath
	if logPath == "" {
		logPath = logger.DefaultPath
	}
	log, err := logger.New(logger.Options{Path: logPath, Debug: opts.Debug})
	if err != nil {
		return nil, err
	}

	factory := rod.NewFactory(rod.Config{
		Headless:     opts.Headless,
		WindowWidth:  opts.WindowWidth,
		WindowHeight: opts.WindowHeight,
		ImplicitWait: opts.ImplicitWait,
		NoSandbox:    true,
	})

	var captureDir string
	if opts.CaptureOnFailure {
		captureDir = filepath.Dir(logPath)
	}

	ctrl, err := session.New(email, secret, factory, log, session.Config{CaptureDir: captureDir})
	if err != nil {
		log.Close()
		return nil, err
	}

	return &Container{
		Logger:        log,
		Browser:       factory,
		Authenticator: ctrl,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
