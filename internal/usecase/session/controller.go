// Package session owns the browser session lifecycle for one login
// attempt: acquire a headless browser, drive the host's login hook, and
// release the browser on every exit path.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"login-agent/internal/application/port/input"
	"login-agent/internal/application/port/output"
	"login-agent/internal/domain/entity"
	"login-agent/internal/domain/redact"
	"login-agent/internal/domain/scrapeerr"
)

var _ input.Authenticator = (*Controller)(nil)

// Config tunes controller behavior beyond the browser launch options,
// which live with the BrowserFactory.
type Config struct {
	// CaptureDir, when non-empty, is where a diagnostic screenshot is
	// written if the login hook fails.
	CaptureDir string
}

// Controller runs exactly one login attempt per AuthenticateAndSetup
// call. A controller supports at most one in-flight attempt; a concurrent
// second call fails with ErrAttemptInProgress rather than sharing the
// browser.
type Controller struct {
	creds   entity.Credentials
	factory output.BrowserFactory
	log     output.Logger
	cfg     Config
	busy    atomic.Bool
}

// New validates the credentials and builds a controller. A blank email or
// secret is rejected with a ValidationError naming the field.
func New(email, secret string, factory output.BrowserFactory, log output.Logger, cfg Config) (*Controller, error) {
	creds, err := entity.NewCredentials(email, secret)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, &scrapeerr.ValidationError{Field: "factory"}
	}
	if log == nil {
		return nil, &scrapeerr.ValidationError{Field: "log"}
	}
	return &Controller{creds: creds, factory: factory, log: log, cfg: cfg}, nil
}

// AuthenticateAndSetup acquires a browser session, invokes the hook, and
// releases the session exactly once before returning — on success, on a
// classified failure, and on a panic inside the hook. A release error
// never masks an in-flight failure; it is logged instead. When release is
// the only failure it surfaces to the caller.
func (c *Controller) AuthenticateAndSetup(ctx context.Context, hook input.LoginHook) (outcome *entity.Outcome, err error) {
	if hook == nil {
		return nil, &scrapeerr.ValidationError{Field: "hook"}
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, scrapeerr.ErrAttemptInProgress
	}
	defer c.busy.Store(false)

	attemptID := uuid.NewString()
	log := c.log.With(
		"attempt_id", attemptID,
		"host", hook.Host(),
		"email", redact.MaskEmail(c.creds.Email),
	)

	log.Info("session starting")
	handle, err := c.factory.NewSession(ctx)
	if err != nil {
		log.Error("browser acquisition failed", "error", err.Error())
		return nil, fmt.Errorf("acquire browser session: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("login hook for %s panicked: %v", hook.Host(), r)
			log.Error("login hook panicked", "panic", fmt.Sprint(r))
		}
		if relErr := handle.Close(); relErr != nil {
			if err != nil {
				// The original failure takes precedence.
				log.Error("session release failed after prior error",
					"release_error", relErr.Error(), "error", err.Error())
			} else {
				outcome = nil
				err = fmt.Errorf("release browser session: %w", relErr)
				log.Error("session release failed", "error", relErr.Error())
			}
		} else {
			log.Info("session released")
		}
		if err != nil {
			log.Error("authentication failed", "error", err.Error())
		} else {
			log.Info("authentication succeeded")
		}
	}()

	log.Info("invoking login hook")
	outcome, err = hook.Login(ctx, handle, c.creds)
	if err != nil {
		c.captureFailure(ctx, handle, log, attemptID)
		return nil, err
	}
	if outcome == nil {
		outcome = &entity.Outcome{}
	}
	if outcome.Host == "" {
		outcome.Host = hook.Host()
	}
	return outcome, nil
}

// captureFailure writes a screenshot of the page the hook failed on. Best
// effort: capture problems are logged, never propagated.
func (c *Controller) captureFailure(ctx context.Context, handle output.BrowserSession, log output.Logger, attemptID string) {
	if c.cfg.CaptureDir == "" {
		return
	}
	img, err := handle.Screenshot(ctx)
	if err != nil {
		log.Warn("failure screenshot not captured", "error", err.Error())
		return
	}
	if err := os.MkdirAll(c.cfg.CaptureDir, 0o755); err != nil {
		log.Warn("failure screenshot dir not created", "error", err.Error())
		return
	}
	name := fmt.Sprintf("failure_%s_%s.jpg", time.Now().Format("2006-01-02_15-04-05"), attemptID)
	path := filepath.Join(c.cfg.CaptureDir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		log.Warn("failure screenshot not written", "error", err.Error())
		return
	}
	log.Info("failure screenshot written", "path", path)
}
