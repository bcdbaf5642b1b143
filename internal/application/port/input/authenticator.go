package input

import (
	"context"

	"login-agent/internal/application/port/output"
	"login-agent/internal/domain/entity"
)

// LoginHook is implemented once per host dashboard. It performs the
// host-specific part of an attempt: navigation, form submission, and
// artifact extraction. The session handle is on loan from the controller;
// hooks must not close it.
type LoginHook interface {
	// Host names the dashboard for logs and outcomes.
	Host() string
	Login(ctx context.Context, session output.BrowserSession, creds entity.Credentials) (*entity.Outcome, error)
}

// Authenticator runs exactly one login attempt per call, guaranteeing the
// browser session is released on every exit path.
type Authenticator interface {
	AuthenticateAndSetup(ctx context.Context, hook LoginHook) (*entity.Outcome, error)
}
