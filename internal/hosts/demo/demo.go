// Package demo logs into a conventional email/password dashboard. It is
// the reference LoginHook implementation: navigate to the login form,
// fill credentials, submit, check for a rejection banner, and extract the
// session cookie and auth token.
package demo

import (
	"context"
	"net/http"
	"strings"
	"time"

	"login-agent/internal/application/port/input"
	"login-agent/internal/application/port/output"
	"login-agent/internal/domain/entity"
	"login-agent/internal/domain/scrapeerr"
)

var _ input.LoginHook = (*Hook)(nil)

// Hook describes one form-login dashboard. Selectors default to the
// common #email / #password / submit-button convention.
type Hook struct {
	// Name identifies the host in logs and outcomes.
	Name string
	// LoginURL is the page carrying the login form.
	LoginURL string

	EmailSelector    string
	PasswordSelector string
	SubmitSelector   string

	// SuccessSelector, when set, must appear after submit for the login
	// to count as successful.
	SuccessSelector string
	// FailureText, when set and present in the page text after submit,
	// means the host rejected the credentials.
	FailureText string
	// SettleWait bounds how long to wait for SuccessSelector.
	SettleWait time.Duration

	// TokenScript extracts an auth token from the logged-in page, e.g.
	// from localStorage. Empty skips token extraction.
	TokenScript string
}

// New builds a hook with the default form selectors.
func New(name, loginURL string) *Hook {
	return &Hook{
		Name:             name,
		LoginURL:         loginURL,
		EmailSelector:    "#email",
		PasswordSelector: "#password",
		SubmitSelector:   `button[type="submit"]`,
		SettleWait:       10 * time.Second,
	}
}

func (h *Hook) Host() string { return h.Name }

// Login drives the form flow. Structural surprises become ScrapingErrors;
// a rejection banner becomes an AuthenticationError carrying 401.
func (h *Hook) Login(ctx context.Context, session output.BrowserSession, creds entity.Credentials) (*entity.Outcome, error) {
	if err := scrapeerr.FailIfBlank("login_url", h.LoginURL); err != nil {
		return nil, err
	}

	if err := session.Navigate(ctx, h.LoginURL); err != nil {
		return nil, scrapeerr.NewScrapingError("open login page", err)
	}
	if err := session.Fill(ctx, h.EmailSelector, creds.Email); err != nil {
		return nil, scrapeerr.NewScrapingError("email field", err)
	}
	if err := session.Fill(ctx, h.PasswordSelector, string(creds.Secret)); err != nil {
		return nil, scrapeerr.NewScrapingError("password field", err)
	}
	if err := session.Click(ctx, h.SubmitSelector); err != nil {
		return nil, scrapeerr.NewScrapingError("submit button", err)
	}

	if h.FailureText != "" {
		text, err := session.VisibleText(ctx)
		if err == nil && strings.Contains(text, h.FailureText) {
			return nil, &scrapeerr.AuthenticationError{
				Message: "host rejected credentials",
				Status:  http.StatusUnauthorized,
			}
		}
	}
	if h.SuccessSelector != "" && !session.ElementExists(ctx, h.SuccessSelector, h.SettleWait) {
		return nil, scrapeerr.NewScrapingError("dashboard marker not found after submit", nil)
	}

	outcome := &entity.Outcome{Host: h.Name}
	if h.TokenScript != "" {
		token, err := session.Eval(ctx, h.TokenScript)
		if err != nil {
			return nil, scrapeerr.NewScrapingError("token extraction", err)
		}
		outcome.AuthToken = token
	}
	cookies, err := session.Cookies(ctx)
	if err != nil {
		return nil, scrapeerr.NewScrapingError("cookie extraction", err)
	}
	outcome.Cookies = cookies
	return outcome, nil
}
