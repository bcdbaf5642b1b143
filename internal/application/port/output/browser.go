package output

import (
	"context"
	"time"
)

// BrowserSession is the handle to one live headless browser. It is owned
// exclusively by the session controller for the duration of a single
// authentication attempt; login hooks receive it but must never close or
// replace it.
type BrowserSession interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, selector, text string) error
	Click(ctx context.Context, selector string) error
	PressEnter(ctx context.Context) error

	// VisibleText returns the rendered text of the current page body,
	// stripped of markup. Hooks use it to detect login error banners.
	VisibleText(ctx context.Context) (string, error)
	// ElementExists reports whether selector resolves within timeout.
	ElementExists(ctx context.Context, selector string, timeout time.Duration) bool
	// Eval runs a JS function expression on the page and returns its
	// result as a string.
	Eval(ctx context.Context, js string) (string, error)

	Cookies(ctx context.Context) (map[string]string, error)
	Screenshot(ctx context.Context) ([]byte, error)

	CurrentURL() string

	// Close terminates the underlying browser process and frees its
	// resources. It is idempotent; only the session controller calls it.
	Close() error
}

// BrowserFactory acquires a fresh BrowserSession with the configured
// launch options baked in. One factory may serve many attempts, but each
// session belongs to exactly one.
type BrowserFactory interface {
	NewSession(ctx context.Context) (BrowserSession, error)
}
