// Package rod implements the BrowserSession port with go-rod driving a
// headless Chrome instance.
package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"login-agent/internal/application/port/output"
	"login-agent/internal/domain/scrapeerr"
	"login-agent/internal/infrastructure/browser/rodwrapper"
)

const (
	defaultImplicitWait = 10 * time.Second
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800

	// Matching what the hosts see from a regular desktop Chrome.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/113.0.0.0 Safari/537.36"

	screenshotMaxWidth = 1280
	screenshotQuality  = 80

	stealthJS = "Object.defineProperty(navigator, 'webdriver', {get: () => undefined})"
)

var (
	ErrSessionClosed   = errors.New("browser session already closed")
	ErrInvalidSelector = errors.New("selector must not be empty")
)

var _ output.BrowserSession = (*Session)(nil)
var _ output.BrowserFactory = (*Factory)(nil)

// Config holds the recognized browser launch options.
type Config struct {
	// Headless runs Chrome without a visible window.
	Headless bool
	// WindowWidth and WindowHeight set the initial viewport.
	WindowWidth  int
	WindowHeight int
	// ImplicitWait bounds every element lookup.
	ImplicitWait time.Duration
	// UserAgent overrides the browser user agent. Empty keeps the
	// default desktop Chrome string.
	UserAgent string
	// NoSandbox is needed inside most containers.
	NoSandbox bool
}

// DefaultConfig matches the launch options a host login expects.
func DefaultConfig() Config {
	return Config{
		Headless:     true,
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
		ImplicitWait: defaultImplicitWait,
		UserAgent:    defaultUserAgent,
	}
}

func (c Config) withDefaults() Config {
	if c.WindowWidth <= 0 {
		c.WindowWidth = defaultWindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = defaultWindowHeight
	}
	if c.ImplicitWait <= 0 {
		c.ImplicitWait = defaultImplicitWait
	}
	return c
}

// Factory launches one fresh browser per session.
type Factory struct {
	cfg Config
}

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg.withDefaults()}
}

func (f *Factory) Config() Config { return f.cfg }

func (f *Factory) NewSession(ctx context.Context) (output.BrowserSession, error) {
	return NewSession(ctx, f.cfg)
}

// Session drives one Chrome process through go-rod.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	closed   bool
}

// NewSession launches Chrome with notification and automation banners
// suppressed and opens a blank page.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()

	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Set("disable-notifications").
		Set("disable-infobars").
		Set("no-first-run").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight))

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch: %v", scrapeerr.ErrBrowserUnavailable, err)
	}

	browser := rod.New().ControlURL(url)
	if ctx != nil {
		browser = browser.Context(ctx)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: connect: %v", scrapeerr.ErrBrowserUnavailable, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: open page: %v", scrapeerr.ErrBrowserUnavailable, err)
	}

	if cfg.UserAgent != "" {
		_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent})
	}
	// Hide navigator.webdriver before any host script can look at it.
	_, _ = page.EvalOnNewDocument(stealthJS)

	return &Session{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.ImplicitWait,
	}, nil
}

// IsReady reports whether the session can still serve calls.
func (s *Session) IsReady() bool { return !s.closed }

func (s *Session) Navigate(ctx context.Context, url string) error {
	if s.closed {
		return ErrSessionClosed
	}
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	page.WaitIdle(5 * time.Second)
	return nil
}

func (s *Session) Fill(ctx context.Context, selector, text string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if selector == "" {
		return ErrInvalidSelector
	}
	el, err := s.page.Context(ctx).Timeout(s.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("field not found: %s: %w", selector, err)
	}
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

func (s *Session) Click(ctx context.Context, selector string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if selector == "" {
		return ErrInvalidSelector
	}
	el, err := s.page.Context(ctx).Timeout(s.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	s.page.WaitIdle(2 * time.Second)
	return nil
}

func (s *Session) PressEnter(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	el, err := s.page.Context(ctx).Timeout(s.timeout).Element("body")
	if err != nil {
		return fmt.Errorf("body not found: %w", err)
	}
	if err := el.Input("\r"); err != nil {
		return fmt.Errorf("failed to press enter: %w", err)
	}
	s.page.WaitIdle(1 * time.Second)
	return nil
}

func (s *Session) VisibleText(ctx context.Context) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	body, err := s.page.Context(ctx).Timeout(s.timeout).Element("body")
	if err != nil {
		return "", fmt.Errorf("body not found: %w", err)
	}
	html, err := body.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return rodwrapper.VisibleText(html), nil
}

func (s *Session) ElementExists(ctx context.Context, selector string, timeout time.Duration) bool {
	if s.closed || selector == "" {
		return false
	}
	if timeout <= 0 {
		timeout = s.timeout
	}
	_, err := s.page.Context(ctx).Timeout(timeout).Element(selector)
	return err == nil
}

func (s *Session) Eval(ctx context.Context, js string) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	obj, err := s.page.Context(ctx).Timeout(s.timeout).Eval(js)
	if err != nil {
		return "", fmt.Errorf("eval failed: %w", err)
	}
	return obj.Value.Str(), nil
}

func (s *Session) Cookies(ctx context.Context) (map[string]string, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	cookies, err := s.page.Context(ctx).Cookies(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	result := make(map[string]string, len(cookies))
	for _, c := range cookies {
		result[c.Name] = c.Value
	}
	return result, nil
}

func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	imgBytes, err := s.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(screenshotQuality),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	if img.Bounds().Dx() > screenshotMaxWidth {
		img = imaging.Resize(img, screenshotMaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Session) CurrentURL() string {
	if s.closed {
		return ""
	}
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close terminates the Chrome process and frees launcher resources.
// Safe to call more than once; only the first call does work.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
