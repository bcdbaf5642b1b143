package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"login-agent/internal/domain/scrapeerr"
	"login-agent/internal/hosts/demo"
	"login-agent/internal/infrastructure/browser/rod"
	"login-agent/internal/infrastructure/logger"
	"login-agent/internal/usecase/session"
)

// dashboardHTML is a self-contained login form: correct credentials set a
// token in localStorage, a cookie, and reveal the dashboard; anything
// else shows a rejection banner.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head><title>Demo Dashboard</title></head>
<body>
	<form id="loginForm">
		<input id="email" type="email" />
		<input id="password" type="password" />
		<button type="submit">Sign in</button>
	</form>
	<div id="message"></div>
	<script>
		document.getElementById('loginForm').addEventListener('submit', function(e) {
			e.preventDefault();
			var email = document.getElementById('email').value;
			var password = document.getElementById('password').value;
			if (email === 'jo@example.com' && password === 's3cret') {
				window.localStorage.setItem('auth_token', 'tok-abc123');
				document.cookie = 'sid=session-xyz';
				var dash = document.createElement('div');
				dash.id = 'dashboard';
				dash.textContent = 'Welcome back';
				document.body.appendChild(dash);
			} else {
				document.getElementById('message').textContent = 'Invalid credentials';
			}
		});
	</script>
</body>
</html>`

func newDashboardServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, dashboardHTML)
	}))
}

func newHook(loginURL string) *demo.Hook {
	hook := demo.New("demo-dashboard", loginURL)
	hook.SuccessSelector = "#dashboard"
	hook.FailureText = "Invalid credentials"
	hook.SettleWait = 5 * time.Second
	hook.TokenScript = `() => window.localStorage.getItem("auth_token") || ""`
	return hook
}

func newController(t *testing.T, email, secret, logPath string) *session.Controller {
	t.Helper()

	log, err := logger.New(logger.Options{Path: logPath})
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	factory := rod.NewFactory(rod.Config{
		Headless:     true,
		NoSandbox:    true,
		ImplicitWait: 5 * time.Second,
	})

	ctrl, err := session.New(email, secret, factory, log, session.Config{})
	require.NoError(t, err)
	return ctrl
}

func TestLoginFlow_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser integration test in short mode")
	}

	server := newDashboardServer()
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "login-agent.log")
	ctrl := newController(t, "jo@example.com", "s3cret", logPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	outcome, err := ctrl.AuthenticateAndSetup(ctx, newHook(server.URL))
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, "demo-dashboard", outcome.Host)
	assert.Equal(t, "tok-abc123", outcome.AuthToken)
	assert.Equal(t, "session-xyz", outcome.Cookies["sid"])

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "jo***@example.com")
	assert.False(t, strings.Contains(content, "s3cret"), "raw secret must never be logged")
}

func TestLoginFlow_RejectedCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser integration test in short mode")
	}

	server := newDashboardServer()
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "login-agent.log")
	ctrl := newController(t, "jo@example.com", "wrong-password", logPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	outcome, err := ctrl.AuthenticateAndSetup(ctx, newHook(server.URL))
	require.Error(t, err)
	assert.Nil(t, outcome)

	var aerr *scrapeerr.AuthenticationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.StatusUnauthorized, aerr.Status)
}

func TestLoginFlow_MissingForm(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser integration test in short mode")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html><html><body><p>Maintenance</p></body></html>`)
	}))
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "login-agent.log")
	ctrl := newController(t, "jo@example.com", "s3cret", logPath)

	factoryCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	hook := newHook(server.URL)
	_, err := ctrl.AuthenticateAndSetup(factoryCtx, hook)
	require.Error(t, err)

	var serr *scrapeerr.ScrapingError
	require.ErrorAs(t, err, &serr)
}
