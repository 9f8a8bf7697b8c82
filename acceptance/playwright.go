//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/networkteam/contactform-e2e/browser"
	"github.com/networkteam/contactform-e2e/config"
)

// testConfig is loaded once by TestMain from .env, E2E_CONFIG and the environment.
// Set HEADLESS=false to run with visible browsers, E2E_ENGINES to limit engines and E2E_SLOWMO / E2E_TIMEOUT for debugging.
var testConfig = config.Default()

// NewSession launches a fresh browser with an isolated context and page.
// The browser is closed with t.Cleanup, whether the test passes or fails.
func NewSession(t *testing.T, engine browser.Engine) *browser.Session {
	t.Helper()

	session, err := browser.Launch(engine, testConfig.BrowserOptions())
	require.NoError(t, err, "failed to launch %s", engine)
	t.Cleanup(func() { session.Close() })

	return session
}

// ForEachEngine runs fn as a subtest once per selected engine, each with its own browser session.
// Engines run one after another.
func ForEachEngine(t *testing.T, fn func(t *testing.T, session *browser.Session)) {
	t.Helper()

	for _, engine := range testConfig.SelectedEngines() {
		t.Run(engine.String(), func(t *testing.T) {
			fn(t, NewSession(t, engine))
		})
	}
}
