//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/networkteam/contactform-e2e/browser"
)

// TestFixtures bundles all commonly needed test fixtures.
type TestFixtures struct {
	Site    *TestSite
	Session *browser.Session
	Contact *ContactPage
}

// WithTestFixtures starts a test site and runs fn once per engine with the contact modal already open.
// All fixtures are released with t.Cleanup.
func WithTestFixtures(t *testing.T, opts TestSiteOptions, fn func(t *testing.T, f *TestFixtures)) {
	t.Helper()

	site := NewTestSite(t, opts)

	ForEachEngine(t, func(t *testing.T, session *browser.Session) {
		fn(t, &TestFixtures{
			Site:    site,
			Session: session,
			Contact: OpenContactPage(t, session, site.Target),
		})
	})
}
