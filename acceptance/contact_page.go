//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/networkteam/contactform-e2e/browser"
	"github.com/networkteam/contactform-e2e/contactform"
	"github.com/networkteam/contactform-e2e/qubika"
)

// ContactPage drives the contact modal of a site in tests.
// Every step fails the test immediately if the browser action fails.
type ContactPage struct {
	Home  *qubika.HomePage
	Modal *qubika.ContactModal
	t     *testing.T
}

// OpenContactPage navigates to the target, opens the contact modal and waits for the form.
func OpenContactPage(t *testing.T, session *browser.Session, target qubika.Target) *ContactPage {
	t.Helper()

	home := qubika.NewHomePage(session.Page, target)
	require.NoError(t, home.Open())
	require.NoError(t, home.CheckURL())
	require.NoError(t, home.ClickContactUs())

	modal := home.ContactModal()
	require.NoError(t, modal.WaitVisible())
	require.NoError(t, modal.WaitForField(qubika.FirstNameField))

	return &ContactPage{Home: home, Modal: modal, t: t}
}

// Submit clicks the submit button.
func (cp *ContactPage) Submit() {
	cp.t.Helper()
	require.NoError(cp.t, cp.Modal.Submit(), "failed to submit")
}

// Fill types a value into the named field.
func (cp *ContactPage) Fill(name, value string) {
	cp.t.Helper()
	require.NoError(cp.t, cp.Modal.Fill(name, value))
}

// Form returns the contact form for use with the contactform package.
func (cp *ContactPage) Form() contactform.Element {
	return contactform.FromLocator(cp.Modal.Locator)
}

// FieldStates returns the current validation state of all required fields.
func (cp *ContactPage) FieldStates() []contactform.FieldState {
	cp.t.Helper()

	states, err := contactform.Inspect(cp.Form())
	require.NoError(cp.t, err)
	return states
}
