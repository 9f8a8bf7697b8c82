package qubika

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/contactform-e2e/contactform"
)

var (
	ErrUnexpectedURL = errors.New("unexpected URL")
	ErrNotVisible    = errors.New("element not visible")
)

// HomePage wraps the landing page of the site.
type HomePage struct {
	Page   playwright.Page
	Target Target
}

func NewHomePage(page playwright.Page, target Target) *HomePage {
	return &HomePage{Page: page, Target: target}
}

// Open navigates to the entry URL and waits for the navigation to settle.
func (hp *HomePage) Open() error {
	if _, err := hp.Page.Goto(hp.Target.EntryURL); err != nil {
		return fmt.Errorf("navigating to %s: %w", hp.Target.EntryURL, err)
	}
	return nil
}

// CheckURL verifies that the page ended up on the canonical URL.
func (hp *HomePage) CheckURL() error {
	if got := hp.Page.URL(); got != hp.Target.CanonicalURL {
		return fmt.Errorf("%w: the current URL %q does not match the expected final URL %q", ErrUnexpectedURL, got, hp.Target.CanonicalURL)
	}
	return nil
}

// CheckLogoVisible verifies that the logo in the header is visible.
func (hp *HomePage) CheckLogoVisible() error {
	return checkVisible(hp.Page.Locator(LogoSelector), "the logo")
}

// ClickContactUs clicks the "Contact us" call to action in the hero section.
func (hp *HomePage) ClickContactUs() error {
	if err := hp.Page.Locator(ContactUsSelector).Click(); err != nil {
		return fmt.Errorf("clicking contact us: %w", err)
	}
	return nil
}

// ContactModal returns the contact dialog. The dialog is resolved lazily.
func (hp *HomePage) ContactModal() *ContactModal {
	return &ContactModal{Locator: hp.Page.Locator(ContactModalSelector)}
}

// ContactModal wraps the contact dialog with its HubSpot form.
type ContactModal struct {
	Locator playwright.Locator
}

// WaitVisible waits until the dialog is shown.
func (cm *ContactModal) WaitVisible() error {
	return waitVisible(cm.Locator, "the contact modal")
}

// Field returns a locator for the form field with the given name.
func (cm *ContactModal) Field(name string) playwright.Locator {
	return cm.Locator.Locator(FieldSelector(name))
}

// WaitForField waits until the named field is visible.
func (cm *ContactModal) WaitForField(name string) error {
	return waitVisible(cm.Field(name), fmt.Sprintf("the %q field", name))
}

// CheckFieldVisible verifies that the named field is visible.
func (cm *ContactModal) CheckFieldVisible(name string) error {
	return checkVisible(cm.Field(name), fmt.Sprintf("the %q field", name))
}

// CheckSubmitVisible verifies that the submit button is visible.
func (cm *ContactModal) CheckSubmitVisible() error {
	return checkVisible(cm.Locator.Locator(SubmitSelector), "the submit button")
}

// Fill types the value into the named field.
func (cm *ContactModal) Fill(name, value string) error {
	if err := cm.Field(name).Fill(value); err != nil {
		return fmt.Errorf("filling %q: %w", name, err)
	}
	return nil
}

// Submit clicks the submit button of the form.
func (cm *ContactModal) Submit() error {
	if err := cm.Locator.Locator(SubmitSelector).Click(); err != nil {
		return fmt.Errorf("clicking submit: %w", err)
	}
	return nil
}

// VerifyErrors checks the validation messages of all required fields, see contactform.Verify.
func (cm *ContactModal) VerifyErrors(completed ...string) error {
	return contactform.Verify(contactform.FromLocator(cm.Locator), completed...)
}

func waitVisible(l playwright.Locator, what string) error {
	err := l.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", what, err)
	}
	return checkVisible(l, what)
}

func checkVisible(l playwright.Locator, what string) error {
	visible, err := l.IsVisible()
	if err != nil {
		return fmt.Errorf("checking visibility of %s: %w", what, err)
	}
	if !visible {
		return fmt.Errorf("%w: %s is not visible", ErrNotVisible, what)
	}
	return nil
}
