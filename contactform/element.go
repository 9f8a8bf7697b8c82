package contactform

import "github.com/playwright-community/playwright-go"

// Element is a lazy reference to zero or more DOM elements.
// Implementations must re-resolve their selector against the live DOM on every call.
type Element interface {
	Locator(selector string) Element
	Count() (int, error)
	Nth(index int) Element
	Attribute(name string) (string, error)
	IsVisible() (bool, error)
	Evaluate(expression string) (any, error)
}

// FromLocator adapts a Playwright locator to an Element.
func FromLocator(l playwright.Locator) Element {
	return locator{l: l}
}

type locator struct {
	l playwright.Locator
}

func (l locator) Locator(selector string) Element {
	return locator{l: l.l.Locator(selector)}
}

func (l locator) Count() (int, error) {
	return l.l.Count()
}

func (l locator) Nth(index int) Element {
	return locator{l: l.l.Nth(index)}
}

func (l locator) Attribute(name string) (string, error) {
	return l.l.GetAttribute(name)
}

func (l locator) IsVisible() (bool, error) {
	return l.l.IsVisible()
}

func (l locator) Evaluate(expression string) (any, error) {
	return l.l.Evaluate(expression, nil)
}
