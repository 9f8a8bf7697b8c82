package contactform_test

import (
	"errors"
	"fmt"
	"slices"

	"github.com/networkteam/contactform-e2e/contactform"
)

// fakeField is a required field of the fake form together with its validation message.
type fakeField struct {
	name string
	// wrapped reports whether the field sits inside a hs-form-field div
	wrapped bool
	// message reports whether the wrapper contains an error message node
	message bool
	visible bool
	color   string
}

// fakeForm is an in-memory stand-in for the contact form. Fields can be changed between calls
// to simulate DOM updates.
type fakeForm struct {
	fields     []*fakeField
	countCalls int
	// countErr is returned when counting required fields
	countErr error
	// visibleErr is returned for the visibility check of the named field
	visibleErr map[string]error
}

var _ contactform.Element = (*fakeForm)(nil)

func (f *fakeForm) Locator(selector string) contactform.Element {
	return &fakeNode{form: f, index: -1, path: []string{selector}}
}

func (f *fakeForm) Count() (int, error)         { return 1, nil }
func (f *fakeForm) Nth(int) contactform.Element { return f }
func (f *fakeForm) Attribute(string) (string, error) {
	return "", nil
}
func (f *fakeForm) IsVisible() (bool, error) { return true, nil }
func (f *fakeForm) Evaluate(string) (any, error) {
	return nil, errors.New("not supported")
}

// fakeNode resolves lazily: every call looks at the current fields of the form.
type fakeNode struct {
	form  *fakeForm
	index int
	path  []string
}

func (n *fakeNode) Locator(selector string) contactform.Element {
	return &fakeNode{form: n.form, index: n.index, path: append(slices.Clone(n.path), selector)}
}

func (n *fakeNode) Count() (int, error) {
	if !slices.Equal(n.path, []string{contactform.RequiredSelector}) {
		return 0, fmt.Errorf("unexpected count on %v", n.path)
	}
	n.form.countCalls++
	if n.form.countErr != nil {
		return 0, n.form.countErr
	}
	return len(n.form.fields), nil
}

func (n *fakeNode) Nth(index int) contactform.Element {
	return &fakeNode{form: n.form, index: index, path: slices.Clone(n.path)}
}

func (n *fakeNode) field() (*fakeField, error) {
	if n.index < 0 || n.index >= len(n.form.fields) {
		return nil, fmt.Errorf("no element at index %d", n.index)
	}
	return n.form.fields[n.index], nil
}

func (n *fakeNode) Attribute(name string) (string, error) {
	f, err := n.field()
	if err != nil {
		return "", err
	}
	if name != "name" {
		return "", nil
	}
	return f.name, nil
}

func (n *fakeNode) messageVisible() (bool, error) {
	f, err := n.field()
	if err != nil {
		return false, err
	}
	want := []string{contactform.RequiredSelector, contactform.WrapperSelector, contactform.ErrorMessageSelector}
	if !slices.Equal(n.path, want) {
		return false, fmt.Errorf("unexpected selector chain %v", n.path)
	}
	if err := n.form.visibleErr[f.name]; err != nil {
		return false, err
	}
	return f.wrapped && f.message && f.visible, nil
}

func (n *fakeNode) IsVisible() (bool, error) {
	return n.messageVisible()
}

func (n *fakeNode) Evaluate(expression string) (any, error) {
	visible, err := n.messageVisible()
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.New("timeout waiting for locator")
	}
	f, _ := n.field()
	return f.color, nil
}

func redField(name string) *fakeField {
	return &fakeField{name: name, wrapped: true, message: true, visible: true, color: contactform.ErrorColor}
}

func hiddenField(name string) *fakeField {
	return &fakeField{name: name, wrapped: true, message: true, visible: false}
}
