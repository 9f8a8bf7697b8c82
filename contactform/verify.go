package contactform

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	// RequiredSelector matches all fields with client-side required validation.
	RequiredSelector = "[required]"
	// WrapperSelector finds the HubSpot field wrapper of a field.
	WrapperSelector = `xpath=ancestor::div[contains(@class, "hs-form-field")]`
	// ErrorMessageSelector finds the validation messages inside a field wrapper.
	ErrorMessageSelector = ".hs-error-msgs .hs-error-msg"
	// ErrorColor is the computed text color every visible validation message must have.
	ErrorColor = "rgb(255, 0, 0)"

	colorScript = "element => window.getComputedStyle(element).color"
)

// FieldState is the observed validation state of one required field.
type FieldState struct {
	Name string
	// ErrorVisible reports whether the field's validation message is visible.
	ErrorVisible bool
	// Color is the computed color of the validation message, only read if it is visible.
	Color string
}

// Inspect reads the validation state of all required fields of the form in DOM order.
// The required fields are queried again on every call.
func Inspect(form Element) ([]FieldState, error) {
	required := form.Locator(RequiredSelector)
	count, err := required.Count()
	if err != nil {
		return nil, fmt.Errorf("counting required fields: %w", err)
	}

	states := make([]FieldState, 0, count)
	for i := 0; i < count; i++ {
		field := required.Nth(i)
		name, err := field.Attribute("name")
		if err != nil {
			return nil, fmt.Errorf("reading name of required field %d: %w", i, err)
		}

		errorMsg := field.Locator(WrapperSelector).Locator(ErrorMessageSelector)
		visible, err := errorMsg.IsVisible()
		if err != nil {
			return nil, fmt.Errorf("checking error message of field %q: %w", name, err)
		}

		state := FieldState{Name: name, ErrorVisible: visible}
		if visible {
			color, err := errorMsg.Evaluate(colorScript)
			if err != nil {
				return nil, fmt.Errorf("reading error message color of field %q: %w", name, err)
			}
			state.Color = fmt.Sprint(color)
		}
		states = append(states, state)
	}

	return states, nil
}

// Verify checks that every required field of the form shows a red validation message,
// except the completed fields, which must not show one.
// A field without wrapper or message element counts as not showing a message.
func Verify(form Element, completed ...string) error {
	states, err := Inspect(form)
	if err != nil {
		return err
	}
	return Check(states, completed...)
}

// Check compares observed field states against the expectation for the completed fields.
func Check(states []FieldState, completed ...string) error {
	var violations []Violation
	for _, state := range states {
		if lo.Contains(completed, state.Name) {
			if state.ErrorVisible {
				violations = append(violations, Violation{Field: state.Name, Kind: UnexpectedMessage})
			}
			continue
		}
		if !state.ErrorVisible {
			violations = append(violations, Violation{Field: state.Name, Kind: MissingMessage})
			continue
		}
		if state.Color != ErrorColor {
			violations = append(violations, Violation{Field: state.Name, Kind: WrongColor, Color: state.Color})
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ViolationKind classifies a failed expectation.
type ViolationKind int

const (
	MissingMessage ViolationKind = iota + 1
	UnexpectedMessage
	WrongColor
)

// Violation is a failed expectation for a single field.
type Violation struct {
	Field string
	Kind  ViolationKind
	// Color is the actual computed color for WrongColor violations.
	Color string
}

func (v Violation) String() string {
	switch v.Kind {
	case MissingMessage:
		return fmt.Sprintf("no error message found for field: %s", v.Field)
	case UnexpectedMessage:
		return fmt.Sprintf("error message found for field: %s", v.Field)
	case WrongColor:
		return fmt.Sprintf("the error message color of field %s is %s, not red", v.Field, v.Color)
	default:
		return fmt.Sprintf("invalid state of field: %s", v.Field)
	}
}

// ValidationError lists all fields whose validation message did not match the expectation.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return strings.Join(lo.Map(e.Violations, func(v Violation, _ int) string {
		return v.String()
	}), "; ")
}

// Fields returns the names of all offending fields.
func (e *ValidationError) Fields() []string {
	return lo.Uniq(lo.Map(e.Violations, func(v Violation, _ int) string {
		return v.Field
	}))
}
