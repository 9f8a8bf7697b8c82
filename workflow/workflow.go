// Package workflow runs the contact form scenario against a page.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/contactform-e2e/qubika"
)

// FirstNameValue is typed into the first name field before the second submit.
const FirstNameValue = "Test name"

// Step is a named unit of the scenario.
type Step struct {
	Name string
	run  func() error
}

// StepError reports the step that aborted a scenario run.
type StepError struct {
	// Index is the 1-based position of the step
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type scenario struct {
	home  *qubika.HomePage
	modal *qubika.ContactModal
}

// Steps returns the steps of the scenario for the given page in execution order.
func Steps(page playwright.Page, target qubika.Target) []Step {
	s := &scenario{home: qubika.NewHomePage(page, target)}
	return s.steps()
}

func (s *scenario) steps() []Step {
	return []Step{
		{Name: "navigate to entry URL", run: s.home.Open},
		{Name: "validate final URL", run: s.home.CheckURL},
		{Name: "validate logo", run: s.home.CheckLogoVisible},
		{Name: "click contact us", run: s.home.ClickContactUs},
		{Name: "wait for contact modal", run: func() error {
			s.modal = s.home.ContactModal()
			return s.modal.WaitVisible()
		}},
		{Name: "validate name and email fields", run: func() error {
			if err := s.modal.WaitForField(qubika.FirstNameField); err != nil {
				return err
			}
			for _, name := range []string{qubika.FirstNameField, qubika.LastNameField, qubika.EmailField} {
				if err := s.modal.CheckFieldVisible(name); err != nil {
					return err
				}
			}
			return nil
		}},
		{Name: "validate submit button", run: func() error {
			return s.modal.CheckSubmitVisible()
		}},
		{Name: "submit empty form", run: func() error {
			return s.modal.Submit()
		}},
		{Name: "validate errors of all required fields", run: func() error {
			return s.modal.VerifyErrors()
		}},
		{Name: "fill first name", run: func() error {
			return s.modal.Fill(qubika.FirstNameField, FirstNameValue)
		}},
		{Name: "submit with first name", run: func() error {
			return s.modal.Submit()
		}},
		{Name: "validate errors except first name", run: func() error {
			return s.modal.VerifyErrors(qubika.FirstNameField)
		}},
	}
}

// Run executes the scenario step by step. The first failing step aborts the run and is returned as *StepError.
// The context is only checked between steps; single browser operations use the Playwright timeouts.
func Run(ctx context.Context, page playwright.Page, target qubika.Target, logger *slog.Logger) error {
	return runSteps(ctx, Steps(page, target), logger)
}

func runSteps(ctx context.Context, steps []Step, logger *slog.Logger) error {
	for i, step := range steps {
		log := logger.With(slog.Int("step", i+1), slog.String("name", step.Name))

		if err := ctx.Err(); err != nil {
			log.WarnContext(ctx, "Scenario cancelled")
			return &StepError{Index: i + 1, Name: step.Name, Err: err}
		}

		start := time.Now()
		log.DebugContext(ctx, "Running step")
		if err := step.run(); err != nil {
			log.ErrorContext(ctx, "Step failed", slog.Duration("duration", time.Since(start)), slog.Any("error", err))
			return &StepError{Index: i + 1, Name: step.Name, Err: err}
		}
		log.InfoContext(ctx, "Step passed", slog.Duration("duration", time.Since(start)))
	}
	return nil
}
