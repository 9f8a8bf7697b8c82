package workflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/contactform-e2e/qubika"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSteps_Order(t *testing.T) {
	steps := Steps(nil, qubika.DefaultTarget())

	names := lo.Map(steps, func(s Step, _ int) string { return s.Name })
	assert.Equal(t, []string{
		"navigate to entry URL",
		"validate final URL",
		"validate logo",
		"click contact us",
		"wait for contact modal",
		"validate name and email fields",
		"validate submit button",
		"submit empty form",
		"validate errors of all required fields",
		"fill first name",
		"submit with first name",
		"validate errors except first name",
	}, names)
}

func TestRunSteps_AbortsOnFirstFailure(t *testing.T) {
	errInvisible := errors.New("the logo is not visible")
	var ran []string
	step := func(name string, err error) Step {
		return Step{Name: name, run: func() error {
			ran = append(ran, name)
			return err
		}}
	}

	err := runSteps(context.Background(), []Step{
		step("one", nil),
		step("two", errInvisible),
		step("three", nil),
	}, discardLogger())

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Index)
	assert.Equal(t, "two", stepErr.Name)
	assert.ErrorIs(t, err, errInvisible)
	assert.Equal(t, "step 2 (two): the logo is not visible", err.Error())
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestRunSteps_AllPass(t *testing.T) {
	count := 0
	steps := lo.Times(3, func(i int) Step {
		return Step{Name: "noop", run: func() error { count++; return nil }}
	})

	require.NoError(t, runSteps(context.Background(), steps, discardLogger()))
	assert.Equal(t, 3, count)
}

func TestRunSteps_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ran []string
	steps := []Step{
		{Name: "first", run: func() error { ran = append(ran, "first"); cancel(); return nil }},
		{Name: "second", run: func() error { ran = append(ran, "second"); return nil }},
	}

	err := runSteps(ctx, steps, discardLogger())

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "second", stepErr.Name)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"first"}, ran)
}

func TestRun_CancelledBeforeFirstStepDoesNotTouchPage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A nil page would panic if any step ran
	err := Run(ctx, nil, qubika.DefaultTarget(), discardLogger())

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)
}

func TestRunSteps_LogsSteps(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := runSteps(context.Background(), []Step{
		{Name: "validate logo", run: func() error { return nil }},
	}, logger)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `msg="Step passed"`)
	assert.Contains(t, buf.String(), `name="validate logo"`)
	assert.Contains(t, buf.String(), "step=1")
}
