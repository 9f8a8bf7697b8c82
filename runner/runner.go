// Package runner runs the contact form scenario once per browser engine and collects the results.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/sync/errgroup"

	"github.com/networkteam/contactform-e2e/browser"
	"github.com/networkteam/contactform-e2e/collector"
	"github.com/networkteam/contactform-e2e/qubika"
	"github.com/networkteam/contactform-e2e/workflow"
)

// DefaultTraceTail is the number of trace events attached to a result that did not pass.
const DefaultTraceTail = 50

// Options configure a Runner.
type Options struct {
	Browser browser.Options
	Target  qubika.Target

	// Parallel is the number of engines run at the same time.
	// Default: 0, runs engines one after another
	Parallel int

	// TraceCapacity is the number of events recorded per engine.
	// Default: 0, will use collector.DefaultCapacity
	TraceCapacity uint64
	// TraceTail is the number of events attached to a result that did not pass.
	// Default: 0, will use DefaultTraceTail
	TraceTail int

	// ArtifactsDir receives a screenshot and the trace of every engine that did not pass. Disabled if empty.
	ArtifactsDir string

	// OnEvent is called for every recorded event while an engine runs. Calls can be concurrent if Parallel > 1.
	OnEvent func(collector.Event)

	Logger *slog.Logger
}

// Runner runs the scenario against a set of engines.
type Runner struct {
	opts Options

	launch   func(engine browser.Engine, opts browser.Options) (*browser.Session, error)
	attach   func(rec *collector.Recorder, session *browser.Session)
	scenario func(ctx context.Context, session *browser.Session, logger *slog.Logger) error
	capture  func(session *browser.Session, path string) error
	now      func() time.Time
}

// New creates a runner that launches real browsers.
func New(opts Options) *Runner {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	if opts.TraceTail <= 0 {
		opts.TraceTail = DefaultTraceTail
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	target := opts.Target

	return &Runner{
		opts:   opts,
		launch: browser.Launch,
		attach: func(rec *collector.Recorder, session *browser.Session) {
			rec.Attach(session.Page)
		},
		scenario: func(ctx context.Context, session *browser.Session, logger *slog.Logger) error {
			return workflow.Run(ctx, session.Page, target, logger)
		},
		capture: func(session *browser.Session, path string) error {
			_, err := session.Page.Screenshot(playwright.PageScreenshotOptions{
				Path:     playwright.String(path),
				FullPage: playwright.Bool(true),
			})
			return err
		},
		now: time.Now,
	}
}

// Run runs the scenario for every engine and returns a report with one result per engine in the given order.
// Engines are independent: the outcome of one never affects another.
func (r *Runner) Run(ctx context.Context, engines []browser.Engine) Report {
	report := Report{
		ID:      uuid.Must(uuid.NewV7()),
		Started: r.now(),
		Results: make([]Result, len(engines)),
	}

	g := new(errgroup.Group)
	g.SetLimit(r.opts.Parallel)
	for i, engine := range engines {
		i, engine := i, engine
		g.Go(func() error {
			report.Results[i] = r.runEngine(ctx, engine)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = r.now().Sub(report.Started)
	return report
}

func (r *Runner) runEngine(ctx context.Context, engine browser.Engine) (result Result) {
	start := r.now()
	result = Result{Engine: engine}
	log := r.opts.Logger.With(slog.String("engine", engine.String()))
	defer func() {
		result.Duration = r.now().Sub(start)
		log.InfoContext(ctx, "Engine finished", slog.String("status", string(result.Status)), slog.Duration("duration", result.Duration))
	}()

	if err := ctx.Err(); err != nil {
		result.fail(StatusErrored, err)
		return result
	}

	log.InfoContext(ctx, "Launching browser")
	session, err := r.launch(engine, r.opts.Browser)
	if err != nil {
		log.ErrorContext(ctx, "Launching browser failed", slog.Any("error", err))
		result.fail(StatusErrored, err)
		return result
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WarnContext(ctx, "Closing browser failed", slog.Any("error", err))
		}
	}()

	rec := collector.NewRecorderWithOptions(engine.String(), collector.RecorderOptions{
		Capacity: r.opts.TraceCapacity,
		OnEvent:  r.opts.OnEvent,
	})
	r.attach(rec, session)

	scenarioLogger := slog.New(collector.Tee(
		log.Handler(),
		rec.SlogHandler(collector.SlogHandlerOptions{Level: slog.LevelDebug}),
	))

	if err := r.scenario(ctx, session, scenarioLogger); err != nil {
		result.fail(scenarioStatus(err), err)
		result.Trace = rec.Tail(r.opts.TraceTail)
		result.Dropped = rec.Dropped()
		r.writeArtifacts(ctx, log, session, rec, &result)
		return result
	}

	result.Status = StatusPassed
	return result
}

// scenarioStatus classifies a scenario error. An interrupted run did not fail a step, it errored.
func scenarioStatus(err error) Status {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return StatusErrored
	}
	return StatusFailed
}

func (r *Runner) writeArtifacts(ctx context.Context, log *slog.Logger, session *browser.Session, rec *collector.Recorder, result *Result) {
	if r.opts.ArtifactsDir == "" {
		return
	}
	if err := os.MkdirAll(r.opts.ArtifactsDir, 0o755); err != nil {
		log.WarnContext(ctx, "Creating artifacts directory failed", slog.Any("error", err))
		return
	}

	screenshot := filepath.Join(r.opts.ArtifactsDir, fmt.Sprintf("%s-failure.png", result.Engine))
	if err := r.capture(session, screenshot); err != nil {
		log.WarnContext(ctx, "Taking screenshot failed", slog.Any("error", err))
	} else {
		result.Screenshot = screenshot
	}

	tracePath := filepath.Join(r.opts.ArtifactsDir, fmt.Sprintf("%s-trace.log", result.Engine))
	if err := writeTrace(tracePath, rec.Tail(r.traceCapacity())); err != nil {
		log.WarnContext(ctx, "Writing trace failed", slog.Any("error", err))
		return
	}
	result.TraceFile = tracePath
}

func (r *Runner) traceCapacity() int {
	if r.opts.TraceCapacity == 0 {
		return collector.DefaultCapacity
	}
	return int(r.opts.TraceCapacity)
}

func writeTrace(path string, events []collector.Event) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return collector.WriteEvents(f, events)
}
