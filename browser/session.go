package browser

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
)

// ErrLaunch marks failures while setting up a session. Callers report these as errored, not failed.
var ErrLaunch = errors.New("browser launch failed")

// Options configure how a browser is launched.
type Options struct {
	// Headless runs the browser without a visible window.
	Headless bool
	// SlowMo slows down every browser operation, useful for debugging with a visible window.
	SlowMo time.Duration
	// Timeout is the default action timeout of the page.
	// Default: 0, keeps the Playwright default
	Timeout time.Duration
}

// DefaultOptions returns headless options with Playwright default timeouts.
func DefaultOptions() Options {
	return Options{Headless: true}
}

// Session owns a Playwright driver, one browser, one isolated context and one page.
type Session struct {
	Engine  Engine
	PW      *playwright.Playwright
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	// closers are run in reverse order on Close
	closers   []func() error
	closeOnce sync.Once
	closeErr  error
}

// Launch starts a fresh browser of the given engine and opens a new context and page.
// If any step fails, everything opened so far is closed again and an error wrapping ErrLaunch is returned.
func Launch(engine Engine, opts Options) (*Session, error) {
	s := &Session{Engine: engine}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: starting playwright: %v", ErrLaunch, err)
	}
	s.PW = pw
	s.OnClose(pw.Stop)

	browserType, err := browserTypeFor(pw, engine)
	if err != nil {
		return nil, s.abort(err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(float64(opts.SlowMo.Milliseconds()))
	}
	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		return nil, s.abort(fmt.Errorf("launching %s: %v", engine, err))
	}
	s.Browser = browser
	s.OnClose(func() error { return browser.Close() })

	ctx, err := browser.NewContext()
	if err != nil {
		return nil, s.abort(fmt.Errorf("creating browser context: %v", err))
	}
	s.Context = ctx
	s.OnClose(func() error { return ctx.Close() })

	page, err := ctx.NewPage()
	if err != nil {
		return nil, s.abort(fmt.Errorf("creating page: %v", err))
	}
	if opts.Timeout > 0 {
		page.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))
	}
	s.Page = page

	return s, nil
}

func (s *Session) abort(cause error) error {
	err := fmt.Errorf("%w: %v", ErrLaunch, cause)
	if closeErr := s.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

// OnClose registers fn to run on Close before everything registered earlier.
func (s *Session) OnClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

// Close releases the context, the browser and the driver. It is safe to call multiple times.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		for i := len(s.closers) - 1; i >= 0; i-- {
			if err := s.closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

func browserTypeFor(pw *playwright.Playwright, engine Engine) (playwright.BrowserType, error) {
	switch engine {
	case Chromium:
		return pw.Chromium, nil
	case Firefox:
		return pw.Firefox, nil
	case WebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Install downloads the Playwright driver and the browsers for the given engines.
func Install(engines ...Engine) error {
	if len(engines) == 0 {
		engines = Engines()
	}
	return playwright.Install(&playwright.RunOptions{
		Browsers: lo.Map(engines, func(e Engine, _ int) string { return e.String() }),
	})
}
