package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/networkteam/contactform-e2e/browser"
	"github.com/networkteam/contactform-e2e/collector"
	"github.com/networkteam/contactform-e2e/config"
	"github.com/networkteam/contactform-e2e/runner"
)

var version = "0.1.0"

// errNotPassed makes the process exit non-zero without printing the report twice
var errNotPassed = cli.Exit("", 1)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "contactform-e2e",
		Usage:   "Check validation errors of the Qubika contact form in real browsers",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log every step",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			installCommand(),
			enginesCommand(),
		},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the contact form scenario once per engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config file",
				EnvVars: []string{config.EnvConfig},
			},
			&cli.StringSliceFlag{
				Name:    "engine",
				Aliases: []string{"e"},
				Usage:   "Engine to run (chromium, firefox, webkit), can be repeated; all engines if not set",
			},
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "Run browsers without a window",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "parallel",
				Usage: "Number of engines run at the same time",
			},
			&cli.StringFlag{
				Name:  "artifacts",
				Usage: "Directory for screenshots and traces of failed runs",
			},
			&cli.BoolFlag{
				Name:  "follow",
				Usage: "Print console messages and network traffic while running",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the report as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("engine") {
				cfg.Engines = c.StringSlice("engine")
			}
			if c.IsSet("headless") {
				cfg.Headless = c.Bool("headless")
			}
			if c.IsSet("parallel") {
				cfg.Parallel = c.Int("parallel")
			}
			if c.IsSet("artifacts") {
				cfg.ArtifactsDir = c.String("artifacts")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := runner.Options{
				Browser:       cfg.BrowserOptions(),
				Target:        cfg.Target(),
				Parallel:      cfg.Parallel,
				TraceCapacity: cfg.TraceCapacity,
				ArtifactsDir:  cfg.ArtifactsDir,
				Logger:        newLogger(c),
			}
			if c.Bool("follow") {
				var mx sync.Mutex
				opts.OnEvent = func(e collector.Event) {
					mx.Lock()
					defer mx.Unlock()
					fmt.Fprintf(c.App.ErrWriter, "%-8s %s\n", e.Engine, e)
				}
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			report := runner.New(opts).Run(ctx, cfg.SelectedEngines())

			if c.Bool("json") {
				err = report.WriteJSON(c.App.Writer)
			} else {
				err = report.WriteText(c.App.Writer)
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			if !report.Passed() {
				return errNotPassed
			}
			return nil
		},
	}
}

func installCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install the Playwright driver and browsers",
		ArgsUsage: "[engine...]",
		Action: func(c *cli.Context) error {
			engines, err := browser.ParseEngines(c.Args().Slice()...)
			if err != nil {
				return err
			}
			if err := browser.Install(engines...); err != nil {
				return fmt.Errorf("installing browsers: %w", err)
			}
			return nil
		},
	}
}

func enginesCommand() *cli.Command {
	return &cli.Command{
		Name:  "engines",
		Usage: "List supported engines",
		Action: func(c *cli.Context) error {
			for _, name := range lo.Map(browser.Engines(), func(e browser.Engine, _ int) string { return e.String() }) {
				if _, err := fmt.Fprintln(c.App.Writer, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
