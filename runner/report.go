package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"

	"github.com/networkteam/contactform-e2e/browser"
	"github.com/networkteam/contactform-e2e/collector"
	"github.com/networkteam/contactform-e2e/workflow"
)

// Status is the outcome of one engine run.
type Status string

const (
	StatusPassed Status = "passed"
	// StatusFailed means the scenario ran and a step failed.
	StatusFailed Status = "failed"
	// StatusErrored means the scenario could not run, e.g. the browser did not launch.
	StatusErrored Status = "errored"
)

// Result is the outcome of the scenario for one engine.
type Result struct {
	Engine   browser.Engine `json:"engine"`
	Status   Status         `json:"status"`
	Duration time.Duration  `json:"duration"`

	// Step is the name of the failed step
	Step  string `json:"step,omitempty"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`

	// Trace holds the latest recorded events of a run that did not pass
	Trace []collector.Event `json:"-"`
	// Dropped is the number of events that were recorded but did not fit into the trace buffer
	Dropped    uint64 `json:"dropped,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
	TraceFile  string `json:"traceFile,omitempty"`
}

func (r *Result) fail(status Status, err error) {
	r.Status = status
	r.Err = err
	r.Error = err.Error()

	var stepErr *workflow.StepError
	if errors.As(err, &stepErr) {
		r.Step = stepErr.Name
	}
}

// Report collects the results of a run.
type Report struct {
	ID       uuid.UUID     `json:"id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Results  []Result      `json:"results"`
}

// Passed reports whether every engine passed. An empty report did not pass.
func (r Report) Passed() bool {
	return len(r.Results) > 0 && lo.EveryBy(r.Results, func(res Result) bool {
		return res.Status == StatusPassed
	})
}

// Count returns the number of results with the given status.
func (r Report) Count(status Status) int {
	return lo.CountBy(r.Results, func(res Result) bool {
		return res.Status == status
	})
}

// WriteText writes a human readable summary with the trace of every engine that did not pass.
func (r Report) WriteText(w io.Writer) error {
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "%-8s %-8s %s\n", res.Status, res.Engine, res.Duration.Round(time.Millisecond)); err != nil {
			return err
		}
		if res.Status == StatusPassed {
			continue
		}
		if _, err := fmt.Fprintf(w, "  error: %s\n", res.Error); err != nil {
			return err
		}
		if res.Screenshot != "" {
			if _, err := fmt.Fprintf(w, "  screenshot: %s\n", res.Screenshot); err != nil {
				return err
			}
		}
		if len(res.Trace) > 0 {
			if _, err := fmt.Fprintf(w, "  last %d events:\n", len(res.Trace)); err != nil {
				return err
			}
			for _, e := range res.Trace {
				if _, err := fmt.Fprintf(w, "    %s\n", e); err != nil {
					return err
				}
			}
		}
		if res.Dropped > 0 {
			if _, err := fmt.Fprintf(w, "  %d older events dropped\n", res.Dropped); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d passed, %d failed, %d errored in %s\n",
		r.Count(StatusPassed), r.Count(StatusFailed), r.Count(StatusErrored), r.Duration.Round(time.Millisecond))
	return err
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
