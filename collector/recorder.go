package collector

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/playwright-community/playwright-go"
)

// DefaultCapacity is the number of events a recorder keeps if no capacity is given.
const DefaultCapacity = 500

// Recorder records console messages, network traffic, page errors and log records of one browser session.
type Recorder struct {
	engine  string
	buffer  *RingBuffer[Event]
	onEvent func(Event)
	now     func() time.Time

	// mx serializes Record so onEvent sees events in buffer order
	mx sync.Mutex
}

// RecorderOptions configures a Recorder
type RecorderOptions struct {
	// Capacity is the maximum number of events to keep.
	// Default: 0, will use DefaultCapacity
	Capacity uint64

	// OnEvent is called synchronously for every recorded event, including events that are
	// later dropped from the buffer. Calls never overlap.
	OnEvent func(Event)
}

// NewRecorder creates a recorder with default options.
func NewRecorder(engine string) *Recorder {
	return NewRecorderWithOptions(engine, RecorderOptions{})
}

// NewRecorderWithOptions creates a recorder with the specified options.
func NewRecorderWithOptions(engine string, options RecorderOptions) *Recorder {
	capacity := options.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}

	return &Recorder{
		engine:  engine,
		buffer:  NewRingBuffer[Event](capacity),
		onEvent: options.OnEvent,
		now:     time.Now,
	}
}

// Record adds an event of the given kind.
func (r *Recorder) Record(kind Kind, text string) {
	r.mx.Lock()
	defer r.mx.Unlock()

	e := Event{
		ID:     uuid.Must(uuid.NewV7()),
		Engine: r.engine,
		Kind:   kind,
		Text:   text,
		Time:   r.now(),
	}
	r.buffer.Add(e)
	if r.onEvent != nil {
		r.onEvent(e)
	}
}

// Attach registers page event handlers that record console messages, requests, responses and uncaught page errors.
func (r *Recorder) Attach(page playwright.Page) {
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		r.Record(KindConsole, fmt.Sprintf("%s: %s", msg.Type(), msg.Text()))
	})
	page.OnRequest(func(req playwright.Request) {
		r.Record(KindRequest, fmt.Sprintf("%s %s", req.Method(), req.URL()))
	})
	page.OnResponse(func(res playwright.Response) {
		r.Record(KindResponse, fmt.Sprintf("%d %s", res.Status(), res.URL()))
	})
	page.OnPageError(func(err error) {
		r.Record(KindPageError, err.Error())
	})
}

// Tail returns the most recent n events, oldest first.
func (r *Recorder) Tail(n int) []Event {
	if n <= 0 {
		return []Event{}
	}
	return r.buffer.Tail(uint64(n))
}

// Dropped returns the number of events that no longer fit into the recorder.
func (r *Recorder) Dropped() uint64 {
	return r.buffer.Dropped()
}
