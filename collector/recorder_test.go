package collector

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecorder_RecordAndTail(t *testing.T) {
	r := NewRecorderWithOptions("firefox", RecorderOptions{Capacity: 2})
	r.now = fixedClock(time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC))

	r.Record(KindRequest, "GET https://www.qubika.com/")
	r.Record(KindResponse, "301 https://www.qubika.com/")
	r.Record(KindResponse, "200 https://qubika.com/")

	events := r.Tail(10)
	require.Len(t, events, 2)
	assert.Equal(t, "301 https://www.qubika.com/", events[0].Text)
	assert.Equal(t, "200 https://qubika.com/", events[1].Text)
	assert.Equal(t, "firefox", events[1].Engine)
	assert.Equal(t, KindResponse, events[1].Kind)
	assert.NotEqual(t, uuid.Nil, events[1].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, uint64(1), r.Dropped())
	assert.Equal(t, "09:30:00.000 [response] 200 https://qubika.com/", events[1].String())
}

func TestRecorder_TailNonPositive(t *testing.T) {
	r := NewRecorder("chromium")
	r.Record(KindConsole, "log: hi")

	assert.Empty(t, r.Tail(0))
	assert.Empty(t, r.Tail(-1))
}

func TestRecorder_OnEventReceivesEveryEventBeyondCapacity(t *testing.T) {
	var received []Event
	r := NewRecorderWithOptions("webkit", RecorderOptions{
		Capacity: 10,
		OnEvent: func(e Event) {
			received = append(received, e)
		},
	})

	for i := 0; i < 301; i++ {
		r.Record(KindLog, fmt.Sprintf("event %d", i))
	}

	require.Len(t, received, 301)
	for i, e := range received {
		assert.Equal(t, fmt.Sprintf("event %d", i), e.Text)
	}
	assert.Len(t, r.Tail(1000), 10)
	assert.Equal(t, uint64(291), r.Dropped())
	assert.Equal(t, received[300].ID, r.Tail(1)[0].ID)
}

func TestRecorder_OnEventConcurrentRecords(t *testing.T) {
	var (
		mx       sync.Mutex
		inflight int
		overlap  bool
		count    int
	)
	r := NewRecorderWithOptions("chromium", RecorderOptions{
		Capacity: 5,
		OnEvent: func(Event) {
			mx.Lock()
			inflight++
			if inflight > 1 {
				overlap = true
			}
			mx.Unlock()

			mx.Lock()
			inflight--
			count++
			mx.Unlock()
		},
	})

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.Record(KindConsole, fmt.Sprintf("log: %d/%d", g, i))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, count)
	assert.False(t, overlap)
}

func TestWriteEvents(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 30, 1, 250_000_000, time.UTC)
	events := []Event{
		{Kind: KindLog, Text: "INFO Step passed step=1", Time: at},
		{Kind: KindConsole, Text: "error: failed to load", Time: at},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEvents(&buf, events))
	assert.Equal(t, "09:30:01.250 [log] INFO Step passed step=1\n09:30:01.250 [console] error: failed to load\n", buf.String())
}

func TestSlogHandler_RecordsLogEvents(t *testing.T) {
	r := NewRecorder("chromium")

	logger := slog.New(r.SlogHandler(SlogHandlerOptions{Level: slog.LevelDebug}))
	logger.With(slog.String("engine", "chromium")).
		WithGroup("step").
		Info("Step passed", slog.Int("index", 3), slog.Group("field", slog.String("name", "email")))
	logger.Debug("Running step")

	events := r.Tail(10)
	require.Len(t, events, 2)
	assert.Equal(t, KindLog, events[0].Kind)
	assert.Equal(t, "INFO Step passed engine=chromium step.index=3 step.field.name=email", events[0].Text)
	assert.Equal(t, "DEBUG Running step", events[1].Text)
}

func TestSlogHandler_Level(t *testing.T) {
	r := NewRecorder("chromium")

	logger := slog.New(r.SlogHandler(SlogHandlerOptions{}))
	logger.Debug("hidden")
	logger.Warn("shown")

	events := r.Tail(10)
	require.Len(t, events, 1)
	assert.Equal(t, "WARN shown", events[0].Text)
}

func TestTee(t *testing.T) {
	r := NewRecorder("chromium")

	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(Tee(text, r.SlogHandler(SlogHandlerOptions{Level: slog.LevelInfo})))

	logger.Info("Step passed", slog.Int("step", 1))
	logger.Warn("Scenario cancelled")

	assert.Len(t, r.Tail(10), 2)
	assert.NotContains(t, buf.String(), "Step passed")
	assert.Contains(t, buf.String(), "Scenario cancelled")
}
