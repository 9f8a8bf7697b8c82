package collector

import (
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid"
)

// Kind is the source of a recorded event.
type Kind string

const (
	KindConsole   Kind = "console"
	KindRequest   Kind = "request"
	KindResponse  Kind = "response"
	KindPageError Kind = "pageerror"
	KindLog       Kind = "log"
)

// Event is a single thing that happened in a browser session.
type Event struct {
	ID     uuid.UUID
	Engine string
	Kind   Kind
	Text   string
	Time   time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05.000"), e.Kind, e.Text)
}

// WriteEvents writes one line per event.
func WriteEvents(w io.Writer, events []Event) error {
	for _, e := range events {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}
