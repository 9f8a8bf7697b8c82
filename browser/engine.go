package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Engine identifies one of the supported browser engines.
type Engine string

const (
	Chromium Engine = "chromium"
	Firefox  Engine = "firefox"
	WebKit   Engine = "webkit"
)

var ErrUnknownEngine = errors.New("unknown browser engine")

// Engines returns all supported engines in run order.
func Engines() []Engine {
	return []Engine{Chromium, Firefox, WebKit}
}

func (e Engine) String() string {
	return string(e)
}

// ParseEngine maps an engine name (case-insensitive) to an Engine.
func ParseEngine(name string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(name)))
	if !lo.Contains(Engines(), e) {
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return e, nil
}

// ParseEngines parses a list of engine names. Entries may themselves be comma separated.
// The result is de-duplicated and ordered like Engines(). No names selects all engines.
func ParseEngines(names ...string) ([]Engine, error) {
	var selected []Engine
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			e, err := ParseEngine(part)
			if err != nil {
				return nil, err
			}
			selected = append(selected, e)
		}
	}
	if len(selected) == 0 {
		return Engines(), nil
	}

	return lo.Filter(Engines(), func(e Engine, _ int) bool {
		return lo.Contains(selected, e)
	}), nil
}
