package catalog

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze load times and
// drive the watcher's debounce ticker.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
