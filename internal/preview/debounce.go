// file: internal/preview/debounce.go
// version: 1.0.0
// guid: 0c8ad9a7-2c4f-4f59-a5c3-58bc1f3b7d20

package preview

import (
	"sync"
	"time"

	"github.com/jdfalk/cover-preview/internal/clock"
)

// SpinDebounce is the default window for the spin key.
const SpinDebounce = 250 * time.Millisecond

// Debouncer calls fn once, window after the most recent Trigger.
type Debouncer struct {
	mu     sync.Mutex
	clock  clock.Clock
	window time.Duration
	fn     func()
	timer  clock.Timer

	coalesced int
}

// NewDebouncer returns an idle debouncer. A nil clock means the real one.
func NewDebouncer(c clock.Clock, window time.Duration, fn func()) *Debouncer {
	if c == nil {
		c = clock.Real()
	}
	return &Debouncer{clock: c, window: window, fn: fn}
}

// Trigger (re)starts the window. It reports whether a pending call was
// absorbed into this one.
func (d *Debouncer) Trigger() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.window, d.fn)
		return false
	}
	if d.timer.Reset(d.window) {
		d.coalesced++
		return true
	}
	return false
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Coalesced returns how many triggers were absorbed by a later one.
func (d *Debouncer) Coalesced() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.coalesced
}
