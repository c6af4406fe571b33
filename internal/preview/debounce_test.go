// file: internal/preview/debounce_test.go
// version: 1.0.0
// guid: c2f9b4d8-6b0e-4a0c-8e7d-5d1a3b9f0e44

package preview

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/cover-preview/internal/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDebouncer_LastTriggerWins(t *testing.T) {
	c := clock.Fake(epoch)
	calls := 0
	d := NewDebouncer(c, SpinDebounce, func() { calls++ })

	assert.False(t, d.Trigger())
	c.Advance(40 * time.Millisecond)
	assert.True(t, d.Trigger())
	c.Advance(40 * time.Millisecond)
	assert.True(t, d.Trigger())

	c.Advance(SpinDebounce - time.Millisecond)
	assert.Equal(t, 0, calls)
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, d.Coalesced())

	c.Advance(time.Second)
	assert.Equal(t, 1, calls)

	// the debouncer is reusable after firing
	assert.False(t, d.Trigger())
	c.Advance(SpinDebounce)
	assert.Equal(t, 2, calls)
}

func TestDebouncer_Stop(t *testing.T) {
	c := clock.Fake(epoch)
	calls := 0
	d := NewDebouncer(c, SpinDebounce, func() { calls++ })

	d.Stop()
	d.Trigger()
	d.Stop()
	c.Advance(time.Second)
	assert.Equal(t, 0, calls)
}

func TestDebouncedSpin_ThreePressesOneTransition(t *testing.T) {
	cat := loadCatalog(t)
	c := clock.Fake(epoch)

	var mu sync.Mutex
	s := Default()
	transitions := 0
	d := NewDebouncer(c, SpinDebounce, func() {
		mu.Lock()
		defer mu.Unlock()
		next, err := Reduce(cat, s, Simple(ActionSpin))
		require.NoError(t, err)
		if next.Perspective != s.Perspective {
			transitions++
		}
		s = next
	})

	for range 3 {
		d.Trigger()
		c.Advance(30 * time.Millisecond)
	}
	c.Advance(SpinDebounce)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, transitions)
	assert.Equal(t, PerspectiveSpine, s.Perspective)
}
