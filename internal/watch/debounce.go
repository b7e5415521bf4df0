package watch

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Debouncer collects paths and fires once the pushes have been quiet for
// the configured delay.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	queued map[string]struct{}
	onFire func(paths []string)
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	return &Debouncer{
		delay:  delay,
		queued: map[string]struct{}{},
	}
}

func (d *Debouncer) Delay() time.Duration {
	if d == nil {
		return 0
	}
	return d.delay
}

func (d *Debouncer) OnFire(fn func(paths []string)) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.onFire = fn
	d.mu.Unlock()
}

func (d *Debouncer) Push(path string) {
	if d == nil {
		return
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}

	d.mu.Lock()
	d.queued[path] = struct{}{}
	if d.timer != nil {
		_ = d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

// Stop drops anything queued and cancels a pending fire.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.timer != nil {
		_ = d.timer.Stop()
		d.timer = nil
	}
	d.queued = map[string]struct{}{}
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	queued := d.queued
	d.queued = map[string]struct{}{}
	fn := d.onFire
	d.mu.Unlock()

	if fn == nil || len(queued) == 0 {
		return
	}

	paths := make([]string, 0, len(queued))
	for p := range queued {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fn(paths)
}
