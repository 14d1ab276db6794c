package clock

import (
	"sync"
	"time"
)

// Driver emits a sample of its clock at a fixed cadence until stopped.
// Samples that the consumer is not ready to receive are dropped.
type Driver struct {
	clock    Clock
	interval time.Duration

	mu      sync.Mutex
	c       chan time.Time
	done    chan struct{}
	wg      sync.WaitGroup
	started bool
	stopped bool
}

// NewDriver creates a driver sampling c every interval
func NewDriver(c Clock, interval time.Duration) *Driver {
	return &Driver{
		clock:    c,
		interval: interval,
		c:        make(chan time.Time, 1),
		done:     make(chan struct{}),
	}
}

// C returns the sample channel. It is closed by Stop.
func (d *Driver) C() <-chan time.Time {
	return d.c
}

// Start begins ticking. Calling Start on a running or stopped driver is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	ticker := time.NewTicker(d.interval)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				select {
				case d.c <- d.clock.Now():
				default:
				}
			}
		}
	}()
}

// Stop halts the driver and closes C. No sample is delivered after Stop
// returns. Stop is safe to call more than once.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true

	close(d.done)
	d.wg.Wait()

	// discard a pending sample so readers only see the close
	select {
	case <-d.c:
	default:
	}
	close(d.c)
}

// Running reports whether the driver has been started and not yet stopped
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started && !d.stopped
}
