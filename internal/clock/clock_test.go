package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	c := Fixed{T: at}
	if !c.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", c.Now(), at)
	}
}

func TestFuncClock(t *testing.T) {
	var n int64
	c := Func(func() time.Time {
		return time.UnixMilli(atomic.AddInt64(&n, 1000))
	})
	if c.Now().UnixMilli() != 1000 || c.Now().UnixMilli() != 2000 {
		t.Error("Func clock did not delegate to its function")
	}
}

func TestRealClock(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()
	if got.Before(before) {
		t.Errorf("Real.Now() = %v is before %v", got, before)
	}
}

func TestDriverDeliversSamples(t *testing.T) {
	at := time.UnixMilli(1718000000000)
	d := NewDriver(Fixed{T: at}, 5*time.Millisecond)
	d.Start()
	defer d.Stop()

	select {
	case got := <-d.C():
		if !got.Equal(at) {
			t.Errorf("sample = %v, want %v", got, at)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sample delivered")
	}
}

func TestDriverStopClosesChannel(t *testing.T) {
	d := NewDriver(Real{}, time.Millisecond)
	d.Start()
	time.Sleep(10 * time.Millisecond)
	d.Stop()

	if d.Running() {
		t.Error("Running() = true after Stop()")
	}

	select {
	case _, ok := <-d.C():
		if ok {
			t.Error("received a sample after Stop()")
		}
	case <-time.After(time.Second):
		t.Fatal("channel was not closed by Stop()")
	}
}

func TestDriverStopIsIdempotent(t *testing.T) {
	d := NewDriver(Real{}, time.Millisecond)
	d.Start()
	d.Stop()
	d.Stop()

	// starting a stopped driver does nothing
	d.Start()
	if d.Running() {
		t.Error("Start() revived a stopped driver")
	}
}

func TestDriverStopWithoutStart(t *testing.T) {
	d := NewDriver(Real{}, time.Millisecond)
	d.Stop()
	if _, ok := <-d.C(); ok {
		t.Error("expected closed channel")
	}
}
