package engine

import (
	"testing"
	"time"
)

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	clk := newManualClock()
	q := NewFrameQueue(clk.Now)

	var order []int
	q.RequestFrame(func(time.Time) {
		order = append(order, 1)
		q.RequestFrame(func(time.Time) { order = append(order, 3) })
	})
	q.RequestFrame(func(time.Time) { order = append(order, 2) })

	if ran := q.Flush(clk.Advance(16 * time.Millisecond)); ran != 2 {
		t.Fatalf("first flush ran %d callbacks, want 2", ran)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.Flush(clk.Advance(16 * time.Millisecond))

	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue(nil)

	var ran []string
	var b FrameHandle
	a := q.RequestFrame(func(time.Time) {
		ran = append(ran, "a")
		q.CancelFrame(b)
	})
	b = q.RequestFrame(func(time.Time) { ran = append(ran, "b") })
	c := q.RequestFrame(func(time.Time) { ran = append(ran, "c") })
	q.CancelFrame(c)

	if !(a < b && b < c) {
		t.Errorf("handles not increasing: %d %d %d", a, b, c)
	}

	q.Flush(time.Now())
	if len(ran) != 1 || ran[0] != "a" {
		t.Errorf("ran = %v, want [a]", ran)
	}
}

func TestFrameClockDelta(t *testing.T) {
	clk := newManualClock()
	q := NewFrameQueue(clk.Now)
	c := NewFrameClock(q, 100*time.Millisecond)

	var dts []float64
	c.Start(func(dt float64) { dts = append(dts, dt) })

	q.Flush(clk.Advance(16 * time.Millisecond))
	q.Flush(clk.Advance(20 * time.Millisecond))
	q.Flush(clk.Advance(5 * time.Second)) // clamped

	want := []float64{16, 20, 100}
	if len(dts) != len(want) {
		t.Fatalf("dts = %v, want %v", dts, want)
	}
	for i := range want {
		if dts[i] != want[i] {
			t.Errorf("dt[%d] = %v, want %v", i, dts[i], want[i])
		}
	}
}

func TestFrameClockNoTickAfterStop(t *testing.T) {
	clk := newManualClock()
	q := NewFrameQueue(clk.Now)
	c := NewFrameClock(q, 0)

	ticks := 0
	c.Start(func(float64) { ticks++ })
	q.Flush(clk.Advance(16 * time.Millisecond))
	c.Stop()
	c.Stop()

	for i := 0; i < 5; i++ {
		q.Flush(clk.Advance(16 * time.Millisecond))
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d after stop, want 0", q.Pending())
	}
}

func TestFrameClockStopInsideTick(t *testing.T) {
	clk := newManualClock()
	q := NewFrameQueue(clk.Now)
	c := NewFrameClock(q, 0)

	ticks := 0
	c.Start(func(float64) {
		ticks++
		c.Stop()
	})
	for i := 0; i < 3; i++ {
		q.Flush(clk.Advance(16 * time.Millisecond))
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
	if c.Running() {
		t.Error("clock should be stopped")
	}
}

func TestFrameClockRestartDropsOldChain(t *testing.T) {
	clk := newManualClock()
	q := NewFrameQueue(clk.Now)
	c := NewFrameClock(q, 0)

	old, fresh := 0, 0
	c.Start(func(float64) { old++ })
	c.Start(func(float64) { fresh++ })

	for i := 0; i < 3; i++ {
		q.Flush(clk.Advance(16 * time.Millisecond))
	}
	if old != 0 || fresh != 3 {
		t.Errorf("old=%d fresh=%d, want 0 and 3", old, fresh)
	}
}
