package scheduler

import (
	"reflect"
	"testing"
)

const tick = 1.0 / 60.0

func advanceTicks(s *Scheduler, n int) {
	for i := 0; i < n; i++ {
		s.Advance(tick)
	}
}

func TestAfterFiresOnceAtDeadline(t *testing.T) {
	s := New()
	calls := 0
	s.After(0, 1.0, func() { calls++ })

	advanceTicks(s, 59)
	if calls != 0 {
		t.Fatalf("fired too early: calls=%d at t=%.4f", calls, s.Now())
	}

	// 第 60 帧累计 1.0 秒（允许浮点误差）
	advanceTicks(s, 1)
	if calls != 1 {
		t.Fatalf("expected 1 call at 1s, got %d", calls)
	}

	advanceTicks(s, 120)
	if calls != 1 {
		t.Errorf("one-shot timer fired again: %d", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("queue should be empty, got %d", s.Pending())
	}
}

func TestFireOrderByDeadlineThenSchedulingOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(0, 0.5, func() { order = append(order, "b") })
	s.After(0, 0.2, func() { order = append(order, "a") })
	s.After(0, 0.5, func() { order = append(order, "c") })

	s.Advance(1.0)

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestEveryRepeatsAndCatchesUp(t *testing.T) {
	s := New()
	calls := 0
	s.Every(0, 0.5, func() { calls++ })

	s.Advance(2.0) // 0.5, 1.0, 1.5, 2.0
	if calls != 4 {
		t.Errorf("expected 4 calls in one large step, got %d", calls)
	}
}

func TestNowInsideCallbackIsDeadline(t *testing.T) {
	s := New()
	var seen float64
	s.After(0, 0.25, func() { seen = s.Now() })
	s.Advance(1.0)

	if seen != 0.25 {
		t.Errorf("Now() inside callback = %v, want 0.25", seen)
	}
	if s.Now() != 1.0 {
		t.Errorf("Now() after advance = %v, want 1.0", s.Now())
	}
}

func TestCancelInsideCallbackWinsOverPendingEntry(t *testing.T) {
	s := New()
	var later *Timer
	laterFired := false

	s.After(0, 0.1, func() { later.Cancel() })
	later = s.After(0, 0.1, func() { laterFired = true })

	s.Advance(0.1)
	if laterFired {
		t.Error("timer cancelled by an earlier callback in the same step must not fire")
	}
}

func TestPeriodicCancelsItself(t *testing.T) {
	s := New()
	calls := 0
	var timer *Timer
	timer = s.Every(0, 0.1, func() {
		calls++
		if calls == 3 {
			timer.Cancel()
		}
	})

	s.Advance(10)
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if timer.Active() {
		t.Error("cancelled timer should not be active")
	}
}

func TestCancelOwner(t *testing.T) {
	s := New()
	fired := map[Owner]int{}
	for _, owner := range []Owner{7, 7, 8} {
		o := owner
		s.Every(o, 0.5, func() { fired[o]++ })
	}
	s.After(7, 0.2, func() { fired[7] += 100 })

	if n := s.PendingFor(7); n != 3 {
		t.Fatalf("PendingFor(7) = %d, want 3", n)
	}
	if n := s.CancelOwner(7); n != 3 {
		t.Errorf("CancelOwner returned %d, want 3", n)
	}
	if n := s.CancelOwner(7); n != 0 {
		t.Errorf("second CancelOwner returned %d, want 0", n)
	}

	s.Advance(1.0)
	if fired[7] != 0 {
		t.Errorf("owner 7 timers should not fire, got %d", fired[7])
	}
	if fired[8] != 2 {
		t.Errorf("owner 8 timer should fire twice, got %d", fired[8])
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	s := New()
	timer := s.After(3, 1, func() {})
	timer.Cancel()
	timer.Cancel()

	var nilTimer *Timer
	nilTimer.Cancel()

	if s.Pending() != 0 || s.PendingFor(3) != 0 {
		t.Errorf("pending = %d / %d, want 0", s.Pending(), s.PendingFor(3))
	}
}

func TestInvalidIntervalsAreClamped(t *testing.T) {
	s := New()
	calls := 0
	s.Every(0, 0, func() { calls++ })
	s.After(0, -5, func() { calls += 1000 })

	s.Advance(0.01)
	if calls < 1000 {
		t.Errorf("negative delay should fire immediately, calls=%d", calls)
	}
	if calls-1000 != 10 {
		t.Errorf("zero interval should clamp to %v, got %d periodic calls", minInterval, calls-1000)
	}
}

func TestReset(t *testing.T) {
	s := New()
	fired := false
	timer := s.After(1, 0.5, func() { fired = true })
	s.Advance(0.2)

	s.Reset()
	s.Advance(1)

	if fired {
		t.Error("reset should drop pending timers")
	}
	if timer.Active() {
		t.Error("timer should be inactive after reset")
	}
	if s.Now() != 1 {
		t.Errorf("Now() = %v, want 1 after reset + advance", s.Now())
	}
}
