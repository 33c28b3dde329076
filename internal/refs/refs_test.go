package refs

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func newSet(n int) *Set {
	s := NewSet()
	for i := 0; i < n; i++ {
		s.Add(&Reference{Name: string(rune('a' + i))})
	}
	return s
}

func TestNextCyclesInOrder(t *testing.T) {
	s := newSet(3)

	want := []int{0, 1, 2, 0, 1}
	for step, w := range want {
		i, ok := s.Next()
		if !ok {
			t.Fatalf("step %d: Next reported no reference", step)
		}
		if i != w {
			t.Errorf("step %d: expected index %d, got %d", step, w, i)
		}
		s.SetCurrent(i)
	}
}

func TestNextSkipsDisabled(t *testing.T) {
	s := newSet(4)
	s.SetActive(1, false)
	s.SetActive(3, false)

	want := []int{0, 2, 0, 2}
	for step, w := range want {
		i, ok := s.Next()
		if !ok {
			t.Fatalf("step %d: Next reported no reference", step)
		}
		if i != w {
			t.Errorf("step %d: expected index %d, got %d", step, w, i)
		}
		s.SetCurrent(i)
	}

	// Re-enabling brings an index back into the cycle.
	s.SetActive(1, true)
	i, ok := s.Next()
	if !ok || i != 0 {
		t.Fatalf("expected index 0 after current 2, got %d ok=%v", i, ok)
	}
	s.SetCurrent(i)
	i, ok = s.Next()
	if !ok || i != 1 {
		t.Errorf("expected re-enabled index 1, got %d ok=%v", i, ok)
	}
}

func TestNextAllDisabled(t *testing.T) {
	s := newSet(2)
	s.SetActive(0, false)
	s.SetActive(1, false)

	if _, ok := s.Next(); ok {
		t.Error("expected no next reference when all are disabled")
	}

	// Also with a current reference set.
	s.SetActive(0, true)
	i, _ := s.Next()
	s.SetCurrent(i)
	s.SetActive(0, false)
	if _, ok := s.Next(); ok {
		t.Error("expected no next reference when all are disabled mid-cycle")
	}
}

func TestNextEmptySet(t *testing.T) {
	s := NewSet()
	if _, ok := s.Next(); ok {
		t.Error("expected no next reference in an empty set")
	}
	if s.Current() != nil {
		t.Error("expected nil current reference in an empty set")
	}
}

func TestTimerExpiry(t *testing.T) {
	base := time.Unix(100, 0)
	tm := NewTimer(3*time.Second, base)

	elapsed, expired := tm.Tick(base.Add(1 * time.Second))
	if expired {
		t.Error("timer expired too early")
	}
	if elapsed != 1*time.Second {
		t.Errorf("expected 1s elapsed, got %v", elapsed)
	}

	// Expiry advances the start by one interval, keeping the overshoot.
	elapsed, expired = tm.Tick(base.Add(3500 * time.Millisecond))
	if !expired {
		t.Error("expected timer to expire")
	}
	if elapsed != 500*time.Millisecond {
		t.Errorf("expected 500ms carried into next cycle, got %v", elapsed)
	}

	_, expired = tm.Tick(base.Add(4 * time.Second))
	if expired {
		t.Error("timer expired twice in one cycle")
	}
}

func TestTimerPausePreservesElapsed(t *testing.T) {
	base := time.Unix(100, 0)
	tm := NewTimer(10*time.Second, base)

	tm.SetPause(true, base.Add(4*time.Second))
	if !tm.IsPaused() {
		t.Fatal("expected paused timer")
	}

	// Elapsed freezes while paused.
	for _, at := range []time.Duration{5, 30, 300} {
		elapsed, expired := tm.Tick(base.Add(at * time.Second))
		if expired {
			t.Error("paused timer must not expire")
		}
		if elapsed != 4*time.Second {
			t.Errorf("expected frozen 4s elapsed, got %v", elapsed)
		}
	}

	// Resuming continues from where the pause left off.
	tm.SetPause(false, base.Add(60*time.Second))
	elapsed, expired := tm.Tick(base.Add(62 * time.Second))
	if expired {
		t.Error("timer expired right after resume")
	}
	if elapsed != 6*time.Second {
		t.Errorf("expected 6s elapsed after resume, got %v", elapsed)
	}
}

func TestTimerTogglePause(t *testing.T) {
	base := time.Unix(0, 0)
	tm := NewTimer(5*time.Second, base)

	tm.TogglePause(base.Add(time.Second))
	if !tm.IsPaused() {
		t.Error("expected paused after first toggle")
	}
	tm.TogglePause(base.Add(2 * time.Second))
	if tm.IsPaused() {
		t.Error("expected running after second toggle")
	}
}

func TestTimerAdjusting(t *testing.T) {
	base := time.Unix(0, 0)
	tm := NewTimer(3*time.Second, base)

	tm.SetAdjusting(true, base)
	if !tm.Adjusting() {
		t.Fatal("expected adjusting timer")
	}

	// While adjusting the readout shows the interval and never expires.
	elapsed, expired := tm.Tick(base.Add(time.Minute))
	if expired {
		t.Error("adjusting timer must not expire")
	}
	if elapsed != tm.Interval() {
		t.Errorf("expected interval %v shown while adjusting, got %v", tm.Interval(), elapsed)
	}

	tm.AdjustInterval(100) // +1s
	if tm.Interval() != 4*time.Second {
		t.Errorf("expected interval 4s after drag, got %v", tm.Interval())
	}

	tm.AdjustInterval(-100000)
	if tm.Interval() != 100*time.Millisecond {
		t.Errorf("expected interval clamped to 100ms, got %v", tm.Interval())
	}

	// Leaving adjustment restarts the countdown.
	tm.AdjustInterval(490) // back to 5s
	tm.SetAdjusting(false, base.Add(time.Minute))
	elapsed, expired = tm.Tick(base.Add(time.Minute + 2*time.Second))
	if expired {
		t.Error("timer expired right after adjustment ended")
	}
	if elapsed != 2*time.Second {
		t.Errorf("expected 2s elapsed after adjustment, got %v", elapsed)
	}
}

func TestTimerToggleHide(t *testing.T) {
	tm := NewTimer(time.Second, time.Unix(0, 0))
	if tm.Hidden() {
		t.Error("timer should start visible")
	}
	tm.ToggleHide()
	if !tm.Hidden() {
		t.Error("expected hidden after toggle")
	}
	tm.ToggleHide()
	if tm.Hidden() {
		t.Error("expected visible after second toggle")
	}
}

func TestRandomRotationIsUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		q := RandomRotation(rng)
		length := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
		if math.Abs(length-1) > 1e-5 {
			t.Fatalf("rotation %d not unit length: %v", i, length)
		}
	}
}
