package pomodoro

import (
	"context"
	"errors"
	"testing"
	"time"

	"studycompanion/internal/eventbus"
	logx "studycompanion/pkg/logx"
)

// fakeSleep records requested sleeps without waiting.
type fakeSleep struct {
	calls []time.Duration
	failAfter int // return ctx-style error after this many calls; 0 = never
}

func (f *fakeSleep) sleep(ctx context.Context, d time.Duration) error {
	f.calls = append(f.calls, d)
	if f.failAfter > 0 && len(f.calls) >= f.failAfter {
		return context.Canceled
	}
	return nil
}

func testRunner(bus eventbus.Bus, fs *fakeSleep) *Runner {
	r := NewRunner(logx.Nop(), bus)
	r.sleep = fs.sleep
	base := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	calls := 0
	r.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return r
}

func TestRunCompletesAllCycles(t *testing.T) {
	t.Parallel()
	fs := &fakeSleep{}
	r := testRunner(nil, fs)

	res := r.Run(context.Background(), Config{
		TaskName:     "Biochem",
		WorkMinutes:  25,
		BreakMinutes: 5,
		Cycles:       3,
	})

	if res.CyclesCompleted != 3 {
		t.Fatalf("CyclesCompleted = %d, want 3", res.CyclesCompleted)
	}
	if res.WorkMinutes() != 75 {
		t.Fatalf("WorkMinutes = %d, want 75", res.WorkMinutes())
	}
	// Breaks only between cycles, never after the last one.
	if res.BreakMinutes() != 10 {
		t.Fatalf("BreakMinutes = %d, want 10", res.BreakMinutes())
	}
	if !res.FinishedAt.After(res.StartedAt) {
		t.Fatalf("FinishedAt %v not after StartedAt %v", res.FinishedAt, res.StartedAt)
	}
}

func TestRunDefaults(t *testing.T) {
	t.Parallel()
	fs := &fakeSleep{}
	r := testRunner(nil, fs)

	res := r.Run(context.Background(), Config{})
	if res.TaskName != "Unnamed task" {
		t.Fatalf("TaskName = %q", res.TaskName)
	}
	if res.CyclesCompleted != 4 || res.WorkMinutes() != 100 || res.BreakMinutes() != 15 {
		t.Fatalf("defaults not applied: %+v", res)
	}
}

func TestRunInterruptedMidWork(t *testing.T) {
	t.Parallel()
	// First cycle: 5 work sleeps + 5 break sleeps. Fail during the second
	// cycle's work interval: only the first cycle counts.
	fs := &fakeSleep{failAfter: 12}
	r := testRunner(nil, fs)

	res := r.Run(context.Background(), Config{
		TaskName:     "Essay",
		WorkMinutes:  25,
		BreakMinutes: 5,
		Cycles:       4,
	})

	if res.CyclesCompleted != 1 {
		t.Fatalf("CyclesCompleted = %d, want 1", res.CyclesCompleted)
	}
	if res.WorkMinutes() != 25 || res.BreakMinutes() != 5 {
		t.Fatalf("totals = %d/%d, want 25/5", res.WorkMinutes(), res.BreakMinutes())
	}
}

func TestRunDemoModeCapsRealSleeps(t *testing.T) {
	t.Parallel()
	fs := &fakeSleep{}
	r := testRunner(nil, fs)

	res := r.Run(context.Background(), Config{
		TaskName:    "Quick demo",
		WorkMinutes: 25,
		Cycles:      1,
		DemoMode:    true,
	})

	for i, d := range fs.calls {
		if d > time.Second {
			t.Fatalf("sleep %d = %v, want <= 1s in demo mode", i, d)
		}
	}
	// Logical totals are unaffected by the capped sleeps.
	if res.WorkMinutes() != 25 {
		t.Fatalf("WorkMinutes = %d, want 25", res.WorkMinutes())
	}
}

func TestRunPublishesPhaseEvents(t *testing.T) {
	t.Parallel()
	bus := eventbus.New()
	ch, unsub := bus.Subscribe(64)
	defer unsub()

	fs := &fakeSleep{}
	r := testRunner(bus, fs)
	r.Run(context.Background(), Config{TaskName: "Reading", WorkMinutes: 10, BreakMinutes: 2, Cycles: 2})

	var types []string
	for {
		select {
		case ev := <-ch:
			types = append(types, ev.Type)
			continue
		default:
		}
		break
	}

	want := []string{
		EventWorkStart, EventWorkEnd,
		EventBreakStart, EventBreakEnd,
		EventWorkStart, EventWorkEnd,
		EventDone,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(types), types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestRunCancelledContextStopsQuickly(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(logx.Nop(), nil)
	// Real sleep hook: a cancelled context must return immediately.
	done := make(chan Result, 1)
	go func() { done <- r.Run(ctx, Config{TaskName: "X", WorkMinutes: 25, Cycles: 4}) }()

	select {
	case res := <-done:
		if res.CyclesCompleted != 0 {
			t.Fatalf("CyclesCompleted = %d, want 0", res.CyclesCompleted)
		}
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Fatalf("unexpected ctx err: %v", ctx.Err())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
