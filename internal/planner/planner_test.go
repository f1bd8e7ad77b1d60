package planner

import (
	"testing"
	"time"
)

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		t.Fatalf("bad time %q: %v", hhmm, err)
	}
	return time.Date(2025, time.March, 10, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func wantBlocks(t *testing.T, got []Block, want [][3]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		start, end := at(t, w[0]), at(t, w[1])
		if !got[i].Start.Equal(start) || !got[i].End.Equal(end) || got[i].Label != w[2] {
			t.Fatalf("block %d = %s-%s %q, want %s-%s %q",
				i, got[i].Start.Format("15:04"), got[i].End.Format("15:04"), got[i].Label,
				w[0], w[1], w[2])
		}
	}
}

func TestBuildScheduleExampleEvening(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		{Name: "Biochem exam review", Duration: 90, Priority: 5},
		{Name: "Chinese translation homework", Duration: 60, Priority: 3},
		{Name: "Alternative Energy reading", Duration: 45, Priority: 2},
	}

	got := BuildSchedule(tasks, at(t, "18:00"), 180, Options{}, nil)

	// The highest priority task is drained first in 50-minute blocks with
	// breaks only while it still has time left; the last task only gets
	// whatever the window has left.
	wantBlocks(t, got, [][3]string{
		{"18:00", "18:50", "Biochem exam review"},
		{"18:50", "19:00", BreakLabel},
		{"19:00", "19:40", "Biochem exam review"},
		{"19:40", "20:30", "Chinese translation homework"},
		{"20:30", "20:40", BreakLabel},
		{"20:40", "20:50", "Chinese translation homework"},
		{"20:50", "21:00", "Alternative Energy reading"},
	})
}

func TestBuildScheduleBreaksDisabled(t *testing.T) {
	t.Parallel()
	got := BuildSchedule(
		[]Task{{Name: "Essay", Duration: 100, Priority: 1}},
		at(t, "18:00"), 180, Options{BreakMinutes: -1}, nil,
	)
	wantBlocks(t, got, [][3]string{
		{"18:00", "18:50", "Essay"},
		{"18:50", "19:40", "Essay"},
	})
}

func TestBuildScheduleSingleTaskExactWindow(t *testing.T) {
	t.Parallel()
	got := BuildSchedule([]Task{{Name: "Reading", Duration: 30, Priority: 1}}, at(t, "18:00"), 30, Options{}, nil)
	wantBlocks(t, got, [][3]string{{"18:00", "18:30", "Reading"}})
}

func TestBuildScheduleCursorJumpsPastCoveringConflict(t *testing.T) {
	t.Parallel()
	busy := []BusyInterval{{Start: at(t, "18:00"), End: at(t, "18:10")}}
	got := BuildSchedule(
		[]Task{{Name: "Essay", Duration: 60, Priority: 1}},
		at(t, "18:00"), 180, Options{WorkBlockMax: 60}, busy,
	)
	wantBlocks(t, got, [][3]string{{"18:10", "19:10", "Essay"}})
}

func TestBuildScheduleProbesPastFutureConflict(t *testing.T) {
	t.Parallel()
	// The cursor itself is free but every tentative block clips into the
	// meeting, so the cursor probes forward in 5-minute steps until it
	// lands inside the conflict and jumps past it.
	busy := []BusyInterval{{Start: at(t, "18:30"), End: at(t, "18:40")}}
	got := BuildSchedule(
		[]Task{{Name: "Problem set", Duration: 60, Priority: 1}},
		at(t, "18:00"), 180, Options{}, busy,
	)
	wantBlocks(t, got, [][3]string{
		{"18:40", "19:30", "Problem set"},
		{"19:30", "19:40", BreakLabel},
		{"19:40", "19:50", "Problem set"},
	})
}

func TestBuildScheduleEmptyInputs(t *testing.T) {
	t.Parallel()
	if got := BuildSchedule(nil, at(t, "18:00"), 180, Options{}, nil); got != nil {
		t.Fatalf("empty task list: got %+v, want nil", got)
	}
	tasks := []Task{{Name: "A", Duration: 30, Priority: 1}}
	if got := BuildSchedule(tasks, at(t, "18:00"), 0, Options{}, nil); got != nil {
		t.Fatalf("zero window: got %+v, want nil", got)
	}
	if got := BuildSchedule(tasks, at(t, "18:00"), -30, Options{}, nil); got != nil {
		t.Fatalf("negative window: got %+v, want nil", got)
	}
}

func TestBuildScheduleOrdering(t *testing.T) {
	t.Parallel()
	d1 := at(t, "20:00")
	d2 := at(t, "22:00")
	tests := []struct {
		name  string
		tasks []Task
		first string
	}{
		{
			name: "priority wins",
			tasks: []Task{
				{Name: "Low", Duration: 30, Priority: 1},
				{Name: "High", Duration: 30, Priority: 9},
			},
			first: "High",
		},
		{
			name: "earlier deadline breaks priority tie",
			tasks: []Task{
				{Name: "Later", Duration: 30, Priority: 3, Deadline: &d2},
				{Name: "Sooner", Duration: 30, Priority: 3, Deadline: &d1},
			},
			first: "Sooner",
		},
		{
			name: "missing deadline sorts last",
			tasks: []Task{
				{Name: "Open ended", Duration: 30, Priority: 3},
				{Name: "Dated", Duration: 30, Priority: 3, Deadline: &d2},
			},
			first: "Dated",
		},
		{
			name: "name is the final tie-break",
			tasks: []Task{
				{Name: "Zeta", Duration: 30, Priority: 3},
				{Name: "Alpha", Duration: 30, Priority: 3},
			},
			first: "Alpha",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BuildSchedule(tt.tasks, at(t, "18:00"), 300, Options{}, nil)
			if len(got) == 0 {
				t.Fatal("no blocks produced")
			}
			if got[0].Label != tt.first {
				t.Fatalf("first block label = %q, want %q", got[0].Label, tt.first)
			}
		})
	}
}

func TestBuildScheduleInvariants(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		{Name: "Biochem", Duration: 95, Priority: 5},
		{Name: "Chinese", Duration: 40, Priority: 4},
		{Name: "Reading", Duration: 120, Priority: 1},
	}
	busy := []BusyInterval{
		{Start: at(t, "18:20"), End: at(t, "18:45")},
		{Start: at(t, "20:00"), End: at(t, "20:15")},
	}
	opts := Options{WorkBlockMax: 45, BreakMinutes: 5}
	start := at(t, "18:00")
	const total = 240

	got := BuildSchedule(tasks, start, total, opts, busy)
	if len(got) == 0 {
		t.Fatal("no blocks produced")
	}

	windowEnd := start.Add(total * time.Minute)
	perTask := map[string]int{}
	for i, b := range got {
		if !b.End.After(b.Start) {
			t.Fatalf("block %d has non-positive length: %+v", i, b)
		}
		if b.Start.Before(start) || b.End.After(windowEnd) {
			t.Fatalf("block %d escapes the window: %+v", i, b)
		}
		if i > 0 && got[i].Start.Before(got[i-1].End) {
			t.Fatalf("blocks %d and %d overlap: %+v %+v", i-1, i, got[i-1], got[i])
		}
		if !b.IsBreak() {
			if b.Minutes() > opts.WorkBlockMax {
				t.Fatalf("work block %d exceeds max length: %+v", i, b)
			}
			for _, bz := range busy {
				if bz.Overlaps(b.Start, b.End) {
					t.Fatalf("work block %d overlaps busy interval %+v: %+v", i, bz, b)
				}
			}
			perTask[b.Label] += b.Minutes()
		}
	}
	for _, task := range tasks {
		if perTask[task.Name] > task.Duration {
			t.Fatalf("task %q got %d minutes, declared %d", task.Name, perTask[task.Name], task.Duration)
		}
	}
}

func TestBuildScheduleDeterministic(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		{Name: "B", Duration: 70, Priority: 2},
		{Name: "A", Duration: 70, Priority: 2},
		{Name: "C", Duration: 30, Priority: 5},
	}
	busy := []BusyInterval{{Start: at(t, "19:00"), End: at(t, "19:20")}}

	first := BuildSchedule(tasks, at(t, "18:00"), 200, Options{}, busy)
	for run := 0; run < 5; run++ {
		again := BuildSchedule(tasks, at(t, "18:00"), 200, Options{}, busy)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d blocks, want %d", run, len(again), len(first))
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d: block %d = %+v, want %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestBuildScheduleInputNotMutated(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		{Name: "Z", Duration: 30, Priority: 1},
		{Name: "A", Duration: 30, Priority: 9},
	}
	_ = BuildSchedule(tasks, at(t, "18:00"), 120, Options{}, nil)
	if tasks[0].Name != "Z" || tasks[1].Name != "A" {
		t.Fatalf("input slice was reordered: %+v", tasks)
	}
}

func TestBuildScheduleBusyBeyondWindow(t *testing.T) {
	t.Parallel()
	// A conflict that swallows the rest of the window must terminate the
	// build instead of probing forever.
	busy := []BusyInterval{{Start: at(t, "18:10"), End: at(t, "23:00")}}
	got := BuildSchedule(
		[]Task{{Name: "Essay", Duration: 60, Priority: 1}},
		at(t, "18:00"), 60, Options{}, busy,
	)
	if len(got) != 0 {
		t.Fatalf("expected no blocks, got %+v", got)
	}
}
