package app

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

func TestParseClock(t *testing.T) {
	t.Parallel()

	got, err := parseClock("18:30", testNow)
	if err != nil {
		t.Fatalf("parseClock: %v", err)
	}
	want := time.Date(2025, 3, 12, 18, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"", "18", "24:00", "18:60", "ab:cd"} {
		if _, err := parseClock(bad, testNow); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseTaskSpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		spec     string
		taskName string
		minutes  int
		priority int
		deadline string // HH:MM, "" for none
		wantErr  bool
	}{
		{name: "name and minutes", spec: "Essay:90", taskName: "Essay", minutes: 90, priority: 1},
		{name: "with priority", spec: "Essay:90:3", taskName: "Essay", minutes: 90, priority: 3},
		{name: "with deadline", spec: "Essay:90:3:21:30", taskName: "Essay", minutes: 90, priority: 3, deadline: "21:30"},
		{name: "trims spaces", spec: " Math : 45 ", taskName: "Math", minutes: 45, priority: 1},
		{name: "missing minutes", spec: "Essay", wantErr: true},
		{name: "zero minutes", spec: "Essay:0", wantErr: true},
		{name: "bad priority", spec: "Essay:90:0", wantErr: true},
		{name: "bad deadline", spec: "Essay:90:3:25:00", wantErr: true},
		{name: "empty name", spec: ":90", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseTaskSpec(tc.spec, testNow)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTaskSpec(%q): %v", tc.spec, err)
			}
			if got.Name != tc.taskName || got.Duration != tc.minutes || got.Priority != tc.priority {
				t.Fatalf("got %+v", got)
			}
			if tc.deadline == "" {
				if got.Deadline != nil {
					t.Fatalf("unexpected deadline %v", got.Deadline)
				}
				return
			}
			want, err := parseClock(tc.deadline, testNow)
			if err != nil {
				t.Fatalf("parseClock(%q): %v", tc.deadline, err)
			}
			if got.Deadline == nil || !got.Deadline.Equal(want) {
				t.Fatalf("deadline = %v, want %v", got.Deadline, want)
			}
		})
	}
}
