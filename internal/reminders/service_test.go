package reminders

import (
	"sync"
	"testing"

	"studycompanion/internal/config"
	"studycompanion/pkg/logx"
)

func TestStartRegistersValidReminders(t *testing.T) {
	t.Parallel()

	cfg := config.RemindersConfig{
		Enabled: true,
		Reminders: []config.Reminder{
			{Name: "evening", Schedule: "0 18 * * *", Message: "Evening review"},
			{Name: "hydrate", Schedule: "45m", Message: "Drink water"},
			{Name: "broken", Schedule: "not-a-schedule", Message: "never fires"},
			{Name: "", Schedule: "10m", Message: "nameless"},
		},
	}

	s := New(cfg, logx.Nop(), nil)
	s.Start()
	defer s.Stop()

	entries := s.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("registered %d reminders, want 2: %+v", len(entries), entries)
	}
	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
		if e.Next.IsZero() {
			t.Errorf("reminder %q has no next fire time", e.Name)
		}
	}
	if byName["evening"].Spec != "0 18 * * *" {
		t.Errorf("evening spec = %q", byName["evening"].Spec)
	}
	if byName["hydrate"].Spec != "@every 45m0s" {
		t.Errorf("hydrate spec = %q", byName["hydrate"].Spec)
	}
}

func TestApplySwapsReminderSet(t *testing.T) {
	t.Parallel()

	s := New(config.RemindersConfig{
		Enabled:   true,
		Reminders: []config.Reminder{{Name: "old", Schedule: "10m"}},
	}, logx.Nop(), nil)
	s.Start()
	defer s.Stop()

	s.Apply(config.RemindersConfig{
		Enabled: true,
		Reminders: []config.Reminder{
			{Name: "new-a", Schedule: "20m"},
			{Name: "new-b", Schedule: "@hourly"},
		},
	})

	entries := s.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("registered %d reminders after Apply, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Name == "old" {
			t.Fatal("old reminder survived Apply")
		}
	}
}

func TestFireUsesNotify(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var gotName, gotMsg string
	s := New(config.RemindersConfig{}, logx.Nop(), func(name, message string) {
		mu.Lock()
		defer mu.Unlock()
		gotName, gotMsg = name, message
	})

	s.fire("evening", "")
	mu.Lock()
	defer mu.Unlock()
	if gotName != "evening" {
		t.Fatalf("name = %q", gotName)
	}
	if gotMsg != "Time to study!" {
		t.Fatalf("message = %q, want default", gotMsg)
	}
}
