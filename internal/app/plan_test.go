package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"studycompanion/internal/config"
	"studycompanion/internal/eventbus"
	"studycompanion/internal/session"
	"studycompanion/pkg/logx"
)

// testApp builds an App against a temp directory, without touching the
// real terminal or working directory.
func testApp(t *testing.T) (*App, *strings.Builder) {
	t.Helper()
	dir := t.TempDir()

	cfgm := config.NewManager(filepath.Join(dir, "config.yaml"))
	if _, err := cfgm.Load(); err != nil {
		t.Fatalf("config load: %v", err)
	}

	store, err := session.Open(session.Config{Path: filepath.Join(dir, "sessions.csv")}, logx.Nop())
	if err != nil {
		t.Fatalf("session open: %v", err)
	}

	var out strings.Builder
	return &App{
		cfgm:   cfgm,
		log:    logx.Nop(),
		bus:    eventbus.New(),
		store:  store,
		stdout: &out,
		stdin:  strings.NewReader(""),
	}, &out
}

func TestRunPlanPrintsAndExports(t *testing.T) {
	t.Parallel()

	a, out := testApp(t)
	ics := filepath.Join(t.TempDir(), "plan.ics")

	err := a.RunPlan(PlanOptions{
		TaskSpecs:    []string{"Essay:60:3", "Reading:40"},
		Start:        "18:00",
		TotalMinutes: 180,
		BreakMinutes: -1, // unset, use config default
		ExportPath:   ics,
	})
	if err != nil {
		t.Fatalf("RunPlan: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Essay", "Reading", "Break", "exported"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunPlanExplicitZeroBreak(t *testing.T) {
	t.Parallel()

	a, out := testApp(t)
	err := a.RunPlan(PlanOptions{
		TaskSpecs:    []string{"Essay:100"},
		Start:        "18:00",
		TotalMinutes: 180,
		BreakMinutes: 0, // explicitly break-less, not "use config"
		NoExport:     true,
	})
	if err != nil {
		t.Fatalf("RunPlan: %v", err)
	}
	if strings.Contains(out.String(), "Break") {
		t.Fatalf("break-less plan still contains breaks:\n%s", out.String())
	}
}

func TestRunPlanRequiresTasks(t *testing.T) {
	t.Parallel()

	a, _ := testApp(t)
	if err := a.RunPlan(PlanOptions{}); err == nil {
		t.Fatal("expected error with no tasks")
	}
}

func TestRunPlanRejectsBadTaskSpec(t *testing.T) {
	t.Parallel()

	a, _ := testApp(t)
	err := a.RunPlan(PlanOptions{TaskSpecs: []string{"Essay"}})
	if err == nil {
		t.Fatal("expected error for bad task spec")
	}
}

func TestRunPetEmptyLog(t *testing.T) {
	t.Parallel()

	a, out := testApp(t)
	if err := a.RunPet(context.Background()); err != nil {
		t.Fatalf("RunPet: %v", err)
	}
	if !strings.Contains(out.String(), "Level:  1") {
		t.Errorf("unexpected pet output:\n%s", out.String())
	}
}
