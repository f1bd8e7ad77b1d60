package app

import (
	"fmt"
	"time"

	"studycompanion/internal/calendar"
	"studycompanion/internal/planner"
	"studycompanion/pkg/logx"
)

// PlanOptions are the plan command's flags. Zero fields fall back to
// the config file.
type PlanOptions struct {
	TaskSpecs    []string // name:minutes[:priority[:deadline]]
	Start        string   // HH:MM, today
	TotalMinutes int
	WorkBlockMax int
	BreakMinutes int // negative = use config, 0 = no breaks
	BusyPath     string // .ics with existing appointments
	ExportPath   string // .ics to write; "" disables export
	NoExport     bool
}

// RunPlan builds tonight's study schedule, prints it, and optionally
// exports it as an .ics calendar.
func (a *App) RunPlan(opts PlanOptions) error {
	cfg := a.Config()
	now := time.Now()

	if len(opts.TaskSpecs) == 0 {
		return fmt.Errorf("no tasks given, use -task name:minutes[:priority[:deadline]]")
	}
	tasks := make([]planner.Task, 0, len(opts.TaskSpecs))
	for _, spec := range opts.TaskSpecs {
		t, err := parseTaskSpec(spec, now)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
	}

	startStr := opts.Start
	if startStr == "" {
		startStr = cfg.Planner.Start
	}
	start, err := parseClock(startStr, now)
	if err != nil {
		return err
	}

	total := opts.TotalMinutes
	if total <= 0 {
		total = cfg.Planner.TotalMinutes
	}
	popts := planner.Options{
		WorkBlockMax: opts.WorkBlockMax,
		BreakMinutes: opts.BreakMinutes,
	}
	if popts.WorkBlockMax <= 0 {
		popts.WorkBlockMax = cfg.Planner.WorkBlockMax
	}
	// -break is a tri-state flag: negative means unset (use config),
	// zero asks for a break-less plan.
	switch {
	case opts.BreakMinutes < 0:
		popts.BreakMinutes = cfg.Planner.BreakMinutes
	case opts.BreakMinutes == 0:
		popts.BreakMinutes = -1
	}

	busyPath := opts.BusyPath
	if busyPath == "" {
		busyPath = cfg.Calendar.BusyPath
	}
	var busy []planner.BusyInterval
	if busyPath != "" {
		busy, err = calendar.ReadBusy(busyPath, now)
		if err != nil {
			return fmt.Errorf("reading busy calendar: %w", err)
		}
		a.log.Debug("busy calendar loaded",
			logx.String("path", busyPath), logx.Int("intervals", len(busy)))
	}

	blocks := planner.BuildSchedule(tasks, start, total, popts, busy)
	a.printSchedule(blocks, start, total)
	if len(blocks) == 0 {
		return nil
	}

	if opts.NoExport {
		return nil
	}
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = cfg.Calendar.ExportPath
	}
	if exportPath == "" {
		return nil
	}
	if err := calendar.WriteSchedule(exportPath, blocks); err != nil {
		return fmt.Errorf("exporting schedule: %w", err)
	}
	fmt.Fprintf(a.stdout, "\nSchedule exported to %s\n", exportPath)
	return nil
}

func (a *App) printSchedule(blocks []planner.Block, start time.Time, total int) {
	if len(blocks) == 0 {
		fmt.Fprintln(a.stdout, "Nothing to schedule.")
		return
	}
	fmt.Fprintf(a.stdout, "Study plan for %s, starting %s (%d min window)\n\n",
		start.Format("Mon Jan 2"), start.Format("15:04"), total)
	for _, b := range blocks {
		marker := " "
		if b.IsBreak() {
			marker = "*"
		}
		fmt.Fprintf(a.stdout, " %s %s - %s  %s (%d min)\n",
			marker, b.Start.Format("15:04"), b.End.Format("15:04"), b.Label, b.Minutes())
	}
}
