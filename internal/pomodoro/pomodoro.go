// Package pomodoro runs work/break interval timer sessions.
//
// A session is a fixed number of cycles, each a work interval followed
// by a break (no break after the final cycle). Durations are logical
// minutes; demo mode caps the real sleeps so a session can be exercised
// quickly while the logged totals stay correct.
package pomodoro

import (
	"context"
	"time"

	"studycompanion/internal/eventbus"
	logx "studycompanion/pkg/logx"
)

// Bus event types published on phase transitions.
const (
	EventWorkStart  = "pomodoro.work.start"
	EventWorkEnd    = "pomodoro.work.end"
	EventBreakStart = "pomodoro.break.start"
	EventBreakEnd   = "pomodoro.break.end"
	EventDone       = "pomodoro.done"
)

// PhaseEvent is the payload carried by phase transition events.
type PhaseEvent struct {
	TaskName string
	Cycle    int
	Cycles   int
	Minutes  int
}

// Config describes one session.
//
// Defaults (when fields are omitted/zero):
//   - work_minutes: 25
//   - break_minutes: 5
//   - cycles: 4
type Config struct {
	TaskName     string
	WorkMinutes  int
	BreakMinutes int
	Cycles       int

	// DemoMode caps each real sleep at one second. Logical durations
	// (what gets logged) are unaffected.
	DemoMode bool
}

func (c Config) withDefaults() Config {
	if c.TaskName == "" {
		c.TaskName = "Unnamed task"
	}
	if c.WorkMinutes <= 0 {
		c.WorkMinutes = 25
	}
	if c.BreakMinutes < 0 {
		c.BreakMinutes = 0
	}
	if c.Cycles <= 0 {
		c.Cycles = 4
	}
	return c
}

// Result summarizes a completed (or interrupted) session.
// Totals are logical durations, not wall-clock time.
type Result struct {
	TaskName        string
	CyclesCompleted int
	TotalWork       time.Duration
	TotalBreak      time.Duration
	StartedAt       time.Time
	FinishedAt      time.Time
}

func (r Result) WorkMinutes() int  { return int(r.TotalWork / time.Minute) }
func (r Result) BreakMinutes() int { return int(r.TotalBreak / time.Minute) }

// Runner executes sessions. The sleep and clock hooks exist so tests can
// run without real time passing.
type Runner struct {
	log logx.Logger
	bus eventbus.Bus

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

func NewRunner(log logx.Logger, bus eventbus.Bus) *Runner {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Runner{
		log:   log,
		bus:   bus,
		sleep: sleepCtx,
		now:   time.Now,
	}
}

// Run executes the session. Cancelling the context ends the session
// early; intervals cut short by cancellation are not counted, matching
// the "interrupted cycle doesn't count" rule.
func (r *Runner) Run(ctx context.Context, cfg Config) Result {
	cfg = cfg.withDefaults()

	r.log.Info("pomodoro session starting",
		logx.String("task", cfg.TaskName),
		logx.Int("work_min", cfg.WorkMinutes),
		logx.Int("break_min", cfg.BreakMinutes),
		logx.Int("cycles", cfg.Cycles),
		logx.Bool("demo", cfg.DemoMode),
	)

	startedAt := r.now()
	var totalWork, totalBreak time.Duration
	completed := 0

	for cycle := 1; cycle <= cfg.Cycles; cycle++ {
		r.publish(EventWorkStart, PhaseEvent{cfg.TaskName, cycle, cfg.Cycles, cfg.WorkMinutes})
		d, err := r.runInterval(ctx, "work", cfg.WorkMinutes, cfg.DemoMode)
		if err != nil {
			r.log.Warn("pomodoro session interrupted",
				logx.String("task", cfg.TaskName), logx.Int("cycle", cycle))
			break
		}
		totalWork += d
		r.publish(EventWorkEnd, PhaseEvent{cfg.TaskName, cycle, cfg.Cycles, cfg.WorkMinutes})

		if cycle < cfg.Cycles && cfg.BreakMinutes > 0 {
			r.publish(EventBreakStart, PhaseEvent{cfg.TaskName, cycle, cfg.Cycles, cfg.BreakMinutes})
			d, err := r.runInterval(ctx, "break", cfg.BreakMinutes, cfg.DemoMode)
			if err != nil {
				r.log.Warn("pomodoro session interrupted",
					logx.String("task", cfg.TaskName), logx.Int("cycle", cycle))
				break
			}
			totalBreak += d
			r.publish(EventBreakEnd, PhaseEvent{cfg.TaskName, cycle, cfg.Cycles, cfg.BreakMinutes})
		}
		completed++
	}

	result := Result{
		TaskName:        cfg.TaskName,
		CyclesCompleted: completed,
		TotalWork:       totalWork,
		TotalBreak:      totalBreak,
		StartedAt:       startedAt,
		FinishedAt:      r.now(),
	}

	r.publish(EventDone, PhaseEvent{cfg.TaskName, completed, cfg.Cycles, result.WorkMinutes()})
	r.log.Info("pomodoro session finished",
		logx.String("task", result.TaskName),
		logx.Int("cycles_completed", result.CyclesCompleted),
		logx.Int("work_min", result.WorkMinutes()),
		logx.Int("break_min", result.BreakMinutes()),
	)
	return result
}

// runInterval runs one work or break interval with a handful of coarse
// progress log lines (not one per second). It returns the logical
// duration; an interval cut short by cancellation returns an error and
// counts for nothing.
func (r *Runner) runInterval(ctx context.Context, label string, minutes int, demo bool) (time.Duration, error) {
	if minutes <= 0 {
		return 0, nil
	}
	logical := time.Duration(minutes) * time.Minute
	step := logical / 5
	if step <= 0 {
		step = logical
	}

	remaining := logical
	for remaining > 0 {
		d := step
		if d > remaining {
			d = remaining
		}
		real := d
		if demo && real > time.Second {
			real = time.Second
		}
		if err := r.sleep(ctx, real); err != nil {
			return 0, err
		}
		remaining -= d
		if remaining > 0 {
			r.log.Info(label+" interval progress", logx.Duration("remaining", remaining))
		}
	}
	r.log.Info(label + " interval finished")
	return logical, nil
}

func (r *Runner) publish(typ string, payload PhaseEvent) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(eventbus.Event{Type: typ, Data: payload})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
