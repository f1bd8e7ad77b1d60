package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"studycompanion/internal/analytics"
	"studycompanion/internal/config"
	"studycompanion/internal/eventbus"
	"studycompanion/internal/notify"
	"studycompanion/internal/pomodoro"
	"studycompanion/internal/session"
	"studycompanion/pkg/logx"
)

// PomodoroOptions are the pomodoro command's flags. Zero fields fall
// back to the config file.
type PomodoroOptions struct {
	TaskName     string
	WorkMinutes  int
	BreakMinutes int // negative = use config, 0 = no breaks
	Cycles       int
	Demo         bool
	NoLog        bool
	Chart        bool // render a work/break pie for this session
}

// resolvePomodoroConfig merges flag values with config defaults.
func resolvePomodoroConfig(opts PomodoroOptions, cfg *config.Config) pomodoro.Config {
	pcfg := pomodoro.Config{
		TaskName:     opts.TaskName,
		WorkMinutes:  opts.WorkMinutes,
		BreakMinutes: opts.BreakMinutes,
		Cycles:       opts.Cycles,
		DemoMode:     opts.Demo,
	}
	if pcfg.WorkMinutes <= 0 {
		pcfg.WorkMinutes = cfg.Pomodoro.WorkMinutes
	}
	// An explicit 0 means a break-less session; only negative falls back.
	if pcfg.BreakMinutes < 0 {
		pcfg.BreakMinutes = cfg.Pomodoro.BreakMinutes
	}
	if pcfg.Cycles <= 0 {
		pcfg.Cycles = cfg.Pomodoro.Cycles
	}
	return pcfg
}

// RunPomodoro runs a timed session and appends the outcome to the
// session log. An interrupted session still logs whatever cycles
// completed.
func (a *App) RunPomodoro(ctx context.Context, opts PomodoroOptions) error {
	cfg := a.Config()

	pcfg := resolvePomodoroConfig(opts, cfg)

	// Phase transitions go over the bus and out through the notifier,
	// so cycle changes are visible (and audible with notify.bell) even
	// when the progress log is quiet.
	notif := notify.New(cfg.Notify, a.log.With(logx.String("comp", "notify")), a.stdout)
	notif.Start(ctx)
	events, unsub := a.bus.Subscribe(16)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		forwardPhases(events, notif)
	}()

	runner := pomodoro.NewRunner(a.log.With(logx.String("comp", "pomodoro")), a.bus)
	res := runner.Run(ctx, pcfg)

	unsub()
	<-forwarded
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	notif.Stop(stopCtx)
	cancel()

	fmt.Fprintf(a.stdout, "\nSession finished: %s, %d cycle(s), %d min work, %d min break\n",
		res.TaskName, res.CyclesCompleted, res.WorkMinutes(), res.BreakMinutes())

	if opts.Chart && res.CyclesCompleted > 0 {
		path := filepath.Join(cfg.Analytics.ChartDir, "session_pie.png")
		if err := analytics.RenderSessionPie(res.TaskName, res.WorkMinutes(), res.BreakMinutes(), path); err != nil {
			a.log.Warn("session chart failed", logx.Err(err))
		} else {
			fmt.Fprintf(a.stdout, "Session chart written: %s\n", path)
		}
	}

	if opts.NoLog || res.CyclesCompleted == 0 {
		return nil
	}
	sess := session.Session{
		Date:            res.StartedAt,
		TaskName:        res.TaskName,
		CyclesCompleted: res.CyclesCompleted,
		WorkMinutes:     res.WorkMinutes(),
		BreakMinutes:    res.BreakMinutes(),
		StartedAt:       res.StartedAt,
		FinishedAt:      res.FinishedAt,
	}
	if err := a.store.Append(context.Background(), sess); err != nil {
		return fmt.Errorf("logging session: %w", err)
	}
	fmt.Fprintf(a.stdout, "Logged to %s\n", a.store.Path())
	return nil
}

// forwardPhases relays pomodoro phase events into the notifier until
// the subscription channel closes.
func forwardPhases(events <-chan eventbus.Event, notif *notify.Service) {
	for e := range events {
		if title, msg, ok := phaseMessage(e); ok {
			_ = notif.Notify(title, msg)
		}
	}
}

// phaseMessage maps a pomodoro bus event to a notification line.
func phaseMessage(e eventbus.Event) (title, message string, ok bool) {
	pe, isPhase := e.Data.(pomodoro.PhaseEvent)
	if !isPhase {
		return "", "", false
	}
	switch e.Type {
	case pomodoro.EventWorkStart:
		return pe.TaskName, fmt.Sprintf("Focus time: cycle %d/%d, %d min", pe.Cycle, pe.Cycles, pe.Minutes), true
	case pomodoro.EventWorkEnd:
		return pe.TaskName, fmt.Sprintf("Work interval done (cycle %d/%d)", pe.Cycle, pe.Cycles), true
	case pomodoro.EventBreakStart:
		return pe.TaskName, fmt.Sprintf("Break: %d min", pe.Minutes), true
	case pomodoro.EventBreakEnd:
		return pe.TaskName, "Break over, back to work", true
	case pomodoro.EventDone:
		return pe.TaskName, fmt.Sprintf("Session done: %d cycle(s), %d min of focus", pe.Cycle, pe.Minutes), true
	default:
		return "", "", false
	}
}
