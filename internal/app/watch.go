package app

import (
	"context"
	"fmt"
	"time"

	"studycompanion/internal/notify"
	"studycompanion/internal/reminders"
	"studycompanion/pkg/logx"
)

// RunWatch runs the long-lived reminder mode: the cron scheduler fires
// configured reminders through the terminal notifier until the context
// is cancelled. The config file is watched and changes to logging,
// notify, and reminder settings apply without a restart.
func (a *App) RunWatch(ctx context.Context) error {
	cfg := a.Config()
	if !cfg.Reminders.Enabled {
		return fmt.Errorf("reminders are disabled, set reminders.enabled: true in %s", a.cfgm.Path())
	}
	if len(cfg.Reminders.Reminders) == 0 {
		a.log.Warn("no reminders configured, watch will idle")
	}

	notif := notify.New(cfg.Notify, a.log.With(logx.String("comp", "notify")), a.stdout)
	notif.Start(ctx)

	rem := reminders.New(cfg.Reminders,
		a.log.With(logx.String("comp", "reminders")),
		func(name, message string) { _ = notif.Notify(name, message) })
	rem.Start()

	// Hot reload: re-apply the pieces that can change at runtime.
	sub := a.cfgm.Subscribe(1)
	defer a.cfgm.Unsubscribe(sub)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case next, ok := <-sub:
				if !ok {
					return
				}
				a.logs.Apply(logx.Config{
					Level:   next.Logging.Level,
					Console: next.Logging.Console,
					File: logx.FileConfig{
						Enabled: next.Logging.File.Enabled,
						Path:    next.Logging.File.Path,
					},
				})
				notif.Apply(next.Notify)
				rem.Apply(next.Reminders)
				a.log.Info("config reloaded", logx.Int("reminders", len(next.Reminders.Reminders)))
			}
		}
	}()
	go func() {
		if err := a.cfgm.Watch(ctx); err != nil && ctx.Err() == nil {
			a.log.Warn("config watch stopped", logx.Err(err))
		}
	}()

	fmt.Fprintf(a.stdout, "Watching reminders (%d configured). Ctrl-C to stop.\n",
		len(cfg.Reminders.Reminders))
	for _, e := range rem.Snapshot() {
		fmt.Fprintf(a.stdout, "  %-20s %-16s next %s\n",
			e.Name, e.Spec, e.Next.Format("15:04:05"))
	}

	<-ctx.Done()

	rem.Stop()
	stopCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	notif.Stop(stopCtx)
	return nil
}
