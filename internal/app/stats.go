package app

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"studycompanion/internal/analytics"
	"studycompanion/internal/session"
)

// StatsOptions are the stats command's flags.
type StatsOptions struct {
	Charts   bool
	ChartDir string

	// Demo seeds the session log with generated history when the log is
	// empty, so the dashboard has something to show.
	Demo     bool
	DemoDays int
}

// RunStats prints the analytics dashboard and optionally renders PNG
// charts next to it.
func (a *App) RunStats(ctx context.Context, opts StatsOptions) error {
	cfg := a.Config()

	sessions, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	if opts.Demo && len(sessions) == 0 {
		days := opts.DemoDays
		if days <= 0 {
			days = 14
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		demo := session.GenerateDemo(rng, time.Now(), days, 3)
		for _, s := range demo {
			if err := a.store.Append(ctx, s); err != nil {
				return fmt.Errorf("seeding demo sessions: %w", err)
			}
		}
		sessions = demo
		fmt.Fprintf(a.stdout, "Seeded %d demo sessions into %s\n\n", len(demo), a.store.Path())
	}

	if len(sessions) == 0 {
		fmt.Fprintln(a.stdout, "No sessions logged yet. Run a pomodoro first (or stats -demo).")
		return nil
	}

	now := time.Now()
	sum := analytics.Summarize(sessions, now)

	fmt.Fprintf(a.stdout, "Study stats (%d sessions)\n\n", sum.Sessions)
	fmt.Fprintf(a.stdout, "  Today:        %d min\n", sum.TodayMinutes)
	fmt.Fprintf(a.stdout, "  This week:    %d min\n", sum.WeekMinutes)
	fmt.Fprintf(a.stdout, "  All time:     %d min\n", sum.AllTimeMinutes)
	fmt.Fprintf(a.stdout, "  Streak:       %d day(s)\n", sum.StreakDays)
	fmt.Fprintf(a.stdout, "  Avg session:  %.1f min\n", sum.AvgWorkMinutes)
	if sum.CommonStartHour >= 0 {
		fmt.Fprintf(a.stdout, "  Usual start:  %02d:00\n", sum.CommonStartHour)
	}

	if !opts.Charts {
		return nil
	}
	dir := opts.ChartDir
	if dir == "" {
		dir = cfg.Analytics.ChartDir
	}
	daily := filepath.Join(dir, "daily_focus.png")
	hours := filepath.Join(dir, "start_hours.png")
	if err := analytics.RenderDailyFocus(sessions, daily); err != nil {
		return fmt.Errorf("rendering daily chart: %w", err)
	}
	if err := analytics.RenderStartHours(sessions, hours); err != nil {
		return fmt.Errorf("rendering hours chart: %w", err)
	}
	fmt.Fprintf(a.stdout, "\nCharts written: %s, %s\n", daily, hours)
	return nil
}
