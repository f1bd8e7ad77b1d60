package config

type Config struct {
	Logging LoggingConfig `json:"logging"`

	// Planner holds defaults for the schedule builder. Flag values on the
	// plan command override these per run.
	Planner PlannerConfig `json:"planner"`

	// Pomodoro holds defaults for interval timer sessions.
	Pomodoro PomodoroConfig `json:"pomodoro"`

	Sessions  SessionsConfig  `json:"sessions"`
	Analytics AnalyticsConfig `json:"analytics"`
	Calendar  CalendarConfig  `json:"calendar"`

	// Reminders configures the cron-backed reminder scheduler used by the
	// watch command.
	Reminders RemindersConfig `json:"reminders"`

	Notify NotifyConfig `json:"notify,omitempty"`
}

type LoggingConfig struct {
	Level   string     `json:"level"`
	Console bool       `json:"console"`
	File    FileConfig `json:"file"`
}

type FileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// PlannerConfig mirrors the schedule builder knobs.
//
// Defaults (when fields are omitted/zero):
//   - start: "18:00"
//   - total_minutes: 180
//   - work_block_max: 50
//   - break_minutes: 10
type PlannerConfig struct {
	Start        string `json:"start,omitempty"` // HH:MM wall clock on "today"
	TotalMinutes int    `json:"total_minutes,omitempty"`
	WorkBlockMax int    `json:"work_block_max,omitempty"`
	BreakMinutes int    `json:"break_minutes,omitempty"`
}

// PomodoroConfig holds session defaults.
//
// Defaults (when fields are omitted/zero):
//   - work_minutes: 25
//   - break_minutes: 5
//   - cycles: 4
type PomodoroConfig struct {
	WorkMinutes  int `json:"work_minutes,omitempty"`
	BreakMinutes int `json:"break_minutes,omitempty"`
	Cycles       int `json:"cycles,omitempty"`
}

// SessionsConfig locates the flat append-only session log.
type SessionsConfig struct {
	Path string `json:"path,omitempty"` // default: "./sessions.csv"
}

// AnalyticsConfig controls chart output.
type AnalyticsConfig struct {
	ChartDir string `json:"chart_dir,omitempty"` // default: "."
}

// CalendarConfig holds default .ics paths for the planner's calendar
// collaborators. Both are optional; flags override them.
type CalendarConfig struct {
	BusyPath   string `json:"busy_path,omitempty"`
	ExportPath string `json:"export_path,omitempty"` // default: "./study_schedule.ics"
}

// RemindersConfig drives the reminder scheduler.
//
// Schedule accepts three forms (see reminders.ParseSchedule):
//   - cron (crontab-style): "0 18 * * *", "@hourly"
//   - Go duration interval: "50m", "2h30m"
//   - HH:MM interval: "00:50" (50 minutes)
type RemindersConfig struct {
	Enabled   bool       `json:"enabled"`
	Timezone  string     `json:"timezone,omitempty"` // IANA TZ, e.g. "America/New_York"
	Reminders []Reminder `json:"reminders,omitempty"`
}

type Reminder struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	Message  string `json:"message"`
}

// NotifyConfig controls the terminal notifier.
//
// Defaults (when fields are omitted/zero):
//   - rate_per_sec: 1
//   - queue_size: 64
type NotifyConfig struct {
	RatePerSec int  `json:"rate_per_sec,omitempty"`
	QueueSize  int  `json:"queue_size,omitempty"`
	Bell       bool `json:"bell,omitempty"`
}

// Default returns the configuration used when no config file exists.
// A personal tool should work out of the box.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Console: true},
		Planner: PlannerConfig{
			Start:        "18:00",
			TotalMinutes: 180,
			WorkBlockMax: 50,
			BreakMinutes: 10,
		},
		Pomodoro: PomodoroConfig{
			WorkMinutes:  25,
			BreakMinutes: 5,
			Cycles:       4,
		},
		Sessions:  SessionsConfig{Path: "./sessions.csv"},
		Analytics: AnalyticsConfig{ChartDir: "."},
		Calendar:  CalendarConfig{ExportPath: "./study_schedule.ics"},
		Notify:    NotifyConfig{RatePerSec: 1, QueueSize: 64},
	}
}

// withDefaults fills zero fields in place so callers never see empty knobs.
func (c *Config) withDefaults() *Config {
	d := Default()
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Planner.Start == "" {
		c.Planner.Start = d.Planner.Start
	}
	if c.Planner.TotalMinutes <= 0 {
		c.Planner.TotalMinutes = d.Planner.TotalMinutes
	}
	if c.Planner.WorkBlockMax <= 0 {
		c.Planner.WorkBlockMax = d.Planner.WorkBlockMax
	}
	if c.Planner.BreakMinutes <= 0 {
		c.Planner.BreakMinutes = d.Planner.BreakMinutes
	}
	if c.Pomodoro.WorkMinutes <= 0 {
		c.Pomodoro.WorkMinutes = d.Pomodoro.WorkMinutes
	}
	if c.Pomodoro.BreakMinutes <= 0 {
		c.Pomodoro.BreakMinutes = d.Pomodoro.BreakMinutes
	}
	if c.Pomodoro.Cycles <= 0 {
		c.Pomodoro.Cycles = d.Pomodoro.Cycles
	}
	if c.Sessions.Path == "" {
		c.Sessions.Path = d.Sessions.Path
	}
	if c.Analytics.ChartDir == "" {
		c.Analytics.ChartDir = d.Analytics.ChartDir
	}
	if c.Calendar.ExportPath == "" {
		c.Calendar.ExportPath = d.Calendar.ExportPath
	}
	if c.Notify.RatePerSec <= 0 {
		c.Notify.RatePerSec = d.Notify.RatePerSec
	}
	if c.Notify.QueueSize <= 0 {
		c.Notify.QueueSize = d.Notify.QueueSize
	}
	return c
}
