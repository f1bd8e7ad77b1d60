// Package reminders runs recurring study reminders on top of
// robfig/cron. Reminder definitions come from the config file and can
// be swapped at runtime when the config reloads.
package reminders

import (
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"studycompanion/internal/config"
	"studycompanion/pkg/logx"
)

// NotifyFunc delivers a fired reminder. Implementations must not block
// for long; the notifier queues internally.
type NotifyFunc func(name, message string)

type def struct {
	name    string
	spec    string
	message string
	entryID cron.EntryID
}

// Service owns the cron runner and the registered reminder set.
type Service struct {
	mu sync.Mutex

	log    logx.Logger
	notify NotifyFunc

	cfg    config.RemindersConfig
	parser cron.Parser
	loc    *time.Location
	c      *cron.Cron
	defs   []def

	started bool
}

func New(cfg config.RemindersConfig, log logx.Logger, notify NotifyFunc) *Service {
	return &Service{
		log:    log,
		notify: notify,
		cfg:    cfg,
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

func (s *Service) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Enabled
}

// Start registers the configured reminders and starts the cron runner.
// Calling Start on a started service is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.startLocked()
	s.log.Info("reminders started",
		logx.Int("count", len(s.defs)),
		logx.String("tz", s.loc.String()))
}

// Stop halts the cron runner and waits for in-flight jobs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	if s.c != nil {
		<-s.c.Stop().Done()
		s.c = nil
	}
	s.log.Info("reminders stopped")
}

// Apply swaps in a new config. If the service is running, the cron
// runner is rebuilt with the new reminder set and timezone.
func (s *Service) Apply(cfg config.RemindersConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	if !s.started {
		return
	}
	if s.c != nil {
		<-s.c.Stop().Done()
		s.c = nil
	}
	s.startLocked()
	s.log.Info("reminders reloaded", logx.Int("count", len(s.defs)))
}

// Snapshot returns the registered reminders with their next fire time.
type Entry struct {
	Name    string
	Spec    string
	Message string
	Next    time.Time
}

func (s *Service) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.defs))
	for _, d := range s.defs {
		e := Entry{Name: d.name, Spec: d.spec, Message: d.message}
		if s.c != nil {
			e.Next = s.c.Entry(d.entryID).Next
		}
		out = append(out, e)
	}
	return out
}

// startLocked builds a fresh cron runner from s.cfg. Call with s.mu held.
func (s *Service) startLocked() {
	s.loc = s.loadLocationLocked()
	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(s.loc))
	s.defs = s.defs[:0]

	for _, r := range s.cfg.Reminders {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			s.log.Warn("skipping reminder with empty name")
			continue
		}
		sched, err := ParseSchedule(r.Schedule)
		if err != nil {
			s.log.Warn("skipping reminder with bad schedule",
				logx.String("name", name), logx.Err(err))
			continue
		}
		d := def{name: name, spec: sched.CronSpec(), message: r.Message}
		localName, localMsg := d.name, d.message
		id, err := s.c.AddFunc(d.spec, func() { s.fire(localName, localMsg) })
		if err != nil {
			s.log.Warn("reminder register failed",
				logx.String("name", name), logx.String("spec", d.spec), logx.Err(err))
			continue
		}
		d.entryID = id
		s.defs = append(s.defs, d)
		s.log.Debug("reminder registered",
			logx.String("name", name), logx.String("spec", d.spec))
	}
	s.c.Start()
}

func (s *Service) fire(name, message string) {
	if message == "" {
		message = "Time to study!"
	}
	s.log.Info("reminder fired", logx.String("name", name))
	if s.notify != nil {
		s.notify(name, message)
	}
}

func (s *Service) loadLocationLocked() *time.Location {
	tz := strings.TrimSpace(s.cfg.Timezone)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.log.Warn("invalid timezone, falling back to Local",
			logx.String("tz", tz), logx.Err(err))
		return time.Local
	}
	return loc
}
