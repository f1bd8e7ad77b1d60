// Package app wires the toolkit together: config, logging, the session
// store, and the per-command runners invoked from cmd/studyc.
package app

import (
	"io"
	"os"

	"studycompanion/internal/config"
	"studycompanion/internal/eventbus"
	"studycompanion/internal/session"
	"studycompanion/pkg/logx"
)

type App struct {
	cfgm *config.Manager

	log  logx.Logger
	logs *logx.Service
	bus  eventbus.Bus

	store *session.Store

	stdout io.Writer
	stdin  io.Reader
}

// New loads the config (falling back to defaults when the file is
// missing) and builds the shared services.
func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	log = log.With(logx.String("comp", "app"))
	cfgm.SetLogger(log.With(logx.String("comp", "config")))

	bus := eventbus.New()

	store, err := session.Open(session.Config{Path: cfg.Sessions.Path},
		log.With(logx.String("comp", "sessions")))
	if err != nil {
		return nil, err
	}

	return &App{
		cfgm:   cfgm,
		log:    log,
		logs:   logSvc,
		bus:    bus,
		store:  store,
		stdout: logx.Stdout(),
		stdin:  os.Stdin,
	}, nil
}

func (a *App) Config() *config.Config { return a.cfgm.Get() }

func (a *App) Close() error {
	if a.logs != nil {
		return a.logs.Close()
	}
	return nil
}
