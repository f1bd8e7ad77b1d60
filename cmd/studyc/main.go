package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"studycompanion/internal/app"
)

const usage = `studyc - study planning toolkit

Usage:
  studyc [flags] <command> [command flags]

Commands:
  plan       build tonight's study schedule
  pomodoro   run a focus timer session
  stats      show the analytics dashboard
  quiz       turn a text passage into a quiz
  pet        show your study pet
  watch      run configured reminders until interrupted

Global flags:
  -config path   config file (default ./studyc.yaml)
`

// stringSlice collects repeated flag values.
type stringSlice []string

func (s *stringSlice) String() string     { return fmt.Sprint(*s) }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./studyc.yaml", "path to config yaml")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(cfgPath)
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := run(ctx, a, args[0], args[1:]); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case "plan":
		fs := flag.NewFlagSet("plan", flag.ExitOnError)
		var opts app.PlanOptions
		var tasks stringSlice
		fs.Var(&tasks, "task", "task as name:minutes[:priority[:deadline]] (repeatable)")
		fs.StringVar(&opts.Start, "start", "", "start time HH:MM (default from config)")
		fs.IntVar(&opts.TotalMinutes, "total", 0, "window length in minutes")
		fs.IntVar(&opts.WorkBlockMax, "block", 0, "max work block minutes")
		fs.IntVar(&opts.BreakMinutes, "break", -1, "break minutes between blocks, 0 for none")
		fs.StringVar(&opts.BusyPath, "busy", "", "existing appointments .ics")
		fs.StringVar(&opts.ExportPath, "out", "", "schedule export .ics path")
		fs.BoolVar(&opts.NoExport, "no-export", false, "skip the .ics export")
		if err := fs.Parse(args); err != nil {
			return err
		}
		opts.TaskSpecs = tasks
		return a.RunPlan(opts)

	case "pomodoro":
		fs := flag.NewFlagSet("pomodoro", flag.ExitOnError)
		var opts app.PomodoroOptions
		fs.StringVar(&opts.TaskName, "task", "", "task name for the log")
		fs.IntVar(&opts.WorkMinutes, "work", 0, "work minutes per cycle")
		fs.IntVar(&opts.BreakMinutes, "break", -1, "break minutes between cycles, 0 for none")
		fs.IntVar(&opts.Cycles, "cycles", 0, "number of cycles")
		fs.BoolVar(&opts.Demo, "demo", false, "fast-forward mode for trying it out")
		fs.BoolVar(&opts.NoLog, "no-log", false, "don't append to the session log")
		fs.BoolVar(&opts.Chart, "chart", false, "render a work/break pie for this session")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.RunPomodoro(ctx, opts)

	case "stats":
		fs := flag.NewFlagSet("stats", flag.ExitOnError)
		var opts app.StatsOptions
		fs.BoolVar(&opts.Charts, "charts", false, "render PNG charts")
		fs.StringVar(&opts.ChartDir, "chart-dir", "", "directory for chart output")
		fs.BoolVar(&opts.Demo, "demo", false, "seed demo history when the log is empty")
		fs.IntVar(&opts.DemoDays, "demo-days", 14, "days of demo history to seed")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.RunStats(ctx, opts)

	case "quiz":
		fs := flag.NewFlagSet("quiz", flag.ExitOnError)
		var opts app.QuizOptions
		fs.StringVar(&opts.File, "file", "", "passage file (default: stdin)")
		fs.BoolVar(&opts.Clipboard, "clip", false, "read the passage from the clipboard")
		fs.StringVar(&opts.OutPath, "out", "", "save the generated sheet here")
		fs.BoolVar(&opts.Ask, "ask", false, "interactive quiz mode")
		fs.IntVar(&opts.Bullets, "bullets", 0, "summary bullet count")
		fs.IntVar(&opts.Cloze, "cloze", 0, "fill-in-the-blank question count")
		fs.IntVar(&opts.TrueFalse, "tf", 0, "true/false question count")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.RunQuiz(opts)

	case "pet":
		return a.RunPet(ctx)

	case "watch":
		return a.RunWatch(ctx)

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
