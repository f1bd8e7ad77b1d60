package session

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	logx "studycompanion/pkg/logx"
)

const timestampLayout = "2006-01-02T15:04:05"

// Session is one logged pomodoro run.
// Keep it compact and schema-stable; the CSV columns mirror the fields.
type Session struct {
	Date            time.Time // calendar day the session started
	TaskName        string
	CyclesCompleted int
	WorkMinutes     int
	BreakMinutes    int
	StartedAt       time.Time
	FinishedAt      time.Time
}

var header = []string{
	"date",
	"task_name",
	"cycles_completed",
	"work_minutes",
	"break_minutes",
	"started_at",
	"finished_at",
}

// Config configures the session store.
type Config struct {
	Path string
}

// Store is a mutex-guarded append-only CSV log.
type Store struct {
	mu   sync.Mutex
	path string
	log  logx.Logger
}

// Open prepares the store. The log file itself is created lazily on the
// first Append so an analytics-only run never touches the disk.
func Open(cfg Config, log logx.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sessions.path is required")
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	return &Store{path: cfg.Path, log: log}, nil
}

func (s *Store) Path() string { return s.path }

// Append writes one session row, emitting the header first if the file
// is new or empty.
func (s *Store) Append(ctx context.Context, sess Session) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	needHeader := true
	if fi, err := os.Stat(s.path); err == nil && fi.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(encodeRow(sess)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Load reads every session from the log. Malformed rows are skipped with
// a warning instead of failing the whole load, so one bad line cannot
// take the analytics down. A missing file is an empty log.
func (s *Store) Load(ctx context.Context) ([]Session, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := indexColumns(records[0])
	var out []Session
	for i, rec := range records[1:] {
		sess, err := decodeRow(cols, rec)
		if err != nil {
			s.log.Warn("skipping malformed session row",
				logx.Int("line", i+2), logx.Err(err))
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func encodeRow(sess Session) []string {
	return []string{
		sess.Date.Format("2006-01-02"),
		sess.TaskName,
		strconv.Itoa(sess.CyclesCompleted),
		strconv.Itoa(sess.WorkMinutes),
		strconv.Itoa(sess.BreakMinutes),
		sess.StartedAt.Format(timestampLayout),
		sess.FinishedAt.Format(timestampLayout),
	}
}

func indexColumns(headerRow []string) map[string]int {
	cols := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		cols[name] = i
	}
	return cols
}

func decodeRow(cols map[string]int, rec []string) (Session, error) {
	field := func(name string) (string, error) {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return "", fmt.Errorf("missing column %q", name)
		}
		return rec[i], nil
	}
	intField := func(name string) (int, error) {
		raw, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}
		return v, nil
	}
	timeField := func(name, layout string) (time.Time, error) {
		raw, err := field(name)
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("column %q: %w", name, err)
		}
		return t, nil
	}

	var (
		sess Session
		err  error
	)
	if sess.Date, err = timeField("date", "2006-01-02"); err != nil {
		return Session{}, err
	}
	if sess.TaskName, err = field("task_name"); err != nil {
		return Session{}, err
	}
	if sess.CyclesCompleted, err = intField("cycles_completed"); err != nil {
		return Session{}, err
	}
	if sess.WorkMinutes, err = intField("work_minutes"); err != nil {
		return Session{}, err
	}
	if sess.BreakMinutes, err = intField("break_minutes"); err != nil {
		return Session{}, err
	}
	if sess.StartedAt, err = timeField("started_at", timestampLayout); err != nil {
		return Session{}, err
	}
	if sess.FinishedAt, err = timeField("finished_at", timestampLayout); err != nil {
		return Session{}, err
	}
	return sess, nil
}
