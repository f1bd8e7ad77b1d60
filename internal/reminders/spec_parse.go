package reminders

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Schedule is a normalized reminder schedule: either a cron expression
// handed to robfig/cron, or a fixed repeat interval.
type Schedule struct {
	Cron  string        // set when the schedule is cron-shaped
	Every time.Duration // set when the schedule is a fixed interval
}

// IsInterval reports whether the schedule repeats on a fixed interval
// rather than a cron expression.
func (s Schedule) IsInterval() bool { return s.Every > 0 }

// CronSpec returns the string to register with the cron runner.
func (s Schedule) CronSpec() string {
	if s.IsInterval() {
		return "@every " + s.Every.String()
	}
	return s.Cron
}

var hhmmRe = regexp.MustCompile(`^(\d{1,3}):(\d{2})$`)

// ParseSchedule accepts the schedule forms used in the reminders config:
//
//   - cron expressions: "0 18 * * *", "@hourly", "@every 50m"
//   - Go durations as repeat intervals: "50m", "2h30m"
//   - HH:MM as a repeat interval: "00:50" is every 50 minutes
//
// A "cron:", "interval:" or "every:" prefix forces the reading; without
// one, anything containing whitespace or starting with '@' is treated
// as cron.
func ParseSchedule(raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Schedule{}, fmt.Errorf("schedule required")
	}

	if rest, ok := cutPrefixFold(s, "cron:"); ok {
		if rest == "" {
			return Schedule{}, fmt.Errorf("cron schedule required after 'cron:'")
		}
		return Schedule{Cron: rest}, nil
	}
	for _, p := range []string{"interval:", "every:"} {
		if rest, ok := cutPrefixFold(s, p); ok {
			every, err := parseInterval(rest)
			if err != nil {
				return Schedule{}, err
			}
			return Schedule{Every: every}, nil
		}
	}

	if strings.ContainsAny(s, " \t") || strings.HasPrefix(s, "@") {
		return Schedule{Cron: s}, nil
	}

	every, err := parseInterval(s)
	if err != nil {
		return Schedule{}, fmt.Errorf(
			"invalid schedule %q (use cron like '0 18 * * *', HH:MM like '02:30', or duration like '50m')", raw)
	}
	return Schedule{Every: every}, nil
}

// cutPrefixFold is strings.CutPrefix with ASCII case folding on the
// prefix, trimming space from the remainder.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}

func parseInterval(v string) (time.Duration, error) {
	if v == "" {
		return 0, fmt.Errorf("interval required")
	}
	if m := hhmmRe.FindStringSubmatch(v); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if mm > 59 {
			return 0, fmt.Errorf("invalid minutes in %q", v)
		}
		d := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
		if d <= 0 {
			return 0, fmt.Errorf("interval must be > 0")
		}
		return d, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q (use HH:MM or Go duration like '50m'/'2h30m')", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be > 0")
	}
	return d, nil
}
