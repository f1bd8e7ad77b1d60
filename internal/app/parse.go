package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studycompanion/internal/planner"
)

// parseClock turns "HH:MM" into today's wall clock time in the local
// zone.
func parseClock(hhmm string, now time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location()), nil
}

// parseTaskSpec parses one -task flag value of the form
//
//	name:minutes[:priority[:deadline]]
//
// where deadline is HH:MM on the planning day. Examples:
//
//	"Essay:90"  "Essay:90:3"  "Essay:90:3:21:30"
func parseTaskSpec(spec string, now time.Time) (planner.Task, error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 4)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return planner.Task{}, fmt.Errorf("invalid task %q, expected name:minutes[:priority[:deadline]]", spec)
	}

	t := planner.Task{Name: strings.TrimSpace(parts[0]), Priority: 1}

	mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || mins <= 0 {
		return planner.Task{}, fmt.Errorf("invalid minutes in task %q", spec)
	}
	t.Duration = mins

	if len(parts) >= 3 && strings.TrimSpace(parts[2]) != "" {
		prio, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || prio < 1 {
			return planner.Task{}, fmt.Errorf("invalid priority in task %q", spec)
		}
		t.Priority = prio
	}

	if len(parts) == 4 && strings.TrimSpace(parts[3]) != "" {
		dl, err := parseClock(parts[3], now)
		if err != nil {
			return planner.Task{}, fmt.Errorf("invalid deadline in task %q: %w", spec, err)
		}
		t.Deadline = &dl
	}

	return t, nil
}
