// Package analytics reports on the pomodoro session log: streaks,
// averages, habitual start times, and focused-minute totals, plus PNG
// charts of the same data.
package analytics

import (
	"sort"
	"time"

	"studycompanion/internal/session"
)

// Summary is the text dashboard reported by the stats command.
type Summary struct {
	Sessions        int
	StreakDays      int
	AvgWorkMinutes  float64
	CommonStartHour int  // -1 when there is no data
	TodayMinutes    int
	WeekMinutes     int
	AllTimeMinutes  int
}

// Summarize computes the full dashboard relative to now.
func Summarize(sessions []session.Session, now time.Time) Summary {
	weekStart, weekEnd := weekRange(now)
	today := dateOf(now)

	s := Summary{
		Sessions:        len(sessions),
		StreakDays:      LongestStreak(sessions),
		AvgWorkMinutes:  AverageWorkMinutes(sessions),
		CommonStartHour: -1,
		TodayMinutes:    TotalWorkMinutes(sessions, today, today),
		WeekMinutes:     TotalWorkMinutes(sessions, weekStart, weekEnd),
	}
	if hour, ok := MostCommonStartHour(sessions); ok {
		s.CommonStartHour = hour
	}
	for _, sess := range sessions {
		s.AllTimeMinutes += sess.WorkMinutes
	}
	return s
}

// LongestStreak returns the longest run of consecutive days that have at
// least one session.
func LongestStreak(sessions []session.Session) int {
	if len(sessions) == 0 {
		return 0
	}
	seen := map[time.Time]bool{}
	for _, s := range sessions {
		seen[dateOf(s.Date)] = true
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sortTimes(days)

	best, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 1
		}
	}
	return best
}

// AverageWorkMinutes is the mean focused minutes per session.
func AverageWorkMinutes(sessions []session.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.WorkMinutes
	}
	return float64(total) / float64(len(sessions))
}

// MostCommonStartHour returns the hour (0-23) sessions most often start.
// Ties resolve to the earliest hour so the result is deterministic.
func MostCommonStartHour(sessions []session.Session) (int, bool) {
	if len(sessions) == 0 {
		return 0, false
	}
	var counts [24]int
	for _, s := range sessions {
		counts[s.StartedAt.Hour()]++
	}
	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] > counts[best] {
			best = h
		}
	}
	return best, true
}

// TotalWorkMinutes sums focused minutes for sessions whose day falls in
// [from, to] inclusive. Arguments are calendar days (time components are
// ignored).
func TotalWorkMinutes(sessions []session.Session, from, to time.Time) int {
	from, to = dateOf(from), dateOf(to)
	total := 0
	for _, s := range sessions {
		d := dateOf(s.Date)
		if !d.Before(from) && !d.After(to) {
			total += s.WorkMinutes
		}
	}
	return total
}

// DayTotal is one bar of the daily focus chart.
type DayTotal struct {
	Day     time.Time
	Minutes int
}

// DailyTotals aggregates focused minutes per day, ordered by day.
func DailyTotals(sessions []session.Session) []DayTotal {
	byDay := map[time.Time]int{}
	for _, s := range sessions {
		byDay[dateOf(s.Date)] += s.WorkMinutes
	}
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sortTimes(days)

	out := make([]DayTotal, len(days))
	for i, d := range days {
		out[i] = DayTotal{Day: d, Minutes: byDay[d]}
	}
	return out
}

// StartHourCounts tallies sessions per start hour (index = hour 0-23).
func StartHourCounts(sessions []session.Session) [24]int {
	var counts [24]int
	for _, s := range sessions {
		counts[s.StartedAt.Hour()]++
	}
	return counts
}

// weekRange returns the Monday-Sunday week containing now.
func weekRange(now time.Time) (time.Time, time.Time) {
	today := dateOf(now)
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	start := today.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 6)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}
