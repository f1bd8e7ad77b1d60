// Package pet derives a tiny virtual study pet from the session log.
// The pet levels up with accumulated focus time and its mood tracks
// the daily streak, a low-stakes nudge to keep studying.
package pet

import (
	"fmt"

	"studycompanion/internal/analytics"
	"studycompanion/internal/session"
)

// Minutes of focused work per pet level.
const minutesPerLevel = 120

// Mood glyphs, worst to best.
const (
	MoodSleepy = "😴"
	MoodHappy  = "😊"
	MoodThrive = "😺"
)

// Status is the pet's current state.
type Status struct {
	Level            int
	Mood             string
	StreakDays       int
	TotalWorkMinutes int
}

// FromSessions computes the pet's status from the session history.
func FromSessions(sessions []session.Session) Status {
	total := 0
	for _, s := range sessions {
		total += s.WorkMinutes
	}
	streak := analytics.LongestStreak(sessions)

	mood := MoodThrive
	switch {
	case total < 30:
		mood = MoodSleepy
	case streak < 3:
		mood = MoodHappy
	}

	return Status{
		Level:            1 + total/minutesPerLevel,
		Mood:             mood,
		StreakDays:       streak,
		TotalWorkMinutes: total,
	}
}

// Render returns a short multi-line card for terminal display.
func (s Status) Render() string {
	return fmt.Sprintf("Your study pet %s\n  Level:  %d\n  Streak: %d day(s)\n  Focus:  %d min total\n",
		s.Mood, s.Level, s.StreakDays, s.TotalWorkMinutes)
}
