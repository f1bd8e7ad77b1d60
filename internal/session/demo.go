package session

import (
	"math/rand"
	"time"
)

var demoTasks = []string{
	"Biochem review",
	"Chinese translation",
	"Alt. Energy reading",
	"Thesis writing",
	"Problem set",
}

// GenerateDemo fabricates plausible session data over the numDays days
// ending today, so the analytics can be demonstrated on an empty log.
// The caller supplies the RNG; a fixed seed makes the output reproducible.
func GenerateDemo(rng *rand.Rand, now time.Time, numDays, maxPerDay int) []Session {
	if numDays <= 0 {
		return nil
	}
	if maxPerDay <= 0 {
		maxPerDay = 3
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []Session
	for offset := 0; offset < numDays; offset++ {
		day := today.AddDate(0, 0, -(numDays - 1 - offset))
		for n := rng.Intn(maxPerDay + 1); n > 0; n-- {
			start := day.Add(
				time.Duration(8+rng.Intn(16))*time.Hour +
					time.Duration(15*rng.Intn(4))*time.Minute,
			)
			workPerCycle := 20 + rng.Intn(41)
			breakMinutes := []int{5, 10, 15}[rng.Intn(3)]
			cycles := 1 + rng.Intn(4)
			totalBreak := breakMinutes * (cycles - 1)
			totalWork := workPerCycle * cycles

			out = append(out, Session{
				Date:            day,
				TaskName:        demoTasks[rng.Intn(len(demoTasks))],
				CyclesCompleted: cycles,
				WorkMinutes:     totalWork,
				BreakMinutes:    totalBreak,
				StartedAt:       start,
				FinishedAt:      start.Add(time.Duration(totalWork+totalBreak) * time.Minute),
			})
		}
	}
	return out
}
