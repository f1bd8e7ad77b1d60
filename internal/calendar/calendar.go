// Package calendar reads busy intervals from and writes schedules to
// .ics files. It is the planner's only I/O collaborator.
package calendar

import (
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"

	"studycompanion/internal/planner"
)

// ReadBusy parses the calendar at path and returns one busy interval per
// event that ends after now. Past events are dropped so an old calendar
// does not block today's plan. Unreadable or malformed files surface as
// errors; the planner itself never sees them.
func ReadBusy(path string, now time.Time) ([]planner.BusyInterval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open calendar: %w", err)
	}
	defer f.Close()

	cal, err := ics.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("parse calendar %s: %w", path, err)
	}

	var busy []planner.BusyInterval
	for _, ev := range cal.Events() {
		start, err := ev.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("event %s: start: %w", ev.Id(), err)
		}
		end, err := ev.GetEndAt()
		if err != nil {
			return nil, fmt.Errorf("event %s: end: %w", ev.Id(), err)
		}
		if end.After(now) {
			busy = append(busy, planner.BusyInterval{Start: start, End: end})
		}
	}
	return busy, nil
}

// WriteSchedule serializes blocks to an .ics file, one event per block.
// Break blocks are written like any other event. An empty schedule is a
// no-op and leaves the target file untouched.
func WriteSchedule(path string, blocks []planner.Block) error {
	if len(blocks) == 0 {
		return nil
	}

	now := time.Now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studycompanion//study planner//EN")

	for i, b := range blocks {
		ev := cal.AddEvent(fmt.Sprintf("block-%d-%d@studycompanion", b.Start.Unix(), i))
		ev.SetDtStampTime(now)
		ev.SetStartAt(b.Start)
		ev.SetEndAt(b.End)
		ev.SetSummary(b.Label)
		ev.SetDescription("Study Task: " + b.Label)
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}
