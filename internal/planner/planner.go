package planner

import (
	"sort"
	"time"
)

// BreakLabel is the reserved block label for rest periods.
// A task named "Break" would be indistinguishable from a rest block,
// so callers should avoid it.
const BreakLabel = "Break"

// Defaults applied by Options.withDefaults.
const (
	DefaultWorkBlockMax = 50
	DefaultBreakMinutes = 10
)

// probeStep is how far the cursor advances when a tentative block clips
// into a future busy interval while the cursor itself is free. Coarse on
// purpose: it bounds the number of retries without scanning minute by
// minute through a long conflict.
const probeStep = 5 * time.Minute

// Task is a unit of study work to be packed into the window.
// Tasks are value types; BuildSchedule never mutates its input.
type Task struct {
	Name     string
	Duration int // estimated minutes, must be positive
	Priority int // higher = more urgent
	Deadline *time.Time // nil = unconstrained
}

// BusyInterval is an externally fixed conflict (e.g. a calendar event).
// Start must be before End.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end) intersects the interval.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// Contains reports whether the instant t falls inside [Start, End).
func (b BusyInterval) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Block is one scheduled span: either work attributed to a task (Label
// is the task name) or a rest period (Label == BreakLabel).
type Block struct {
	Start time.Time
	End   time.Time
	Label string
}

// IsBreak reports whether the block is a rest period.
func (b Block) IsBreak() bool { return b.Label == BreakLabel }

// Minutes returns the block length in whole minutes.
func (b Block) Minutes() int { return int(b.End.Sub(b.Start) / time.Minute) }

// Options sizes work and break blocks. The zero value gets the
// documented defaults (50 minute work blocks, 10 minute breaks).
// A negative BreakMinutes disables breaks entirely.
type Options struct {
	WorkBlockMax int
	BreakMinutes int
}

func (o Options) withDefaults() Options {
	if o.WorkBlockMax <= 0 {
		o.WorkBlockMax = DefaultWorkBlockMax
	}
	switch {
	case o.BreakMinutes == 0:
		o.BreakMinutes = DefaultBreakMinutes
	case o.BreakMinutes < 0:
		o.BreakMinutes = 0
	}
	return o
}

// distantFuture sorts tasks without a deadline after every dated one.
var distantFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func deadlineOrDistant(t Task) time.Time {
	if t.Deadline == nil {
		return distantFuture
	}
	return *t.Deadline
}

// taskLess orders by descending priority, then ascending deadline
// (missing deadlines last), then name. The name key makes the order
// fully deterministic.
func taskLess(a, b Task) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	ad, bd := deadlineOrDistant(a), deadlineOrDistant(b)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}
	return a.Name < b.Name
}

// BuildSchedule packs tasks into the window [start, start+totalMinutes)
// and returns the resulting blocks in start-time order.
//
// Tasks are processed in a fixed order computed once up front (see
// taskLess); the order is not re-evaluated as the window drains, so the
// current task is fully drained before the next one is considered, even
// if calendar conflicts stall it. Work blocks never overlap a busy
// interval; when a tentative block conflicts, the cursor either jumps
// past the interval covering it or probes forward by a fixed step.
// A break of Options.BreakMinutes follows each work block while its task
// still has remaining duration and the break fully fits in the window
// (no breaks at all when Options disables them).
//
// An empty task list or non-positive totalMinutes yields a nil result.
// Malformed inputs (negative durations, inverted busy intervals) are a
// caller error and are not validated here.
func BuildSchedule(tasks []Task, start time.Time, totalMinutes int, opts Options, busy []BusyInterval) []Block {
	if totalMinutes <= 0 || len(tasks) == 0 {
		return nil
	}
	opts = opts.withDefaults()

	ordered := make([]Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool { return taskLess(ordered[i], ordered[j]) })

	var schedule []Block
	cursor := start
	windowEnd := start.Add(time.Duration(totalMinutes) * time.Minute)

	for _, task := range ordered {
		remaining := task.Duration

		for remaining > 0 && cursor.Before(windowEnd) {
			windowLeft := int(windowEnd.Sub(cursor) / time.Minute)
			if windowLeft <= 0 {
				return schedule
			}

			length := remaining
			if opts.WorkBlockMax < length {
				length = opts.WorkBlockMax
			}
			if windowLeft < length {
				length = windowLeft
			}
			if length <= 0 {
				return schedule
			}

			blockEnd := cursor.Add(time.Duration(length) * time.Minute)

			if conflictsAny(cursor, blockEnd, busy) {
				if until, ok := coveringEnd(cursor, busy); ok {
					// The cursor sits inside a busy interval: skip the
					// whole conflict in one step.
					cursor = until
				} else {
					cursor = cursor.Add(probeStep)
				}
				continue
			}

			schedule = append(schedule, Block{Start: cursor, End: blockEnd, Label: task.Name})
			cursor = blockEnd
			remaining -= length

			windowLeft = int(windowEnd.Sub(cursor) / time.Minute)
			if opts.BreakMinutes > 0 && remaining > 0 && windowLeft > opts.BreakMinutes {
				breakEnd := cursor.Add(time.Duration(opts.BreakMinutes) * time.Minute)
				schedule = append(schedule, Block{Start: cursor, End: breakEnd, Label: BreakLabel})
				cursor = breakEnd
			}
		}
	}
	return schedule
}

func conflictsAny(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// coveringEnd returns the end of the first busy interval containing t.
func coveringEnd(t time.Time, busy []BusyInterval) (time.Time, bool) {
	for _, b := range busy {
		if b.Contains(t) {
			return b.End, true
		}
	}
	return time.Time{}, false
}
