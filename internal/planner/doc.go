// Package planner builds study schedules.
//
// The core is BuildSchedule: a greedy packer that lays tasks into a
// single time window in fixed priority order, inserts breaks between
// work blocks, and routes around externally busy calendar intervals.
// It is a pure function with no side effects, so it is safe to call
// repeatedly or from independent goroutines.
package planner
