// Package session persists completed pomodoro sessions.
//
// The store is a flat append-only CSV file, deliberately the only
// persistence in this repo:
//   - Append writes one row per finished session (header written once)
//   - Load reads the whole log back, skipping malformed rows
package session
