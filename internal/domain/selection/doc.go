// Package selection implements the daily task selection rules: parsing and
// encoding the persisted per-user selection state, the calendar-day
// freshness check, idempotent completion marks, positional task
// replacement, and rendering of tasks with completion status.
//
// All functions in this package are pure with respect to storage: they take
// state in and return new state out. The service layer decides what to
// persist and when.
package selection
