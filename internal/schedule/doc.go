// Package schedule folds extracted timetable rows into canonical weekly
// class slots and decides which of them are new relative to stored classes.
//
// The package is a pure batch transform: it performs no I/O, keeps no
// package-level mutable state and never modifies its inputs, so callers may
// run it concurrently for different users.
package schedule
