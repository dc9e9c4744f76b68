// Package schedule turns a flat list of sessions into per-day timetable
// grids. A grid has one row per timeslot tick and one column per configured
// room; cells carry a row span so that a session or a gap covers every tick
// of its duration exactly once.
package schedule
