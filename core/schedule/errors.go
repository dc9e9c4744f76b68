package schedule

import (
	"fmt"
	"strings"
)

// RoomMismatchError is returned when sessions of a day use rooms that are
// not part of the configured room order. Missing lists all of them.
type RoomMismatchError struct {
	Day     string
	Missing []string
}

func (e *RoomMismatchError) Error() string {
	return fmt.Sprintf("day %s: rooms not in configured room order: %s; add them to schedule.rooms",
		e.Day, strings.Join(e.Missing, ", "))
}
