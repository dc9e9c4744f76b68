package schedule

import (
	"fmt"
	"time"
)

// DefaultTimeslotMinutes is the grid granularity when none is configured.
const DefaultTimeslotMinutes = 5

// Config holds the grid layout settings.
type Config struct {
	// Rooms lists every valid room in column order.
	Rooms []string `json:"rooms"`
	// TimeslotMinutes is the length of one grid row.
	TimeslotMinutes int `json:"timeslot_minutes"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeslotMinutes == 0 {
		c.TimeslotMinutes = DefaultTimeslotMinutes
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if len(c.Rooms) == 0 {
		return fmt.Errorf("schedule: at least one room is required")
	}
	seen := make(map[string]struct{}, len(c.Rooms))
	for _, r := range c.Rooms {
		if _, dup := seen[r]; dup {
			return fmt.Errorf("schedule: room %q listed twice", r)
		}
		seen[r] = struct{}{}
	}
	if c.TimeslotMinutes <= 0 || 60%c.TimeslotMinutes != 0 {
		return fmt.Errorf("schedule: timeslot_minutes must divide 60, got %d", c.TimeslotMinutes)
	}
	return nil
}

// Step returns the timeslot as a duration.
func (c Config) Step() time.Duration {
	return time.Duration(c.TimeslotMinutes) * time.Minute
}
