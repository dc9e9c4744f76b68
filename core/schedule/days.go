package schedule

import (
	"sort"

	"github.com/kilianp07/confsched/core/model"
)

// DistinctDays returns the ISO dates on which scheduled sessions start,
// deduplicated and in ascending order. Unscheduled sessions are ignored.
func DistinctDays(sessions []model.Session) []string {
	seen := make(map[string]struct{})
	var days []string
	for _, s := range sessions {
		if s.Slot == nil {
			continue
		}
		d := s.Slot.Day()
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// SessionsOn returns the scheduled sessions starting on day ordered by start
// time. Sessions with equal start keep their input order.
func SessionsOn(day string, sessions []model.Session) []model.Session {
	var out []model.Session
	for _, s := range sessions {
		if s.Slot != nil && s.Slot.Day() == day {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot.Start.Before(out[j].Slot.Start)
	})
	return out
}
