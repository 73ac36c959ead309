package session

import "time"

// Filter narrows a listing. Empty fields and "all" match everything.
type Filter struct {
	Status string // pending | in-progress | completed
	Date   string // today | week | month
	Now    time.Time
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Record) bool {
	if f.Status != "" && f.Status != "all" && string(r.Status) != f.Status {
		return false
	}

	if f.Date == "" || f.Date == "all" {
		return true
	}
	days := int(f.Now.Sub(r.StartedAt).Hours() / 24)
	switch f.Date {
	case "today":
		return days <= 0
	case "week":
		return days <= 7
	case "month":
		return days <= 30
	}
	return true
}

// Counts tallies records per status.
func Counts(records []Record) map[Status]int {
	out := map[Status]int{StatusPending: 0, StatusInProgress: 0, StatusCompleted: 0}
	for _, r := range records {
		out[r.Status]++
	}
	return out
}
