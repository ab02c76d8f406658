package query

import (
	"time"

	"dolist-cli/internal/model"
)

// Stats aggregates over the full item collection (the active filter is
// ignored by design).
type Stats struct {
	Total      int                    `json:"total"`
	Completed  int                    `json:"completed"`
	Pending    int                    `json:"pending"`
	Overdue    int                    `json:"overdue"`
	ByPriority map[model.Priority]int `json:"byPriority"`
	ByCategory map[string]int         `json:"byCategory"`
}

// Compute tallies the collection in a single pass. An item is overdue when
// it is pending and due strictly before the start of the current calendar
// day; an item due today is never overdue. ByPriority always carries all
// four buckets; ByCategory only keys present in the data.
func Compute(items []model.Item, now time.Time) Stats {
	st := Stats{
		ByPriority: map[model.Priority]int{},
		ByCategory: map[string]int{},
	}
	for _, p := range model.Priorities {
		st.ByPriority[p] = 0
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, it := range items {
		st.Total++
		if it.Completed {
			st.Completed++
		} else {
			st.Pending++
			if it.Due != nil && it.Due.Before(startOfToday) {
				st.Overdue++
			}
		}
		st.ByPriority[it.Priority]++
		if it.CategoryID != "" {
			st.ByCategory[it.CategoryID]++
		}
	}
	return st
}
