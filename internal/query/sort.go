package query

import (
	"sort"
	"strings"

	"dolist-cli/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortCreated  SortKey = "created"
	SortDue      SortKey = "due"
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortCreated:
		return SortCreated, true
	case SortDue:
		return SortDue, true
	case SortPriority:
		return SortPriority, true
	case SortTitle:
		return SortTitle, true
	default:
		return "", false
	}
}

// Locale-aware, case-folding title comparison.
var titleCollator = collate.New(language.Und, collate.Loose)

// Sort returns a stably sorted copy of items.
//
// Two deliberate asymmetries, kept for compatibility with the original
// behavior:
//   - items without a due time sort after dated items regardless of
//     direction ("no due date" is always later);
//   - the priority comparator orders by descending rank before the
//     direction flip, so an ascending priority sort yields urgent..low.
func Sort(items []model.Item, key SortKey, desc bool) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if key == SortDue {
			switch {
			case a.Due == nil && b.Due == nil:
				return false
			case a.Due == nil:
				return false
			case b.Due == nil:
				return true
			}
		}
		c := compare(a, b, key)
		if c == 0 {
			return false
		}
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func compare(a, b model.Item, key SortKey) int {
	switch key {
	case SortDue:
		switch {
		case a.Due.Before(*b.Due):
			return -1
		case b.Due.Before(*a.Due):
			return 1
		}
		return 0
	case SortPriority:
		// Higher rank first (see Sort doc comment).
		return b.Priority.Rank() - a.Priority.Rank()
	case SortTitle:
		return titleCollator.CompareString(a.Title, b.Title)
	default: // SortCreated
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case b.CreatedAt.Before(a.CreatedAt):
			return 1
		}
		return 0
	}
}
