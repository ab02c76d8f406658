// Package query holds the pure derivation layer: filtering, sorting, and
// statistics over the item collection. Nothing here mutates state.
package query

import (
	"strings"

	"dolist-cli/internal/model"
)

// Matches reports whether an item passes every specified criterion.
// Absent criteria impose no constraint (open policy).
func Matches(it model.Item, spec model.FilterSpec) bool {
	switch spec.Status {
	case model.StatusActive:
		if it.Completed {
			return false
		}
	case model.StatusCompleted:
		if !it.Completed {
			return false
		}
	}
	if spec.Priority != "" && it.Priority != spec.Priority {
		return false
	}
	if spec.CategoryID != "" && it.CategoryID != spec.CategoryID {
		return false
	}
	if s := strings.TrimSpace(spec.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(it.Title), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			return false
		}
	}
	if spec.Tag != "" && !it.HasTag(spec.Tag) {
		return false
	}
	return true
}

// Filter returns the items passing spec, preserving input order.
func Filter(items []model.Item, spec model.FilterSpec) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if Matches(it, spec) {
			out = append(out, it)
		}
	}
	return out
}
