package store

import (
	"time"

	"dolist-cli/internal/model"
)

// DefaultCategoryID is the guaranteed-present category. Items orphaned by a
// category delete are reassigned here.
const DefaultCategoryID = "cat-personal"

// DefaultCategories is the fixed set seeded at first run. IDs are stable so
// that reassignment and tests can rely on them.
func DefaultCategories() []model.Category {
	now := time.Now().UTC()
	return []model.Category{
		{ID: DefaultCategoryID, Name: "Personal", Color: "#4f9cf9", Icon: "user", CreatedAt: now},
		{ID: "cat-work", Name: "Work", Color: "#b57bee", Icon: "briefcase", CreatedAt: now},
		{ID: "cat-shopping", Name: "Shopping", Color: "#5ec269", Icon: "cart", CreatedAt: now},
		{ID: "cat-health", Name: "Health", Color: "#ee6c7b", Icon: "heart", CreatedAt: now},
	}
}

// EnsureDefaultCategory reinserts the default category if it is missing.
// Deleting every category must still leave the workspace usable.
func EnsureDefaultCategory(st *State) bool {
	if _, ok := st.FindCategory(DefaultCategoryID); ok {
		return false
	}
	st.Categories = append(st.Categories, model.Category{
		ID:        DefaultCategoryID,
		Name:      "Personal",
		Color:     "#4f9cf9",
		Icon:      "user",
		CreatedAt: time.Now().UTC(),
	})
	return true
}
