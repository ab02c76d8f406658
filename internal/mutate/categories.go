package mutate

import (
	"fmt"
	"strings"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/store"
)

type CategoryDraft struct {
	Name  string
	Color string
	Icon  string
}

type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

type CategoryResult struct {
	Category     *model.Category
	Changed      bool
	Notification *model.Notification
}

func CreateCategory(st *store.State, draft CategoryDraft, now time.Time) CategoryResult {
	c := model.Category{
		ID:        store.NextID(st, "cat"),
		Name:      strings.TrimSpace(draft.Name),
		Color:     strings.TrimSpace(draft.Color),
		Icon:      strings.TrimSpace(draft.Icon),
		CreatedAt: now.UTC(),
	}
	st.Categories = append(st.Categories, c)
	n := note(model.NotifySuccess, "Category created", c.Name)
	cat, _ := st.FindCategory(c.ID)
	return CategoryResult{Category: cat, Changed: true, Notification: &n}
}

func UpdateCategory(st *store.State, id string, patch CategoryPatch) CategoryResult {
	c, ok := st.FindCategory(id)
	if !ok {
		return CategoryResult{}
	}
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		c.Color = strings.TrimSpace(*patch.Color)
	}
	if patch.Icon != nil {
		c.Icon = strings.TrimSpace(*patch.Icon)
	}
	n := note(model.NotifySuccess, "Category updated", c.Name)
	return CategoryResult{Category: c, Changed: true, Notification: &n}
}

type DeleteCategoryResult struct {
	Changed      bool
	Reassigned   int
	Notification *model.Notification
}

// DeleteCategory removes the category and reassigns every item referencing
// it to the default category. The default category is re-seeded if the
// delete removed it; the category set is never left empty.
func DeleteCategory(st *store.State, id string, now time.Time) DeleteCategoryResult {
	idx := -1
	for i := range st.Categories {
		if st.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return DeleteCategoryResult{}
	}
	name := st.Categories[idx].Name
	st.Categories = append(st.Categories[:idx], st.Categories[idx+1:]...)
	store.EnsureDefaultCategory(st)

	reassigned := 0
	for i := range st.Items {
		if st.Items[i].CategoryID == id {
			st.Items[i].CategoryID = store.DefaultCategoryID
			stampUpdated(&st.Items[i], now)
			reassigned++
		}
	}

	body := fmt.Sprintf("%q deleted; %d items moved to %s", name, reassigned, st.CategoryName(store.DefaultCategoryID))
	n := note(model.NotifyWarning, "Category deleted", body)
	return DeleteCategoryResult{Changed: true, Reassigned: reassigned, Notification: &n}
}
