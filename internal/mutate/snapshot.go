package mutate

import (
	"fmt"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/store"
)

type ImportResult struct {
	Changed         int
	ItemsAdded      int
	CategoriesAdded int
	Notification    model.Notification
}

// ImportSnapshot parses a snapshot document and appends its items and
// categories to the existing collections. On parse failure nothing is
// mutated and a single error notification is emitted. Incoming records
// whose ids collide with existing ones are re-keyed, with category
// references inside the batch remapped accordingly.
func ImportSnapshot(st *store.State, data []byte, now time.Time) ImportResult {
	doc, err := store.ParseSnapshot(data)
	if err != nil {
		return ImportResult{
			Notification: note(model.NotifyError, "Import failed", "the document could not be parsed"),
		}
	}

	catIDMap := map[string]string{}
	for _, c := range doc.Categories {
		if _, exists := st.FindCategory(c.ID); exists {
			fresh := store.NextID(st, "cat")
			catIDMap[c.ID] = fresh
			c.ID = fresh
		}
		st.Categories = append(st.Categories, c)
	}
	for _, it := range doc.Items {
		if mapped, ok := catIDMap[it.CategoryID]; ok {
			it.CategoryID = mapped
		}
		if _, exists := st.FindItem(it.ID); exists {
			it.ID = store.NextID(st, "item")
		}
		st.Items = append(st.Items, it)
	}

	res := ImportResult{
		ItemsAdded:      len(doc.Items),
		CategoriesAdded: len(doc.Categories),
	}
	res.Changed = res.ItemsAdded + res.CategoriesAdded
	res.Notification = note(model.NotifySuccess, "Import complete",
		fmt.Sprintf("%d items, %d categories imported", res.ItemsAdded, res.CategoriesAdded))
	return res
}

type ClearAllResult struct {
	Notification model.Notification
}

// ClearAll resets items to empty, categories to the default set, and the
// filter spec to its default.
func ClearAll(st *store.State) ClearAllResult {
	st.Items = []model.Item{}
	st.Categories = store.DefaultCategories()
	st.Filter = model.DefaultFilter()
	return ClearAllResult{
		Notification: note(model.NotifySuccess, "All data cleared", ""),
	}
}
