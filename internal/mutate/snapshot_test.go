package mutate

import (
	"testing"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/store"
)

func TestImportSnapshot_MalformedDocumentFailsClosed(t *testing.T) {
	t.Parallel()

	st := store.NewState()
	CreateItem(st, ItemDraft{Title: "Keep me"}, time.Now())
	itemsBefore := len(st.Items)
	catsBefore := len(st.Categories)

	for _, data := range []string{`{}`, `{"items":[]}`, `garbage`} {
		res := ImportSnapshot(st, []byte(data), time.Now())
		if res.Changed != 0 || res.ItemsAdded != 0 || res.CategoriesAdded != 0 {
			t.Fatalf("import of %q mutated counts: %+v", data, res)
		}
		if res.Notification.Kind != model.NotifyError || res.Notification.Title != "Import failed" {
			t.Fatalf("expected single error notification, got %+v", res.Notification)
		}
		if len(st.Items) != itemsBefore || len(st.Categories) != catsBefore {
			t.Fatalf("state mutated by failed import of %q", data)
		}
	}
}

func TestImportSnapshot_AppendsAndReports(t *testing.T) {
	t.Parallel()

	st := store.NewState()
	CreateItem(st, ItemDraft{Title: "Existing"}, time.Now())

	doc := model.ExportDoc{
		ExportedAt: time.Now().UTC(),
		Items: []model.Item{
			{ID: "item-import-1", Title: "Imported", Priority: model.PriorityLow, CategoryID: "cat-import"},
		},
		Categories: []model.Category{
			{ID: "cat-import", Name: "Imported", Color: "#123456"},
		},
	}
	b, err := store.EncodeSnapshot(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	res := ImportSnapshot(st, b, time.Now())
	if res.ItemsAdded != 1 || res.CategoriesAdded != 1 || res.Changed != 2 {
		t.Fatalf("counts: %+v", res)
	}
	if res.Notification.Kind != model.NotifySuccess {
		t.Fatalf("notification: %+v", res.Notification)
	}
	if len(st.Items) != 2 {
		t.Fatalf("items not appended: %+v", st.Items)
	}
	if _, ok := st.FindCategory("cat-import"); !ok {
		t.Fatalf("category not appended: %+v", st.Categories)
	}
}

func TestImportSnapshot_ReKeysCollidingIDs(t *testing.T) {
	t.Parallel()

	st := store.NewState()
	existing := CreateItem(st, ItemDraft{Title: "Existing"}, time.Now())

	doc := model.ExportDoc{
		ExportedAt: time.Now().UTC(),
		Items: []model.Item{
			// Same id as an existing item and referencing a colliding category.
			{ID: existing.Item.ID, Title: "Incoming", CategoryID: store.DefaultCategoryID},
		},
		Categories: []model.Category{
			// Collides with the seeded default category.
			{ID: store.DefaultCategoryID, Name: "Their Personal", Color: "#000000"},
		},
	}
	b, err := store.EncodeSnapshot(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	res := ImportSnapshot(st, b, time.Now())
	if res.ItemsAdded != 1 || res.CategoriesAdded != 1 {
		t.Fatalf("counts: %+v", res)
	}

	// Both records present, both re-keyed.
	if len(st.Items) != 2 {
		t.Fatalf("items: %+v", st.Items)
	}
	var incoming *model.Item
	for i := range st.Items {
		if st.Items[i].Title == "Incoming" {
			incoming = &st.Items[i]
		}
	}
	if incoming == nil {
		t.Fatalf("incoming item missing: %+v", st.Items)
	}
	if incoming.ID == existing.Item.ID {
		t.Fatalf("colliding item id not re-keyed")
	}

	var theirCat *model.Category
	for i := range st.Categories {
		if st.Categories[i].Name == "Their Personal" {
			theirCat = &st.Categories[i]
		}
	}
	if theirCat == nil {
		t.Fatalf("incoming category missing: %+v", st.Categories)
	}
	if theirCat.ID == store.DefaultCategoryID {
		t.Fatalf("colliding category id not re-keyed")
	}
	// The item's reference follows the re-keyed category.
	if incoming.CategoryID != theirCat.ID {
		t.Fatalf("category reference not remapped: item=%q cat=%q", incoming.CategoryID, theirCat.ID)
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	st := store.NewState()
	CreateItem(st, ItemDraft{Title: "A"}, time.Now())
	CreateCategory(st, CategoryDraft{Name: "Extra"}, time.Now())
	search := "something"
	SetFilter(st, FilterPatch{Search: &search})

	res := ClearAll(st)
	if len(st.Items) != 0 {
		t.Fatalf("items not cleared: %+v", st.Items)
	}
	if len(st.Categories) != 4 {
		t.Fatalf("categories not reset to defaults: %+v", st.Categories)
	}
	if st.Filter != model.DefaultFilter() {
		t.Fatalf("filter not reset: %+v", st.Filter)
	}
	if res.Notification.Title != "All data cleared" {
		t.Fatalf("notification: %+v", res.Notification)
	}
}
