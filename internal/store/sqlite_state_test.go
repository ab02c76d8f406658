package store

import (
	"testing"
	"time"

	"dolist-cli/internal/model"
)

func TestSQLiteState_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	st := NewState()
	st.Items = []model.Item{
		{
			ID:         "item-a",
			Title:      "Water plants",
			Completed:  false,
			Priority:   model.PriorityHigh,
			CategoryID: DefaultCategoryID,
			Due:        &due,
			Tags:       []string{"home", "garden"},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "item-b",
			Title:      "File expenses",
			Completed:  true,
			Priority:   model.PriorityLow,
			CategoryID: "cat-work",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	st.Filter = model.FilterSpec{Status: model.StatusActive, Search: "plants"}

	if err := s.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(got.Items), got.Items)
	}
	a, ok := got.FindItem("item-a")
	if !ok {
		t.Fatalf("item-a missing after load: %+v", got.Items)
	}
	if a.Title != "Water plants" || a.Priority != model.PriorityHigh {
		t.Fatalf("item-a fields lost: %+v", a)
	}
	if a.Due == nil || !a.Due.Equal(due) {
		t.Fatalf("due time lost: %+v", a.Due)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "home" {
		t.Fatalf("tags lost: %+v", a.Tags)
	}
	b, ok := got.FindItem("item-b")
	if !ok || !b.Completed || b.Due != nil {
		t.Fatalf("item-b fields lost: %+v", b)
	}
	if got.Filter.Status != model.StatusActive || got.Filter.Search != "plants" {
		t.Fatalf("filter not persisted: %+v", got.Filter)
	}
	if len(got.Categories) != len(DefaultCategories()) {
		t.Fatalf("categories not persisted: %+v", got.Categories)
	}
}

func TestSQLiteState_FreshWorkspaceGetsDefaults(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	st, err := s.Load()
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("expected no items in fresh workspace, got %+v", st.Items)
	}
	if _, ok := st.FindCategory(DefaultCategoryID); !ok {
		t.Fatalf("default category missing: %+v", st.Categories)
	}
	if len(st.Categories) != 4 {
		t.Fatalf("expected 4 default categories, got %+v", st.Categories)
	}
	if st.Filter.Status != model.StatusAll {
		t.Fatalf("expected default filter, got %+v", st.Filter)
	}
}

func TestSQLiteState_LoadReseedsDefaultCategory(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	st := NewState()
	// Simulate persisted data where the default category is gone but others
	// remain (possible via older data).
	st.Categories = []model.Category{
		{ID: "cat-work", Name: "Work", Color: "#b57bee", CreatedAt: time.Now().UTC()},
	}
	if err := s.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := got.FindCategory(DefaultCategoryID); !ok {
		t.Fatalf("default category not reseeded on load: %+v", got.Categories)
	}
}

func TestSQLiteState_SaveReplacesPriorContents(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	now := time.Now().UTC()

	st := NewState()
	st.Items = []model.Item{{ID: "item-old", Title: "Old", Priority: model.PriorityMedium, CategoryID: DefaultCategoryID, CreatedAt: now, UpdatedAt: now}}
	if err := s.Save(st); err != nil {
		t.Fatalf("save 1: %v", err)
	}

	st.Items = []model.Item{{ID: "item-new", Title: "New", Priority: model.PriorityMedium, CategoryID: DefaultCategoryID, CreatedAt: now, UpdatedAt: now}}
	if err := s.Save(st); err != nil {
		t.Fatalf("save 2: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "item-new" {
		t.Fatalf("expected replace-all save, got %+v", got.Items)
	}
}

func TestCategoryName_DanglingReferenceDegrades(t *testing.T) {
	st := NewState()
	if got := st.CategoryName("cat-nope"); got != "Uncategorized" {
		t.Fatalf("expected Uncategorized for dangling id, got %q", got)
	}
	if got := st.CategoryName(DefaultCategoryID); got != "Personal" {
		t.Fatalf("expected Personal, got %q", got)
	}
}
