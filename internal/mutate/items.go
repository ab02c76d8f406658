// Package mutate implements all state mutations. Functions operate on an
// explicit *store.State and return results carrying the notification the
// operation emits; callers are responsible for saving the state.
package mutate

import (
	"fmt"
	"strings"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/store"
)

// DuplicateTitleSuffix is appended to a duplicated item's title.
const DuplicateTitleSuffix = " (copy)"

type ItemDraft struct {
	Title       string
	Description string
	Priority    model.Priority
	CategoryID  string
	Due         *time.Time
	Tags        []string
}

// ItemPatch lists exactly which fields an update may override; each field is
// independently present (non-nil) or absent. ClearDue removes the due time.
type ItemPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *model.Priority
	CategoryID  *string
	Due         *time.Time
	ClearDue    bool
	Tags        *[]string
}

func (p ItemPatch) isZero() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.CategoryID == nil && p.Due == nil &&
		!p.ClearDue && p.Tags == nil
}

type CreateResult struct {
	Item         model.Item
	Notification model.Notification
}

// CreateItem allocates an identifier, stamps both timestamps equal, and
// inserts the new item. Drafts arrive validated; missing priority/category
// fall back to defaults.
func CreateItem(st *store.State, draft ItemDraft, now time.Time) CreateResult {
	pr := draft.Priority
	if pr == "" {
		pr = model.PriorityMedium
	}
	cat := strings.TrimSpace(draft.CategoryID)
	if cat == "" {
		cat = store.DefaultCategoryID
	}
	now = now.UTC()
	it := model.Item{
		ID:          store.NextID(st, "item"),
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		Completed:   false,
		Priority:    pr,
		CategoryID:  cat,
		Due:         draft.Due,
		Tags:        model.NormalizeTags(draft.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	st.Items = append(st.Items, it)
	return CreateResult{
		Item:         it,
		Notification: note(model.NotifySuccess, "Item created", it.Title),
	}
}

type UpdateResult struct {
	Item         *model.Item
	Changed      bool
	Notification *model.Notification
}

// UpdateItem merges the patch field-by-field and re-stamps UpdatedAt.
// A missing id is a silent no-op: no change, no notification.
func UpdateItem(st *store.State, id string, patch ItemPatch, now time.Time) UpdateResult {
	it, ok := st.FindItem(id)
	if !ok {
		return UpdateResult{}
	}
	applyItemPatch(it, patch)
	stampUpdated(it, now)
	n := note(model.NotifySuccess, "Item updated", it.Title)
	return UpdateResult{Item: it, Changed: true, Notification: &n}
}

func applyItemPatch(it *model.Item, patch ItemPatch) {
	if patch.Title != nil {
		it.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Completed != nil {
		it.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		it.Priority = *patch.Priority
	}
	if patch.CategoryID != nil {
		it.CategoryID = strings.TrimSpace(*patch.CategoryID)
	}
	if patch.ClearDue {
		it.Due = nil
	} else if patch.Due != nil {
		due := *patch.Due
		it.Due = &due
	}
	if patch.Tags != nil {
		it.Tags = model.NormalizeTags(*patch.Tags)
	}
}

// stampUpdated keeps UpdatedAt monotonically non-decreasing.
func stampUpdated(it *model.Item, now time.Time) {
	now = now.UTC()
	if now.After(it.UpdatedAt) {
		it.UpdatedAt = now
	}
}

type DeleteResult struct {
	Changed      bool
	Notification *model.Notification
}

// DeleteItem removes the item if present; absent ids are a silent no-op.
func DeleteItem(st *store.State, id string) DeleteResult {
	for i := range st.Items {
		if st.Items[i].ID == id {
			title := st.Items[i].Title
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
			n := note(model.NotifySuccess, "Item deleted", title)
			return DeleteResult{Changed: true, Notification: &n}
		}
	}
	return DeleteResult{}
}

// ToggleItem flips the completion flag via UpdateItem. The notification
// wording depends on the resulting state.
func ToggleItem(st *store.State, id string, now time.Time) UpdateResult {
	it, ok := st.FindItem(id)
	if !ok {
		return UpdateResult{}
	}
	next := !it.Completed
	res := UpdateItem(st, id, ItemPatch{Completed: &next}, now)
	if res.Changed {
		title := "Item reopened"
		if next {
			title = "Item completed"
		}
		n := note(model.NotifySuccess, title, res.Item.Title)
		res.Notification = &n
	}
	return res
}

// DuplicateItem creates a new item copying all fields except identifier,
// timestamps, and completion, with a suffixed title. Routes through
// CreateItem so the copy gets the usual stamps.
func DuplicateItem(st *store.State, id string, now time.Time) UpdateResult {
	src, ok := st.FindItem(id)
	if !ok {
		return UpdateResult{}
	}
	var due *time.Time
	if src.Due != nil {
		d := *src.Due
		due = &d
	}
	tags := make([]string, len(src.Tags))
	copy(tags, src.Tags)
	res := CreateItem(st, ItemDraft{
		Title:       src.Title + DuplicateTitleSuffix,
		Description: src.Description,
		Priority:    src.Priority,
		CategoryID:  src.CategoryID,
		Due:         due,
		Tags:        tags,
	}, now)
	copyItem := res.Item
	n := note(model.NotifySuccess, "Item duplicated", copyItem.Title)
	it, _ := st.FindItem(copyItem.ID)
	return UpdateResult{Item: it, Changed: true, Notification: &n}
}

type BulkResult struct {
	Requested    int
	Applied      int
	Notification *model.Notification
}

// BulkDelete removes every matching item. The aggregate notification
// reports the number of requested ids, not verified deletions; Applied
// carries the true count. Kept for behavioral compatibility.
func BulkDelete(st *store.State, ids []string) BulkResult {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	kept := st.Items[:0]
	removed := 0
	for _, it := range st.Items {
		if want[it.ID] {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	st.Items = kept

	res := BulkResult{Requested: len(ids), Applied: removed}
	if len(ids) > 0 {
		n := note(model.NotifySuccess, "Items deleted", fmt.Sprintf("%d items deleted", len(ids)))
		res.Notification = &n
	}
	return res
}

// BulkUpdate applies the same patch to every matching item (best-effort;
// absent ids are skipped) and emits one aggregate notification.
func BulkUpdate(st *store.State, ids []string, patch ItemPatch, now time.Time) BulkResult {
	res := BulkResult{Requested: len(ids)}
	if patch.isZero() {
		return res
	}
	for _, id := range ids {
		it, ok := st.FindItem(id)
		if !ok {
			continue
		}
		applyItemPatch(it, patch)
		stampUpdated(it, now)
		res.Applied++
	}
	if res.Applied > 0 {
		n := note(model.NotifySuccess, "Items updated", fmt.Sprintf("%d items updated", res.Applied))
		res.Notification = &n
	}
	return res
}

func note(kind model.NotificationKind, title, body string) model.Notification {
	return model.Notification{Kind: kind, Title: title, Body: body}
}
