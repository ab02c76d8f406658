package store

import (
	"encoding/json"
	"errors"
	"time"

	"dolist-cli/internal/model"
)

// ExportSnapshot produces a self-describing copy of Items + Categories.
// Pure: no side effects on the state.
func ExportSnapshot(st *State, now time.Time) model.ExportDoc {
	items := make([]model.Item, len(st.Items))
	copy(items, st.Items)
	cats := make([]model.Category, len(st.Categories))
	copy(cats, st.Categories)
	return model.ExportDoc{
		ExportedAt: now.UTC(),
		Items:      items,
		Categories: cats,
	}
}

func EncodeSnapshot(doc model.ExportDoc) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

var ErrMalformedSnapshot = errors.New("malformed snapshot document")

// ParseSnapshot decodes an export document, failing closed on anything that
// does not carry both collections (e.g. `{}` or a truncated file). Callers
// must not mutate state when an error is returned.
func ParseSnapshot(data []byte) (model.ExportDoc, error) {
	var doc model.ExportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.ExportDoc{}, ErrMalformedSnapshot
	}
	if doc.Items == nil || doc.Categories == nil {
		return model.ExportDoc{}, ErrMalformedSnapshot
	}
	return doc, nil
}
