package store

import (
	"strings"
	"testing"

	"dolist-cli/internal/model"
)

func TestNextID_PrefixAndUniqueness(t *testing.T) {
	t.Parallel()

	st := NewState()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NextID(st, "item")
		if !strings.HasPrefix(id, "item-") {
			t.Fatalf("expected item- prefix, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		// Register so collision checking actually sees prior ids.
		st.Items = append(st.Items, model.Item{ID: id})
	}
}

func TestNextID_SkipsExistingIDs(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.Items = append(st.Items, model.Item{ID: "item-taken"})
	id := NextID(st, "item")
	if id == "item-taken" {
		t.Fatalf("NextID returned an existing id")
	}
}
