package store

import (
	"context"
	"os"
	"path/filepath"

	"dolist-cli/internal/model"
)

// State is the in-memory workspace state: the canonical Item and Category
// collections plus the persisted FilterSpec. Notifications are deliberately
// absent; they are ephemeral and owned by the notify package.
type State struct {
	Version    int              `json:"version"`
	Items      []model.Item     `json:"items"`
	Categories []model.Category `json:"categories"`
	Filter     model.FilterSpec `json:"filter"`
}

// NewState returns the well-defined default state: no items, the default
// category set, and the default filter.
func NewState() *State {
	return &State{
		Version:    1,
		Items:      []model.Item{},
		Categories: DefaultCategories(),
		Filter:     model.DefaultFilter(),
	}
}

// Store persists a workspace State under Dir (SQLite).
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .dolist dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".dolist")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".dolist"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// Load returns the persisted state, or the default state when nothing has
// been saved yet. Unreadable rows are skipped rather than failing the load;
// a workspace must always open.
func (s Store) Load() (*State, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.loadSQLite(context.Background())
}

func (s Store) Save(st *State) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.saveSQLite(context.Background(), st)
}

func (st *State) FindItem(id string) (*model.Item, bool) {
	for i := range st.Items {
		if st.Items[i].ID == id {
			return &st.Items[i], true
		}
	}
	return nil, false
}

func (st *State) FindCategory(id string) (*model.Category, bool) {
	for i := range st.Categories {
		if st.Categories[i].ID == id {
			return &st.Categories[i], true
		}
	}
	return nil, false
}

// CategoryName resolves a category id for display. Dangling references
// (possible after importing inconsistent data) degrade to "Uncategorized"
// rather than failing.
func (st *State) CategoryName(id string) string {
	if c, ok := st.FindCategory(id); ok {
		return c.Name
	}
	return "Uncategorized"
}
