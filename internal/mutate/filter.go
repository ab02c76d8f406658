package mutate

import (
	"strings"

	"dolist-cli/internal/model"
	"dolist-cli/internal/store"
)

// FilterPatch mirrors FilterSpec with every criterion independently
// present-or-absent. Setting a criterion to its zero value clears it.
type FilterPatch struct {
	Status     *model.StatusFilter
	Priority   *model.Priority
	CategoryID *string
	Search     *string
	Tag        *string
}

// SetFilter merges the patch into the active filter spec. Filter changes
// emit no notification.
func SetFilter(st *store.State, patch FilterPatch) model.FilterSpec {
	if patch.Status != nil {
		st.Filter.Status = *patch.Status
	}
	if st.Filter.Status == "" {
		st.Filter.Status = model.StatusAll
	}
	if patch.Priority != nil {
		st.Filter.Priority = *patch.Priority
	}
	if patch.CategoryID != nil {
		st.Filter.CategoryID = strings.TrimSpace(*patch.CategoryID)
	}
	if patch.Search != nil {
		st.Filter.Search = strings.TrimSpace(*patch.Search)
	}
	if patch.Tag != nil {
		st.Filter.Tag = strings.TrimSpace(*patch.Tag)
	}
	return st.Filter
}

// ClearFilters resets the filter spec to its default.
func ClearFilters(st *store.State) model.FilterSpec {
	st.Filter = model.DefaultFilter()
	return st.Filter
}
