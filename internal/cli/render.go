package cli

import (
	"fmt"
	"sort"
	"strings"

	"dolist-cli/internal/model"
	"dolist-cli/internal/query"
	"dolist-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Human-readable rendering for --format table. JSON stays the scriptable
// contract; this is display-only.

const tableTitleWidth = 48

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.AdaptiveColor{Light: "246", Dark: "241"})

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "78"}),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "136", Dark: "179"}),
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "214"}),
		model.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true),
	}
)

func categoryStyle(st *store.State, id string) lipgloss.Style {
	if c, ok := st.FindCategory(id); ok && strings.TrimSpace(c.Color) != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
	}
	return mutedStyle
}

func renderItemsTable(st *store.State, items []model.Item) string {
	if len(items) == 0 {
		return mutedStyle.Render("no items") + "\n"
	}
	var b strings.Builder
	for _, it := range items {
		box := "[ ]"
		title := it.Title
		if it.Completed {
			box = "[x]"
			title = doneStyle.Render(title)
		}
		title = ansi.Truncate(title, tableTitleWidth, "…")

		meta := []string{priorityStyles[it.Priority].Render(string(it.Priority))}
		meta = append(meta, categoryStyle(st, it.CategoryID).Render(st.CategoryName(it.CategoryID)))
		if it.Due != nil {
			meta = append(meta, mutedStyle.Render("due "+it.Due.Format("2006-01-02")))
		}
		if len(it.Tags) > 0 {
			meta = append(meta, mutedStyle.Render("#"+strings.Join(it.Tags, " #")))
		}

		fmt.Fprintf(&b, "%s %s  %s  %s\n", box, mutedStyle.Render(it.ID), title, strings.Join(meta, " · "))
	}
	return b.String()
}

func renderCategoriesTable(st *store.State) string {
	var b strings.Builder
	for _, c := range st.Categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		fmt.Fprintf(&b, "%s %s  %s\n", swatch, mutedStyle.Render(c.ID), c.Name)
	}
	return b.String()
}

func renderStats(st *store.State, stats query.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d total · %d done · %d pending · %d overdue\n",
		stats.Total, stats.Completed, stats.Pending, stats.Overdue)

	for _, p := range model.Priorities {
		fmt.Fprintf(&b, "  %s %d\n", priorityStyles[p].Render(string(p)), stats.ByPriority[p])
	}

	keys := make([]string, 0, len(stats.ByCategory))
	for k := range stats.ByCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s %d\n", categoryStyle(st, k).Render(st.CategoryName(k)), stats.ByCategory[k])
	}
	return b.String()
}
