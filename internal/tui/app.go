package tui

import (
	"fmt"
	"strings"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/mutate"
	"dolist-cli/internal/notify"
	"dolist-cli/internal/query"
	"dolist-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
	modeDetail
)

type tickMsg time.Time

type appModel struct {
	s     store.Store
	st    *store.State
	notes *notify.Queue

	mode    mode
	cursor  int
	sortKey query.SortKey
	desc    bool
	input   textinput.Model

	width  int
	height int
	err    error
}

func newAppModel(s store.Store, st *store.State) *appModel {
	ti := textinput.New()
	ti.CharLimit = 200
	return &appModel{
		s:       s,
		st:      st,
		notes:   notify.New(nil),
		sortKey: query.SortCreated,
		input:   ti,
	}
}

func (m *appModel) Init() tea.Cmd {
	return tick()
}

// The notification queue expires entries on real timers; a coarse tick
// keeps the footer repainting as they disappear.
func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *appModel) visible() []model.Item {
	return query.Sort(query.Filter(m.st.Items, m.st.Filter), m.sortKey, m.desc)
}

func (m *appModel) clampCursor(items []model.Item) {
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) save() {
	if err := m.s.Save(m.st); err != nil {
		m.err = err
	}
}

func (m *appModel) push(n *model.Notification) {
	if n != nil {
		m.notes.Add(*n)
	}
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeSearch:
			return m.updateInput(msg)
		case modeDetail:
			switch msg.String() {
			case "esc", "q", "enter":
				m.mode = modeList
			}
			return m, nil
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.mode == modeAdd && value != "" {
			res := mutate.CreateItem(m.st, mutate.ItemDraft{Title: value}, time.Now())
			m.save()
			m.push(&res.Notification)
		}
		if m.mode == modeSearch {
			mutate.SetFilter(m.st, mutate.FilterPatch{Search: &value})
			m.save()
		}
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visible()
	m.clampCursor(items)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if len(items) > 0 {
			res := mutate.ToggleItem(m.st, items[m.cursor].ID, time.Now())
			m.save()
			m.push(res.Notification)
		}
	case "d":
		if len(items) > 0 {
			res := mutate.DeleteItem(m.st, items[m.cursor].ID)
			m.save()
			m.push(res.Notification)
		}
	case "y":
		if len(items) > 0 {
			res := mutate.DuplicateItem(m.st, items[m.cursor].ID, time.Now())
			m.save()
			m.push(res.Notification)
		}
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "New item title"
		m.input.Focus()
		return m, textinput.Blink
	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search"
		m.input.SetValue(m.st.Filter.Search)
		m.input.Focus()
		return m, textinput.Blink
	case "f":
		next := cycleStatus(m.st.Filter.Status)
		mutate.SetFilter(m.st, mutate.FilterPatch{Status: &next})
		m.save()
	case "p":
		next := cyclePriority(m.st.Filter.Priority)
		mutate.SetFilter(m.st, mutate.FilterPatch{Priority: &next})
		m.save()
	case "c":
		next := m.cycleCategory(m.st.Filter.CategoryID)
		mutate.SetFilter(m.st, mutate.FilterPatch{CategoryID: &next})
		m.save()
	case "o":
		m.sortKey = cycleSort(m.sortKey)
	case "O":
		m.desc = !m.desc
	case "x":
		mutate.ClearFilters(m.st)
		m.save()
	case "esc":
		m.notes.Clear()
	case "enter":
		if len(items) > 0 {
			m.mode = modeDetail
		}
	}
	return m, nil
}

func cycleStatus(s model.StatusFilter) model.StatusFilter {
	switch s {
	case model.StatusAll:
		return model.StatusActive
	case model.StatusActive:
		return model.StatusCompleted
	default:
		return model.StatusAll
	}
}

func cyclePriority(p model.Priority) model.Priority {
	switch p {
	case "":
		return model.PriorityLow
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	case model.PriorityHigh:
		return model.PriorityUrgent
	default:
		return ""
	}
}

func cycleSort(k query.SortKey) query.SortKey {
	switch k {
	case query.SortCreated:
		return query.SortDue
	case query.SortDue:
		return query.SortPriority
	case query.SortPriority:
		return query.SortTitle
	default:
		return query.SortCreated
	}
}

func (m *appModel) cycleCategory(current string) string {
	if len(m.st.Categories) == 0 {
		return ""
	}
	if current == "" {
		return m.st.Categories[0].ID
	}
	for i, c := range m.st.Categories {
		if c.ID == current {
			if i+1 < len(m.st.Categories) {
				return m.st.Categories[i+1].ID
			}
			return ""
		}
	}
	return ""
}

func (m *appModel) View() string {
	if m.mode == modeDetail {
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("dolist"))
	b.WriteString("  ")
	b.WriteString(mutedText.Render(m.filterSummary()))
	b.WriteString("\n\n")

	items := m.visible()
	m.clampCursor(items)
	if len(items) == 0 {
		b.WriteString(mutedText.Render("  nothing here. press a to add an item"))
		b.WriteString("\n")
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	for i, it := range items {
		line := m.itemLine(it)
		line = ansi.Truncate(line, width-2, "…")
		if i == m.cursor {
			line = selectedRow.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd, modeSearch:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, n := range m.notes.List() {
		line := noteText[n.Kind].Render(n.Title)
		if n.Body != "" {
			line += " " + mutedText.Render(n.Body)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(noteText[model.NotifyError].Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpText.Render("a add · space toggle · d delete · y duplicate · / search · f status · p priority · c category · o sort · x clear filters · q quit"))
	return b.String()
}

func (m *appModel) itemLine(it model.Item) string {
	box := "[ ]"
	title := it.Title
	if it.Completed {
		box = "[x]"
		title = doneText.Render(title)
	}
	parts := []string{box, title, priorityText[it.Priority].Render(string(it.Priority)),
		mutedText.Render(m.st.CategoryName(it.CategoryID))}
	if it.Due != nil {
		parts = append(parts, mutedText.Render("due "+it.Due.Format("2006-01-02")))
	}
	if len(it.Tags) > 0 {
		parts = append(parts, mutedText.Render("#"+strings.Join(it.Tags, " #")))
	}
	return strings.Join(parts, " ")
}

func (m *appModel) filterSummary() string {
	f := m.st.Filter
	parts := []string{string(f.Status)}
	if f.Priority != "" {
		parts = append(parts, string(f.Priority))
	}
	if f.CategoryID != "" {
		parts = append(parts, m.st.CategoryName(f.CategoryID))
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("/%s/", f.Search))
	}
	if f.Tag != "" {
		parts = append(parts, "#"+f.Tag)
	}
	dir := "asc"
	if m.desc {
		dir = "desc"
	}
	parts = append(parts, fmt.Sprintf("sort:%s %s", m.sortKey, dir))
	return strings.Join(parts, " · ")
}

func (m *appModel) viewDetail() string {
	items := m.visible()
	m.clampCursor(items)
	if len(items) == 0 {
		return mutedText.Render("nothing selected")
	}
	it := items[m.cursor]

	var b strings.Builder
	b.WriteString(headerStyle.Render(it.Title))
	b.WriteString("\n")
	b.WriteString(mutedText.Render(it.ID))
	b.WriteString("\n\n")
	b.WriteString(priorityText[it.Priority].Render(string(it.Priority)))
	b.WriteString("  ")
	b.WriteString(mutedText.Render(m.st.CategoryName(it.CategoryID)))
	if it.Due != nil {
		b.WriteString("  ")
		b.WriteString(mutedText.Render("due " + it.Due.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n\n")
	if it.Description != "" {
		width := m.width - 4
		if width <= 0 {
			width = 76
		}
		b.WriteString(renderMarkdown(it.Description, width))
		b.WriteString("\n\n")
	}
	b.WriteString(helpText.Render("esc back"))
	return b.String()
}
