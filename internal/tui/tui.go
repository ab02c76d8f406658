package tui

import (
	"dolist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store, st *store.State) error {
	m := newAppModel(s, st)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
