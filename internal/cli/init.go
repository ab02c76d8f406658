package cli

import (
	"os"
	"path/filepath"

	"dolist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a project-local store in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Dir
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = filepath.Join(cwd, ".dolist")
				app.Dir = dir
			}
			s := store.Store{Dir: dir}
			st, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{
				"dir":        dir,
				"items":      len(st.Items),
				"categories": len(st.Categories),
			}, nil))
		},
	}
	return cmd
}
