package cli

import (
	"fmt"
	"os"
	"strings"

	"dolist-cli/internal/format"
	"dolist-cli/internal/model"
	"dolist-cli/internal/store"
	"dolist-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dolist",
		Short:        "Local-first todo manager (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  dolist

  # Scriptable commands
  dolist items list

  # What needs attention
  dolist stats

  # Direct record lookup (shortcut for: dolist items show <item-id>)
  dolist item-vth
  dolist cat-work
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DOLIST_DIR", ""), "Path to store dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("DOLIST_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DOLIST_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newFilterCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newClearAllCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, s, err := loadState(app)
	if err != nil {
		return err
	}
	return tui.Run(s, st)
}

func loadState(app *App) (*store.State, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		// Workspace-first:
		// 1) --workspace
		// 2) ~/.dolist/config.json currentWorkspace
		// 3) project-local .dolist discovery
		// 4) the "default" workspace
		if app.Workspace != "" {
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		} else if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			d, err := store.WorkspaceDir(cfg.CurrentWorkspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			app.Workspace = cfg.CurrentWorkspace
			dir = d
		} else if cwd, err := os.Getwd(); err == nil {
			if found, ok := store.DiscoverDir(cwd); ok {
				dir = found
			}
		}
		if dir == "" {
			app.Workspace = "default"
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		}
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	st, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return st, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope is the JSON shape every command prints: the payload plus the
// notification the mutation emitted, if any.
func envelope(data any, n *model.Notification) map[string]any {
	out := map[string]any{"data": data}
	if n != nil {
		out["notification"] = n
	}
	return out
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
