package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"dolist-cli/internal/mutate"
	"dolist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export items + categories as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := store.ExportSnapshot(st, time.Now())
			b, err := store.EncodeSnapshot(doc)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) != "" {
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope(map[string]any{
					"file":       out,
					"items":      len(doc.Items),
					"categories": len(doc.Categories),
				}, nil))
			}
			_, err = cmd.OutOrStdout().Write(append(b, '\n'))
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to a file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a snapshot document (appends to existing data)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var data []byte
			if strings.TrimSpace(in) != "" {
				data, err = os.ReadFile(in)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			res := mutate.ImportSnapshot(st, data, time.Now())
			if res.Changed > 0 {
				if err := s.Save(st); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, envelope(map[string]any{
				"items":      res.ItemsAdded,
				"categories": res.CategoriesAdded,
			}, &res.Notification))
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Read from a file instead of stdin")
	return cmd
}

func newClearAllCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-all",
		Short: "Reset items, categories, and filter to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.ClearAll(st)
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{"cleared": true}, &res.Notification))
		},
	}
	return cmd
}
