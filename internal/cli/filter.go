package cli

import (
	"fmt"
	"strings"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/mutate"
	"dolist-cli/internal/query"

	"github.com/spf13/cobra"
)

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Persisted filter spec",
	}
	cmd.AddCommand(newFilterShowCmd(app))
	cmd.AddCommand(newFilterSetCmd(app))
	cmd.AddCommand(newFilterClearCmd(app))
	return cmd
}

func newFilterShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(st.Filter, nil))
		},
	}
	return cmd
}

func newFilterSetCmd(app *App) *cobra.Command {
	var status string
	var priority string
	var categoryID string
	var search string
	var tag string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Merge criteria into the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var patch mutate.FilterPatch
			if cmd.Flags().Changed("status") {
				v, ok := model.ParseStatusFilter(status)
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid status %q (expected all|active|completed)", status))
				}
				patch.Status = &v
			}
			if cmd.Flags().Changed("priority") {
				var p model.Priority
				if strings.TrimSpace(priority) != "" {
					v, ok := model.ParsePriority(priority)
					if !ok {
						return writeErr(cmd, fmt.Errorf("invalid priority %q", priority))
					}
					p = v
				}
				patch.Priority = &p
			}
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &categoryID
			}
			if cmd.Flags().Changed("search") {
				patch.Search = &search
			}
			if cmd.Flags().Changed("tag") {
				patch.Tag = &tag
			}

			spec := mutate.SetFilter(st, patch)
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(spec, nil))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status (all|active|completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (empty clears)")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category id (empty clears)")
	cmd.Flags().StringVar(&search, "search", "", "Search term (empty clears)")
	cmd.Flags().StringVar(&tag, "tag", "", "Tag (empty clears)")

	return cmd
}

func newFilterClearCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the filter to its default",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			spec := mutate.ClearFilters(st)
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(spec, nil))
		},
	}
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics over all items",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			stats := query.Compute(st.Items, time.Now())
			if app.Format == "table" {
				fmt.Fprint(cmd.OutOrStdout(), renderStats(st, stats))
				return nil
			}
			return writeOut(cmd, app, envelope(stats, nil))
		},
	}
	return cmd
}
