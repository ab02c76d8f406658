package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dolist-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category commands",
	}
	cmd.AddCommand(newCategoriesCreateCmd(app))
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesShowCmd(app))
	cmd.AddCommand(newCategoriesUpdateCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	return cmd
}

func newCategoriesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <category-id>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := st.FindCategory(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("category", args[0]))
			}
			return writeOut(cmd, app, envelope(c, nil))
		},
	}
	return cmd
}

func newCategoriesCreateCmd(app *App) *cobra.Command {
	var name string
	var color string
	var icon string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			res := mutate.CreateCategory(st, mutate.CategoryDraft{
				Name:  name,
				Color: color,
				Icon:  icon,
			}, time.Now())
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(res.Category, res.Notification))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&color, "color", "", "Display color token (e.g. #4f9cf9)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon token (optional)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				fmt.Fprint(cmd.OutOrStdout(), renderCategoriesTable(st))
				return nil
			}
			return writeOut(cmd, app, envelope(st.Categories, nil))
		},
	}
	return cmd
}

func newCategoriesUpdateCmd(app *App) *cobra.Command {
	var name string
	var color string
	var icon string

	cmd := &cobra.Command{
		Use:   "update <category-id>",
		Short: "Update category fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var patch mutate.CategoryPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("icon") {
				patch.Icon = &icon
			}
			res := mutate.UpdateCategory(st, args[0], patch)
			if !res.Changed {
				return writeErr(cmd, errNotFound("category", args[0]))
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(res.Category, res.Notification))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color token")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon token")

	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category (items are reassigned to the default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.DeleteCategory(st, args[0], time.Now())
			if !res.Changed {
				return writeErr(cmd, errNotFound("category", args[0]))
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{
				"id":         args[0],
				"deleted":    true,
				"reassigned": res.Reassigned,
			}, res.Notification))
		},
	}
	return cmd
}
