package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dolist-cli/internal/model"
	"dolist-cli/internal/mutate"
	"dolist-cli/internal/query"
	"dolist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}

	cmd.AddCommand(newItemsCreateCmd(app))
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	cmd.AddCommand(newItemsDuplicateCmd(app))
	cmd.AddCommand(newItemsBulkDeleteCmd(app))
	cmd.AddCommand(newItemsBulkUpdateCmd(app))
	cmd.AddCommand(newItemsTagsCmd(app))

	return cmd
}

func newItemsCreateCmd(app *App) *cobra.Command {
	var title string
	var description string
	var priority string
	var categoryID string
	var due string
	var tags []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errors.New("missing --title"))
			}
			draft := mutate.ItemDraft{
				Title:       title,
				Description: description,
				Tags:        tags,
			}
			if strings.TrimSpace(priority) != "" {
				p, ok := model.ParsePriority(priority)
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid priority %q (expected low|medium|high|urgent)", priority))
				}
				draft.Priority = p
			}
			if strings.TrimSpace(categoryID) != "" {
				if _, ok := st.FindCategory(categoryID); !ok {
					return writeErr(cmd, errNotFound("category", categoryID))
				}
				draft.CategoryID = categoryID
			}
			if strings.TrimSpace(due) != "" {
				t, err := parseDue(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				draft.Due = &t
			}

			res := mutate.CreateItem(st, draft, time.Now())
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(res.Item, &res.Notification))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&description, "description", "", "Description (optional, markdown)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|urgent; default medium)")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category id (default: "+store.DefaultCategoryID+")")
	cmd.Flags().StringVar(&due, "due", "", "Due time (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var status string
	var priority string
	var categoryID string
	var search string
	var tag string
	var sortKey string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (persisted filter, overridable per-flag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			spec := st.Filter
			if cmd.Flags().Changed("status") {
				v, ok := model.ParseStatusFilter(status)
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid status %q (expected all|active|completed)", status))
				}
				spec.Status = v
			}
			if cmd.Flags().Changed("priority") {
				if strings.TrimSpace(priority) == "" {
					spec.Priority = ""
				} else {
					p, ok := model.ParsePriority(priority)
					if !ok {
						return writeErr(cmd, fmt.Errorf("invalid priority %q", priority))
					}
					spec.Priority = p
				}
			}
			if cmd.Flags().Changed("category") {
				spec.CategoryID = strings.TrimSpace(categoryID)
			}
			if cmd.Flags().Changed("search") {
				spec.Search = search
			}
			if cmd.Flags().Changed("tag") {
				spec.Tag = strings.TrimSpace(tag)
			}

			out := query.Filter(st.Items, spec)
			if strings.TrimSpace(sortKey) != "" {
				k, ok := query.ParseSortKey(sortKey)
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid sort key %q (expected created|due|priority|title)", sortKey))
				}
				out = query.Sort(out, k, desc)
			}

			if app.Format == "table" {
				fmt.Fprint(cmd.OutOrStdout(), renderItemsTable(st, out))
				return nil
			}
			return writeOut(cmd, app, envelope(out, nil))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status filter (all|active|completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority filter")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category filter")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring of title or description")
	cmd.Flags().StringVar(&tag, "tag", "", "Exact tag filter")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (created|due|priority|title)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, ok := st.FindItem(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			return writeOut(cmd, app, envelope(it, nil))
		},
	}
	return cmd
}

// itemPatchFlags binds the shared update/bulk-update flag set and builds an
// ItemPatch from exactly the flags that were set.
type itemPatchFlags struct {
	title       string
	description string
	completed   bool
	priority    string
	categoryID  string
	due         string
	clearDue    bool
	tags        []string
}

func (f *itemPatchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "New title")
	cmd.Flags().StringVar(&f.description, "description", "", "New description")
	cmd.Flags().BoolVar(&f.completed, "completed", false, "Set completion flag")
	cmd.Flags().StringVar(&f.priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&f.categoryID, "category", "", "New category id")
	cmd.Flags().StringVar(&f.due, "due", "", "New due time (YYYY-MM-DD or RFC3339)")
	cmd.Flags().BoolVar(&f.clearDue, "clear-due", false, "Remove the due time")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "Replace the tag set (repeatable)")
}

func (f *itemPatchFlags) patch(cmd *cobra.Command, st *store.State) (mutate.ItemPatch, error) {
	var p mutate.ItemPatch
	if cmd.Flags().Changed("title") {
		p.Title = &f.title
	}
	if cmd.Flags().Changed("description") {
		p.Description = &f.description
	}
	if cmd.Flags().Changed("completed") {
		p.Completed = &f.completed
	}
	if cmd.Flags().Changed("priority") {
		pr, ok := model.ParsePriority(f.priority)
		if !ok {
			return p, fmt.Errorf("invalid priority %q", f.priority)
		}
		p.Priority = &pr
	}
	if cmd.Flags().Changed("category") {
		if _, ok := st.FindCategory(f.categoryID); !ok {
			return p, errNotFound("category", f.categoryID)
		}
		p.CategoryID = &f.categoryID
	}
	if cmd.Flags().Changed("due") {
		t, err := parseDue(f.due)
		if err != nil {
			return p, err
		}
		p.Due = &t
	}
	if f.clearDue {
		p.ClearDue = true
	}
	if cmd.Flags().Changed("tag") {
		p.Tags = &f.tags
	}
	return p, nil
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var flags itemPatchFlags

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update item fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			patch, err := flags.patch(cmd, st)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.UpdateItem(st, args[0], patch, time.Now())
			if !res.Changed {
				// Silent no-op on missing id, but the CLI still reports it.
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(res.Item, res.Notification))
		},
	}
	flags.register(cmd)
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.DeleteItem(st, args[0])
			if !res.Changed {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{"id": args[0], "deleted": true}, res.Notification))
		},
	}
	return cmd
}

func newItemsToggleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Flip completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.ToggleItem(st, args[0], time.Now())
			if !res.Changed {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(res.Item, res.Notification))
		},
	}
	return cmd
}

func newItemsDuplicateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate <item-id>",
		Short: "Duplicate an item (fresh id, completion reset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.DuplicateItem(st, args[0], time.Now())
			if !res.Changed {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(res.Item, res.Notification))
		},
	}
	return cmd
}

func newItemsBulkDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk-delete <item-id>...",
		Short: "Delete many items (best-effort)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.BulkDelete(st, args)
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{
				"requested": res.Requested,
				"deleted":   res.Applied,
			}, res.Notification))
		},
	}
	return cmd
}

func newItemsBulkUpdateCmd(app *App) *cobra.Command {
	var flags itemPatchFlags

	cmd := &cobra.Command{
		Use:   "bulk-update <item-id>...",
		Short: "Apply the same update to many items (best-effort)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, s, err := loadState(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			patch, err := flags.patch(cmd, st)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.BulkUpdate(st, args, patch, time.Now())
			if err := s.Save(st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{
				"requested": res.Requested,
				"updated":   res.Applied,
			}, res.Notification))
		},
	}
	flags.register(cmd)
	return cmd
}

func newItemsTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag commands",
	}
	cmd.AddCommand(newItemsTagsAddCmd(app))
	cmd.AddCommand(newItemsTagsRmCmd(app))
	return cmd
}

func newItemsTagsAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <item-id> <tag>...",
		Short: "Add tags to an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, app, args[0], func(tags []string) []string {
				return append(tags, args[1:]...)
			})
		},
	}
	return cmd
}

func newItemsTagsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <item-id> <tag>...",
		Short: "Remove tags from an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			drop := map[string]bool{}
			for _, t := range args[1:] {
				drop[t] = true
			}
			return mutateTags(cmd, app, args[0], func(tags []string) []string {
				out := tags[:0]
				for _, t := range tags {
					if !drop[t] {
						out = append(out, t)
					}
				}
				return out
			})
		},
	}
	return cmd
}

func mutateTags(cmd *cobra.Command, app *App, id string, f func([]string) []string) error {
	st, s, err := loadState(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	it, ok := st.FindItem(id)
	if !ok {
		return writeErr(cmd, errNotFound("item", id))
	}
	tags := f(append([]string(nil), it.Tags...))
	res := mutate.UpdateItem(st, id, mutate.ItemPatch{Tags: &tags}, time.Now())
	if err := s.Save(st); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, envelope(res.Item, res.Notification))
}
