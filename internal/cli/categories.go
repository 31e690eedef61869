package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"feedsync/internal/app"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage feed categories",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				category, err := a.Categories.Create(ctx, args[0])
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), category)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (%s).\n", category.Name, category.ID)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				categories, err := a.Categories.List(ctx)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), categories)
				}
				return printCategories(cmd.OutOrStdout(), categories)
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				category, err := a.Categories.Rename(ctx, args[0], args[1])
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), category)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s to %q.\n", category.ID, category.Name)
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a category; its feeds become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Categories.Delete(ctx, args[0]); err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed category %s.\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, rename, remove)
	return cmd
}
