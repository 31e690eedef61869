package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"feedsync/internal/app"
	"feedsync/internal/model"
	"feedsync/internal/service"
)

func newFeedsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feeds",
		Short: "Manage feed subscriptions",
	}
	cmd.AddCommand(
		newFeedsAddCmd(opts),
		newFeedsListCmd(opts),
		newFeedsShowCmd(opts),
		newFeedsUpdateCmd(opts),
		newFeedsRemoveCmd(opts),
		newFeedsRefreshCmd(opts),
		newFeedsValidateCmd(opts),
	)
	return cmd
}

func newFeedsAddCmd(opts *rootOptions) *cobra.Command {
	var categoryID, title string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Subscribe to a feed and import its current articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				feed, err := a.Feeds.Add(ctx, args[0], optionalFlag(categoryID), title)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), feed)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s) with %d article(s).\n", feed.Title, feed.ID, feed.TotalCount)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")
	cmd.Flags().StringVar(&title, "title", "", "custom title")
	return cmd
}

func newFeedsListCmd(opts *rootOptions) *cobra.Command {
	var categoryID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscribed feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				feeds, err := a.Feeds.List(ctx, optionalFlag(categoryID))
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), feeds)
				}
				return printFeeds(cmd.OutOrStdout(), feeds)
			})
		},
	}
	cmd.Flags().StringVar(&categoryID, "category", "", "only feeds in this category")
	return cmd
}

func newFeedsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				feed, err := a.Feeds.GetByID(ctx, args[0])
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), feed)
				}
				return printFeed(cmd.OutOrStdout(), feed)
			})
		},
	}
}

func newFeedsUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		title         string
		categoryID    string
		clearCategory bool
		active        bool
		interval      int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a feed's title, category, state or refresh interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := service.FeedUpdate{ClearCategory: clearCategory}
			flags := cmd.Flags()
			if flags.Changed("title") {
				update.Title = &title
			}
			if flags.Changed("category") {
				update.CategoryID = &categoryID
			}
			if flags.Changed("active") {
				update.IsActive = &active
			}
			if flags.Changed("interval") {
				update.RefreshInterval = &interval
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				feed, err := a.Feeds.Update(ctx, args[0], update)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), feed)
				}
				return printFeed(cmd.OutOrStdout(), feed)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&categoryID, "category", "", "move to category id")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "remove the feed from its category")
	cmd.Flags().BoolVar(&active, "active", true, "include the feed in refresh-all runs")
	cmd.Flags().IntVar(&interval, "interval", 0, "refresh interval in minutes (0 uses the default)")
	return cmd
}

func newFeedsRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Unsubscribe from a feed and delete its articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Feeds.Delete(ctx, args[0]); err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed feed %s.\n", args[0])
				return nil
			})
		},
	}
}

func newFeedsRefreshCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <id>...",
		Short: "Refresh specific feeds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if len(args) == 1 {
					result, err := a.Refresh.RefreshFeed(ctx, args[0])
					if err != nil {
						return describeError(err)
					}
					if opts.jsonOutput {
						return writeJSON(cmd.OutOrStdout(), result)
					}
					if !result.Success {
						return fmt.Errorf("refresh failed: %s", result.Error)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d new article(s).\n", result.NewArticleCount)
					return nil
				}

				batch, err := a.Refresh.RefreshFeeds(ctx, args)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), batch)
				}
				return printBatch(cmd.OutOrStdout(), batch)
			})
		},
	}
}

func newFeedsValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <url>",
		Short: "Check whether a URL serves a parseable feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				result := a.Feeds.Validate(ctx, args[0])
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				if !result.IsValid {
					return fmt.Errorf("invalid feed (%s): %s", result.ErrorType, result.Error)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Valid %s feed: %s\n", result.FeedType, result.Title)
				return nil
			})
		},
	}
}

func newRefreshCmd(opts *rootOptions) *cobra.Command {
	var stale bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh all active feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				run := a.Refresh.RefreshAll
				if stale {
					run = func(ctx context.Context) (model.BatchRefreshResult, error) {
						return a.Refresh.RefreshStale(ctx, a.Config.Refresh.DefaultFeedInterval)
					}
				}
				batch, err := run(ctx)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), batch)
				}
				return printBatch(cmd.OutOrStdout(), batch)
			})
		},
	}
	cmd.Flags().BoolVar(&stale, "stale", false, "only refresh feeds whose interval has elapsed")
	return cmd
}

func optionalFlag(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// describeError turns service sentinels into short user-facing messages.
func describeError(err error) error {
	var conflict *service.FeedConflictError
	switch {
	case errors.As(err, &conflict):
		return fmt.Errorf("already subscribed as %q (%s)", conflict.ExistingFeed.Title, conflict.ExistingFeed.ID)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalid),
		errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrFeedFetch):
		return err
	default:
		return fmt.Errorf("unexpected error: %w", err)
	}
}
