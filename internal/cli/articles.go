package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"feedsync/internal/app"
	"feedsync/internal/service"
)

func newArticlesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Browse articles and change their read or starred state",
	}
	cmd.AddCommand(
		newArticlesListCmd(opts),
		newArticlesReadCmd(opts),
		newArticlesStarCmd(opts),
	)
	return cmd
}

func newArticlesListCmd(opts *rootOptions) *cobra.Command {
	var (
		feedID, categoryID string
		unread, starred    bool
		limit, offset      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				articles, err := a.Articles.List(ctx, service.ArticleListParams{
					FeedID:      optionalFlag(feedID),
					CategoryID:  optionalFlag(categoryID),
					UnreadOnly:  unread,
					StarredOnly: starred,
					Limit:       limit,
					Offset:      offset,
				})
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), articles)
				}
				return printArticles(cmd.OutOrStdout(), articles)
			})
		},
	}
	cmd.Flags().StringVar(&feedID, "feed", "", "only articles of this feed")
	cmd.Flags().StringVar(&categoryID, "category", "", "only articles of feeds in this category")
	cmd.Flags().BoolVar(&unread, "unread", false, "only unread articles")
	cmd.Flags().BoolVar(&starred, "starred", false, "only starred articles")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of articles")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of articles to skip")
	return cmd
}

func newArticlesReadCmd(opts *rootOptions) *cobra.Command {
	var (
		unread bool
		all    bool
		feedID string
	)

	cmd := &cobra.Command{
		Use:   "read [id]",
		Short: "Mark an article read, or every article with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass either an article id or --all")
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if all {
					n, err := a.Articles.MarkAllAsRead(ctx, optionalFlag(feedID))
					if err != nil {
						return describeError(err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Marked %d article(s) read.\n", n)
					return nil
				}

				article, err := a.Articles.MarkAsRead(ctx, args[0], !unread)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), article)
				}
				state := "read"
				if !article.IsRead {
					state = "unread"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s.\n", article.ID, state)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "mark unread instead")
	cmd.Flags().BoolVar(&all, "all", false, "mark every article read")
	cmd.Flags().StringVar(&feedID, "feed", "", "with --all, only this feed's articles")
	return cmd
}

func newArticlesStarCmd(opts *rootOptions) *cobra.Command {
	var unstar bool

	cmd := &cobra.Command{
		Use:   "star <id>",
		Short: "Star or unstar an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				article, err := a.Articles.MarkAsStarred(ctx, args[0], !unstar)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), article)
				}
				state := "starred"
				if !article.IsStarred {
					state = "unstarred"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s.\n", article.ID, state)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&unstar, "unstar", false, "remove the star")
	return cmd
}
