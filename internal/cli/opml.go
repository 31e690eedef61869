package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedsync/internal/app"
)

func newOPMLCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opml",
		Short: "Import or export subscriptions as OPML",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Subscribe to every feed in an OPML file and refresh the new ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				result, err := a.OPML.Import(ctx, f)
				if err != nil {
					return describeError(err)
				}
				if opts.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Categories: %d created, %d existing.\n", result.CategoriesCreated, result.CategoriesSkipped)
				fmt.Fprintf(out, "Feeds: %d created, %d skipped.\n", result.FeedsCreated, result.FeedsSkipped)
				if result.Refresh != nil {
					return printBatch(out, *result.Refresh)
				}
				return nil
			})
		},
	}

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write subscriptions as OPML to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				data, err := a.OPML.Export(ctx)
				if err != nil {
					return describeError(err)
				}
				if output == "" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s.\n", output)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}
