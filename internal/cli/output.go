package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"feedsync/internal/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printFeeds(w io.Writer, feeds []model.Feed) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tUNREAD\tTOTAL\tLAST FETCHED\tSTATUS")
	for _, f := range feeds {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", f.ID, truncate(f.Title, 48), f.UnreadCount, f.TotalCount, formatTime(f.LastFetched), feedStatus(f))
	}
	return tw.Flush()
}

func printFeed(w io.Writer, f model.Feed) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", f.ID)
	fmt.Fprintf(tw, "Title\t%s\n", f.Title)
	fmt.Fprintf(tw, "URL\t%s\n", f.URL)
	fmt.Fprintf(tw, "Site\t%s\n", deref(f.SiteURL))
	fmt.Fprintf(tw, "Category\t%s\n", deref(f.CategoryID))
	fmt.Fprintf(tw, "Articles\t%d (%d unread)\n", f.TotalCount, f.UnreadCount)
	fmt.Fprintf(tw, "Last updated\t%s\n", formatTime(f.LastUpdated))
	fmt.Fprintf(tw, "Last fetched\t%s\n", formatTime(f.LastFetched))
	if f.RefreshInterval != nil {
		fmt.Fprintf(tw, "Interval\t%dm\n", *f.RefreshInterval)
	}
	fmt.Fprintf(tw, "Status\t%s\n", feedStatus(f))
	return tw.Flush()
}

func printArticles(w io.Writer, articles []model.Article) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPUBLISHED\tFLAGS\tTITLE")
	for _, a := range articles {
		flags := ""
		if !a.IsRead {
			flags += "N"
		}
		if a.IsStarred {
			flags += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.PublishedAt.Local().Format("2006-01-02 15:04"), flags, truncate(a.Title, 72))
	}
	return tw.Flush()
}

func printCategories(w io.Writer, categories []model.Category) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func printBatch(w io.Writer, batch model.BatchRefreshResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "FEED\tRESULT\tNEW\tERROR")
	for _, r := range batch.Results {
		result := "ok"
		if !r.Success {
			result = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.FeedID, result, r.NewArticleCount, r.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d feed(s), %d new article(s), %d error(s) in %s\n",
		len(batch.Results), batch.TotalNew, batch.TotalErrors, batch.FinishedAt.Sub(batch.StartedAt).Round(time.Millisecond))
	return err
}

func feedStatus(f model.Feed) string {
	switch {
	case f.ErrorMessage != nil:
		return "error: " + *f.ErrorMessage
	case !f.IsActive:
		return "paused"
	default:
		return "active"
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
