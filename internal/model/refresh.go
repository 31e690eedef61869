package model

import "time"

type RefreshResult struct {
	FeedID          string `json:"feedId"`
	Success         bool   `json:"success"`
	NewArticleCount int    `json:"newArticleCount"`
	Error           string `json:"error,omitempty"`
}

type BatchRefreshResult struct {
	RunID       string          `json:"runId"`
	Results     []RefreshResult `json:"results"`
	TotalNew    int             `json:"totalNew"`
	TotalErrors int             `json:"totalErrors"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  time.Time       `json:"finishedAt"`
}

// Tally recomputes TotalNew and TotalErrors from Results.
func (b *BatchRefreshResult) Tally() {
	b.TotalNew = 0
	b.TotalErrors = 0
	for _, r := range b.Results {
		if r.Success {
			b.TotalNew += r.NewArticleCount
		} else {
			b.TotalErrors++
		}
	}
}
