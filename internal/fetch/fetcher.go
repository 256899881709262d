// Package fetch downloads remote invoice PDFs to the local scratch area.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/Veraticus/billfold/internal/common"
	"github.com/Veraticus/billfold/internal/service"
)

// Total attempts per file: the first try plus five retries.
const maxAttempts = 6

// Fetcher downloads files best-effort: a download either lands on disk
// or is dropped after exhausting retries, never surfacing a hard
// failure to the caller. All fetchers sharing a limiter share one
// process-wide outbound rate ceiling.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewLimiter builds the process-wide rate limiter for outbound PDF
// downloads. Construct one at startup and pass it to every Fetcher.
func NewLimiter(requestsPerSecond float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

// NewFetcher creates a fetcher that enforces the given rate ceiling.
func NewFetcher(limiter *rate.Limiter) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: limiter,
		logger:  slog.Default().With("component", "fetch"),
	}
}

// Fetch streams the remote content at url to dest. Any failure, an
// empty URL included, is retried immediately with no backoff; after
// six attempts in total the download is abandoned, the error is
// logged, and dest is simply absent. The returned result is never a
// hard failure.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) service.FetchResult {
	err := common.WithRetry(ctx, func() error {
		return f.fetchOnce(ctx, url, dest)
	}, service.RetryOptions{MaxAttempts: maxAttempts})

	if err != nil {
		common.LogError(err, "Abandoning download", common.Fields{
			"url":  url,
			"dest": dest,
		})
		return service.FetchResult{Dropped: true, Reason: fmt.Errorf("%w: %w", common.ErrFetchDropped, err)}
	}

	f.logger.Debug("Downloaded file", "url", url, "dest", dest)
	return service.FetchResult{Path: dest}
}

func (f *Fetcher) fetchOnce(ctx context.Context, url, dest string) error {
	if url == "" {
		return fmt.Errorf("invoice has no PDF URL")
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch PDF: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d fetching PDF", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		// A partial file would otherwise be merged as if it succeeded.
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}

	return nil
}

// Ensure Fetcher implements FileFetcher interface.
var _ service.FileFetcher = (*Fetcher)(nil)
