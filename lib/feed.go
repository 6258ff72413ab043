package lib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mkarpus/feedsignal/config"
	"github.com/mkarpus/feedsignal/lib/models"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// FetchResult is the outcome of one conditional feed fetch. When
// Unchanged is set, Entries is empty and the stored cache token is
// still current. ETag and Modified carry the response's fresh
// validators; either may be empty.
type FetchResult struct {
	Unchanged bool
	Entries   models.Entries
	ETag      string
	Modified  string
}

// FeedFetcher performs the conditional HTTP fetch of the feed
// document and parses it into typed entries.
type FeedFetcher struct {
	log       *zap.Logger
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	timeout   time.Duration
}

func NewFeedFetcher(cfg *config.Config, log *zap.Logger, transport http.RoundTripper) *FeedFetcher {
	return &FeedFetcher{
		log:       log,
		client:    &http.Client{Transport: transport},
		parser:    gofeed.NewParser(),
		userAgent: cfg.UserAgent,
		timeout:   cfg.FetchTimeout(),
	}
}

// Fetch sends the stored validators when present and short-circuits
// on 304. Any other non-200 status aborts the run; there is nothing
// to process without a feed body.
func (f *FeedFetcher) Fetch(ctx context.Context, url string, token models.CacheToken) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if token.ETag != "" {
		req.Header.Set("If-None-Match", token.ETag)
	}
	if token.Modified != "" {
		req.Header.Set("If-Modified-Since", token.Modified)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotModified {
		f.log.Sugar().Infow("Feed not modified", "url", url)
		return &FetchResult{Unchanged: true}, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: want 200, got %d", res.StatusCode)
	}

	feed, err := f.parser.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &FetchResult{
		ETag:     res.Header.Get("ETag"),
		Modified: res.Header.Get("Last-Modified"),
	}
	for _, item := range feed.Items {
		entry, err := models.NewEntry(item)
		if err != nil {
			f.log.Sugar().Warnw("Skipping malformed feed item", "link", item.Link, "err", err)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	f.log.Sugar().Infow("Fetched feed", "url", url, "items", len(feed.Items), "usable", len(result.Entries))
	return result, nil
}
