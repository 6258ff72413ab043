package lib

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mkarpus/feedsignal/lib/models"
	"github.com/mkarpus/feedsignal/senders"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runner drives one full pipeline pass for a single feed source:
// load state, conditional fetch, select eligible entries, then per
// entry enrich, dispatch and checkpoint. Strictly sequential: the
// watermark may only advance after the entry it covers is confirmed
// delivered, so nothing here runs concurrently.
type Runner struct {
	log      *zap.Logger
	states   *StateStore
	fetcher  *FeedFetcher
	selector *Selector
	previews *PreviewExtractor
	registry senders.Registry
	db       *gorm.DB
}

func NewRunner(
	log *zap.Logger,
	states *StateStore,
	fetcher *FeedFetcher,
	selector *Selector,
	previews *PreviewExtractor,
	registry senders.Registry,
	db *gorm.DB,
) *Runner {
	return &Runner{
		log:      log,
		states:   states,
		fetcher:  fetcher,
		selector: selector,
		previews: previews,
		registry: registry,
		db:       db,
	}
}

// RunParams is everything one run needs beyond the wired components.
type RunParams struct {
	FeedName string
	FeedURL  string
	Dests    models.Destinations
	Floor    *time.Time
	DryRun   bool
}

// Run executes the pipeline once. A dispatch failure aborts the run
// before the failing entry's checkpoint, so the next invocation
// retries that entry from scratch. Cache tokens are committed only
// after the whole eligible batch succeeded; an early 304 return
// leaves the state file untouched.
func (r *Runner) Run(ctx context.Context, params RunParams) error {
	state, err := r.states.Load(params.FeedName)
	if err != nil {
		return err
	}

	result, err := r.fetcher.Fetch(ctx, params.FeedURL, state.CacheToken)
	if err != nil {
		return err
	}
	if result.Unchanged {
		r.log.Sugar().Infow("Nothing has changed since the previous feed fetch", "feed", params.FeedName)
		return nil
	}

	eligible := r.selector.Select(result.Entries, state.LatestProcessedEntryDate, params.Floor)
	r.log.Sugar().Infow("Selected entries", "feed", params.FeedName, "eligible", len(eligible), "total", len(result.Entries))

	for _, entry := range eligible {
		if err := r.processEntry(ctx, params, entry); err != nil {
			return err
		}
		state.AdvanceWatermark(entry.Published)
		if err := r.states.Save(params.FeedName, state); err != nil {
			return err
		}
	}

	state.Merge(result.ETag, result.Modified)
	return r.states.Save(params.FeedName, state)
}

func (r *Runner) processEntry(ctx context.Context, params RunParams, entry models.Entry) error {
	r.log.Sugar().Infow("Handling entry", "id", entry.ID, "link", entry.Link, "published", entry.Published)

	preview := r.previews.Extract(ctx, entry.Link)
	if preview != "" {
		defer os.Remove(preview)
	}

	n := senders.Notification{
		FeedName:     params.FeedName,
		Entry:        entry,
		PreviewImage: preview,
		DryRun:       params.DryRun,
	}

	for _, dest := range params.Dests {
		if !dest.IsEnabled() {
			continue
		}
		platform := dest.Platform()
		if platform == "" {
			r.log.Sugar().Warnw("Skipping destination with no phone, username, group or email", "feed", params.FeedName)
			continue
		}
		sender, ok := r.registry[platform]
		if !ok {
			return fmt.Errorf("unsupported notifier platform: %s", platform)
		}
		if err := sender.Send(ctx, dest, n); err != nil {
			return fmt.Errorf("dispatch %s to %s: %w", entry.ID, dest.Recipient(), err)
		}
		if !params.DryRun {
			r.recordDelivery(params.FeedName, dest, entry, platform, preview != "")
		}
	}
	return nil
}

// recordDelivery appends to the audit log. Best effort: a failed
// insert is logged and the run continues, the watermark checkpoint
// does not depend on it.
func (r *Runner) recordDelivery(feedName string, dest models.Destination, entry models.Entry, platform string, hadPreview bool) {
	row := models.Delivery{
		FeedName:   feedName,
		EntryID:    entry.ID,
		Link:       entry.Link,
		Title:      entry.Title,
		Published:  entry.Published,
		Platform:   platform,
		Recipient:  dest.Recipient(),
		HadPreview: hadPreview,
		SentAt:     time.Now().UTC(),
	}
	if err := r.db.Create(&row).Error; err != nil {
		r.log.Sugar().Warnw("Failed to record delivery", "entry", entry.ID, "err", err)
	}
}
