package lib

import (
	"sort"
	"time"

	"github.com/mkarpus/feedsignal/lib/models"
	"go.uber.org/zap"
)

// Selector orders fetched entries and filters them against the
// persisted watermark and the optional caller-supplied floor date.
type Selector struct {
	log *zap.Logger
}

func NewSelector(log *zap.Logger) *Selector {
	return &Selector{log: log}
}

// Select returns eligible entries in ascending publication order.
// The sort is stable so same-instant entries keep feed order. An
// entry is eligible iff it is strictly newer than the watermark (when
// one exists) and strictly newer than the floor date (when one was
// given). Ineligible entries are skipped, never an error.
func (s *Selector) Select(entries models.Entries, watermark, floor *time.Time) models.Entries {
	sorted := make(models.Entries, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.Before(sorted[j].Published)
	})

	eligible := make(models.Entries, 0, len(sorted))
	for _, e := range sorted {
		if watermark != nil && !e.Published.After(*watermark) {
			s.log.Sugar().Debugw("Skipping entry at or before watermark", "id", e.ID, "published", e.Published)
			continue
		}
		if floor != nil && !e.Published.After(*floor) {
			s.log.Sugar().Debugw("Skipping entry at or before start date", "id", e.ID, "published", e.Published)
			continue
		}
		eligible = append(eligible, e)
	}
	return eligible
}
