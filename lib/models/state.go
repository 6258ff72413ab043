package models

import "time"

// CacheToken carries the conditional-fetch validators from the last
// fully processed feed response. Modified is kept as the verbatim
// Last-Modified header value so it can be replayed in
// If-Modified-Since without a reformatting round trip.
type CacheToken struct {
	ETag     string `json:"etag,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// Merge overwrites each half only when the response actually carried
// it; a response that omits one validator must not clobber a
// still-valid stored value.
func (t *CacheToken) Merge(etag, modified string) {
	if etag != "" {
		t.ETag = etag
	}
	if modified != "" {
		t.Modified = modified
	}
}

// PersistedState is the whole durable document for one feed source.
// LatestProcessedEntryDate is the watermark: the publication time of
// the most recently notified entry, absent until the first
// notification succeeds.
type PersistedState struct {
	LatestProcessedEntryDate *time.Time `json:"latest_processed_entry_date,omitempty"`
	CacheToken
}

// AdvanceWatermark moves the watermark to published when it is
// strictly greater than the stored value, guarding against
// out-of-order entries. Reports whether the state changed.
func (s *PersistedState) AdvanceWatermark(published time.Time) bool {
	if s.LatestProcessedEntryDate != nil && !published.After(*s.LatestProcessedEntryDate) {
		return false
	}
	ts := published
	s.LatestProcessedEntryDate = &ts
	return true
}
