package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceWatermark_Monotonic(t *testing.T) {
	s := &PersistedState{}
	t1 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	assert.True(t, s.AdvanceWatermark(t1), "first advance from empty")
	require.NotNil(t, s.LatestProcessedEntryDate)
	assert.True(t, s.LatestProcessedEntryDate.Equal(t1))

	assert.True(t, s.AdvanceWatermark(t2))
	assert.True(t, s.LatestProcessedEntryDate.Equal(t2))

	// Out-of-order or equal timestamps never move the watermark back.
	assert.False(t, s.AdvanceWatermark(t1))
	assert.False(t, s.AdvanceWatermark(t2))
	assert.True(t, s.LatestProcessedEntryDate.Equal(t2))
}

func TestCacheToken_Merge(t *testing.T) {
	token := CacheToken{ETag: `"v1"`, Modified: "Tue, 10 Jun 2025 08:00:00 GMT"}

	token.Merge(`"v2"`, "")
	assert.Equal(t, `"v2"`, token.ETag)
	assert.Equal(t, "Tue, 10 Jun 2025 08:00:00 GMT", token.Modified, "absent half must not clobber stored value")

	token.Merge("", "Thu, 12 Jun 2025 08:00:00 GMT")
	assert.Equal(t, `"v2"`, token.ETag)
	assert.Equal(t, "Thu, 12 Jun 2025 08:00:00 GMT", token.Modified)
}
