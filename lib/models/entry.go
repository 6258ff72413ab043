package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// Entry is one feed item, rebuilt fresh on every fetch.
type Entry struct {
	ID          string
	Link        string
	Title       string
	Description string
	Published   time.Time
}

type Entries []Entry

// NewEntry builds an Entry from a parsed feed item. The published
// instant is re-parsed from the raw timestamp string: gofeed's
// PublishedParsed loses timezone fidelity on some feeds, so it is
// deliberately not used here.
func NewEntry(item *gofeed.Item) (Entry, error) {
	id := coalesce(item.GUID, item.Link)
	if id == "" {
		return Entry{}, errors.New("item has neither guid nor link")
	}
	if item.Link == "" {
		return Entry{}, fmt.Errorf("item %s has no link", id)
	}
	if item.Published == "" {
		return Entry{}, fmt.Errorf("item %s has no published date", id)
	}

	published, err := dateparse.ParseAny(item.Published)
	if err != nil {
		return Entry{}, fmt.Errorf("item %s has unparseable published date %q: %w", id, item.Published, err)
	}

	return Entry{
		ID:          id,
		Link:        item.Link,
		Title:       item.Title,
		Description: item.Description,
		Published:   published,
	}, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
