package models

import (
	"time"

	"gorm.io/gorm"
)

// Delivery is one row of the audit log, recorded after each
// successful dispatch. Best effort only: it never gates the
// watermark.
type Delivery struct {
	gorm.Model
	FeedName   string `gorm:"index:idx_feed_entry"`
	EntryID    string `gorm:"index:idx_feed_entry"`
	Link       string
	Title      string
	Published  time.Time
	Platform   string
	Recipient  string
	HadPreview bool
	SentAt     time.Time
}

type Deliveries []Delivery
