package dal

import (
	"time"
)

type EntryStatus int

const (
	StatusPending EntryStatus = 0
	StatusPosting EntryStatus = 1
	StatusPosted  EntryStatus = 2
)

// Entry is one ingested feed item, tracked from ingestion until it has been
// published to its sbot and aged out.
type Entry struct {
	Id          int64
	SbotName    string
	FeedUrl     string
	Guid        string
	GuidHash    int64 // murmur3 of the item's GUID (or link when GUID is empty); unique per (sbot, feed)
	Title       string
	PublishedAt time.Time
	ItemJson    string // raw gofeed item, round-tripped verbatim
	InsertedAt  time.Time
	Status      EntryStatus
}

type StatusCounts struct {
	Pending int `json:"pending"`
	Posting int `json:"posting"`
	Posted  int `json:"posted"`
}
