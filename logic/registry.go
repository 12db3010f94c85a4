package logic

import (
	"encoding/json"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/spaolacci/murmur3"
	"ssb_courier/dal"
	"ssb_courier/shared"
)

// FeedDescriptor is one watched feed with all per-feed settings already
// resolved against the sbot-level and global defaults.
type FeedDescriptor struct {
	Url          string
	SbotName     string
	Proxy        string
	Refresh      time.Duration
	CleanupDays  int
	Channels     string
	PostTemplate string
	StripImages  bool
}

type IFeedRegistry interface {
	// Lookup returns the descriptor for a feed URL, or nil when the feed is
	// no longer configured.
	Lookup(url string) *FeedDescriptor
	All() []*FeedDescriptor
	// HandleNewItem stores a freshly seen feed item as a pending entry.
	// Re-deliveries of known items are silently dropped.
	HandleNewItem(fd *FeedDescriptor, itm *gofeed.Item)
}

type feedRegistry struct {
	logger  shared.ILogger
	repo    dal.IRepo
	metrics IMetrics
	byUrl   map[string]*FeedDescriptor
	ordered []*FeedDescriptor
}

func NewFeedRegistry(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	metrics IMetrics,
) IFeedRegistry {

	fr := feedRegistry{
		logger:  logger,
		repo:    repo,
		metrics: metrics,
		byUrl:   make(map[string]*FeedDescriptor),
	}
	for sbotName, sbot := range cfg.Sbots {
		for _, fc := range sbot.Feeds {
			fd := &FeedDescriptor{
				Url:          fc.Url,
				SbotName:     sbotName,
				Proxy:        fc.Proxy,
				Refresh:      fc.Refresh(),
				CleanupDays:  fc.CleanupDays,
				Channels:     fc.Channels,
				PostTemplate: fc.PostTemplate,
				StripImages:  fc.StripImages,
			}
			if prev, ok := fr.byUrl[fd.Url]; ok {
				logger.Warnf("Feed %s is configured for both '%s' and '%s'; keeping the first",
					fd.Url, prev.SbotName, fd.SbotName)
				continue
			}
			fr.byUrl[fd.Url] = fd
			fr.ordered = append(fr.ordered, fd)
		}
	}
	return &fr
}

func (fr *feedRegistry) Lookup(url string) *FeedDescriptor {
	return fr.byUrl[url]
}

func (fr *feedRegistry) All() []*FeedDescriptor {
	res := make([]*FeedDescriptor, len(fr.ordered))
	copy(res, fr.ordered)
	return res
}

func (fr *feedRegistry) HandleNewItem(fd *FeedDescriptor, itm *gofeed.Item) {

	published := time.Now().UTC()
	if itm.PublishedParsed != nil {
		published = itm.PublishedParsed.UTC()
	} else if itm.UpdatedParsed != nil {
		published = itm.UpdatedParsed.UTC()
	}

	itemJson, err := json.Marshal(itm)
	if err != nil {
		fr.logger.Errorf("Failed to serialize item from %s: %v", fd.Url, err)
		return
	}

	guid := itm.GUID
	if guid == "" {
		guid = itm.Link
	}
	hasher := murmur3.New32()
	_, _ = hasher.Write([]byte(guid))
	guidHash := int64(hasher.Sum32())

	entry := dal.Entry{
		SbotName:    fd.SbotName,
		FeedUrl:     fd.Url,
		Guid:        guid,
		GuidHash:    guidHash,
		Title:       StripHtml(itm.Title),
		PublishedAt: published,
		ItemJson:    string(itemJson),
		InsertedAt:  time.Now().UTC(),
		Status:      dal.StatusPending,
	}
	isNew, err := fr.repo.AddEntryIfNew(&entry)
	if err != nil {
		fr.logger.Errorf("Failed to store entry '%s' from %s: %v", entry.Title, fd.Url, err)
		return
	}
	if isNew {
		fr.logger.Infof("New entry from %s: %s", fd.Url, shared.TruncateWithEllipsis(entry.Title, 64))
		fr.metrics.EntryIngested()
	}
}
