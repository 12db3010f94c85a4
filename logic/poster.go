package logic

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"ssb_courier/dal"
	"ssb_courier/pub"
	"ssb_courier/shared"
	"ssb_courier/texts"
)

const (
	postBatchSize    = 10
	postIdleWakeSec  = 10
	maxParallelPosts = 5
)

// IPoster drains pending entries from the store and publishes them to
// their sbots.
type IPoster interface {
	Run()
	Shutdown(ctx context.Context)
}

type poster struct {
	cfg      *shared.Config
	logger   shared.ILogger
	repo     dal.IRepo
	registry IFeedRegistry
	composer IComposer
	uploader IBlobUploader
	connMgr  pub.IConnManager
	metrics  IMetrics
	txt      texts.ITexts
	stop     chan struct{}
	loopDone chan struct{}
	wg       sync.WaitGroup
}

func NewPoster(
	cfg *shared.Config,
	logger shared.ILogger,
	repo dal.IRepo,
	registry IFeedRegistry,
	composer IComposer,
	uploader IBlobUploader,
	connMgr pub.IConnManager,
	metrics IMetrics,
	txt texts.ITexts,
) IPoster {
	return &poster{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		registry: registry,
		composer: composer,
		uploader: uploader,
		connMgr:  connMgr,
		metrics:  metrics,
		txt:      txt,
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
}

func (p *poster) Run() {
	go p.loop()
}

func (p *poster) loop() {

	defer close(p.loopDone)

	// Entries stuck in Posting from a crashed run go back to Pending before
	// the first fetch, so nothing is ever orphaned.
	if n, err := p.repo.ResetPostingToPending(); err != nil {
		p.logger.Errorf("Failed to reset in-flight entries: %v", err)
	} else if n > 0 {
		p.logger.Infof("Reset %d in-flight entries to pending", n)
	}

	sem := make(chan struct{}, maxParallelPosts)
	for {
		select {
		case <-p.stop:
			return
		default:
		}

		if counts, err := p.repo.GetStatusCounts(); err == nil {
			p.metrics.PendingEntries(counts.Pending)
		}

		batch, err := p.repo.GetPendingEntries(postBatchSize)
		if err != nil {
			p.logger.Errorf("Failed to fetch pending entries: %v", err)
			p.idle()
			continue
		}
		if len(batch) == 0 {
			p.idle()
			continue
		}

		p.prewarm(batch)

		ids := make([]int64, 0, len(batch))
		for _, e := range batch {
			ids = append(ids, e.Id)
		}
		if err := p.repo.MarkPosting(ids); err != nil {
			p.logger.Errorf("Failed to mark entries as posting: %v", err)
			p.idle()
			continue
		}

		for _, entry := range batch {
			sem <- struct{}{}
			p.wg.Add(1)
			go func(e *dal.Entry) {
				defer func() { <-sem; p.wg.Done() }()
				p.postEntry(e)
			}(entry)
		}
		p.wg.Wait()
	}
}

func (p *poster) idle() {
	select {
	case <-p.stop:
	case <-time.After(postIdleWakeSec * time.Second):
	}
}

func (p *poster) prewarm(batch []*dal.Entry) {
	seen := map[string]struct{}{}
	var names []string
	for _, e := range batch {
		if _, ok := seen[e.SbotName]; ok {
			continue
		}
		seen[e.SbotName] = struct{}{}
		names = append(names, e.SbotName)
	}
	p.connMgr.Prewarm(names)
}

func (p *poster) postEntry(entry *dal.Entry) {

	p.metrics.PostsInFlight(1)
	defer p.metrics.PostsInFlight(-1)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("Panic while posting entry %d: %v", entry.Id, r)
			p.retryLater(entry)
		}
	}()

	fd := p.registry.Lookup(entry.FeedUrl)
	if fd == nil {
		p.logger.Warnf("Dropping entry %d: feed %s is no longer configured", entry.Id, entry.FeedUrl)
		if err := p.repo.DeleteEntry(entry.Id); err != nil {
			p.logger.Errorf("Failed to delete entry %d: %v", entry.Id, err)
		}
		p.metrics.EntryDropped()
		return
	}

	conn, err := p.connMgr.Get(entry.SbotName)
	if err != nil {
		p.logger.Warnf("No connection to '%s': %v", entry.SbotName, err)
		p.retryLater(entry)
		return
	}

	var itm gofeed.Item
	if err := json.Unmarshal([]byte(entry.ItemJson), &itm); err != nil {
		p.logger.Errorf("Dropping entry %d: stored item does not parse: %v", entry.Id, err)
		if err := p.repo.DeleteEntry(entry.Id); err != nil {
			p.logger.Errorf("Failed to delete entry %d: %v", entry.Id, err)
		}
		p.metrics.EntryDropped()
		return
	}

	desc := itm.Description
	if desc == "" {
		desc = itm.Content
	}

	pb, err := p.composer.PrepareBody(desc, fd.StripImages)
	if err != nil {
		p.logger.Errorf("Failed to parse body of entry %d: %v", entry.Id, err)
		p.retryLater(entry)
		return
	}

	var resolved []*ResolvedImage
	for _, res := range p.uploader.ResolveAll(conn, fd, pb.ImageUrls) {
		if res.Err != nil {
			p.logger.Warnf("Skipping image %s in entry %d: %v", res.Url, entry.Id, res.Err)
			continue
		}
		resolved = append(resolved, res.Image)
	}

	body, mentions, err := p.composer.FinishBody(pb, resolved)
	if err != nil {
		p.logger.Errorf("Failed to compose body of entry %d: %v", entry.Id, err)
		p.retryLater(entry)
		return
	}

	link := itemLink(&itm)
	extLink := p.composer.ExtractExternalLink(body, fd.Url)
	for _, ch := range strings.Fields(fd.Channels) {
		mentions = append(mentions, &pub.Mention{Link: ch})
	}

	tpl := fd.PostTemplate
	if tpl == "" {
		tpl = p.txt.Get("post_template.md")
	}

	parts, err := p.composer.Split(body, tpl, entry.Title, link, extLink, fd.Channels,
		mentions, p.cfg.MessageBudget())
	if err != nil {
		if errors.Is(err, ErrParagraphTooLong) {
			p.logger.Warnf("Entry %d has an unsplittable paragraph; will retry", entry.Id)
		} else {
			p.logger.Errorf("Failed to split entry %d: %v", entry.Id, err)
		}
		p.retryLater(entry)
		return
	}

	var lastKey string
	for _, part := range parts {
		msg := pub.PostMessage{
			Type:     "post",
			Text:     p.composer.Render(tpl, part.Title, part.Body, link, extLink, fd.Channels),
			Mentions: part.Mentions,
		}
		receipt, err := conn.Publish(&msg)
		if err != nil {
			p.logger.Warnf("Failed to publish entry %d to '%s': %v", entry.Id, entry.SbotName, err)
			p.retryLater(entry)
			return
		}
		lastKey = receipt.Key
	}

	if err := p.repo.MarkPosted([]int64{entry.Id}); err != nil {
		p.logger.Errorf("Failed to mark entry %d as posted: %v", entry.Id, err)
		return
	}
	p.metrics.EntryPosted()
	p.logger.Infof("Posted '%s' to '%s' in %d part(s); last message %s",
		shared.TruncateWithEllipsis(entry.Title, 64), entry.SbotName, len(parts), lastKey)
}

func (p *poster) retryLater(entry *dal.Entry) {
	if err := p.repo.MarkPending([]int64{entry.Id}); err != nil {
		p.logger.Errorf("Failed to return entry %d to pending: %v", entry.Id, err)
		return
	}
	p.metrics.EntryRetried()
}

// Shutdown stops the loop, waits for in-flight posts, returns unfinished
// work to pending, prunes old posted entries, and closes all connections.
func (p *poster) Shutdown(ctx context.Context) {

	close(p.stop)
	done := make(chan struct{})
	go func() {
		<-p.loopDone
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warn("Timed out waiting for in-flight posts")
	}

	p.uploader.Shutdown()

	if n, err := p.repo.ResetPostingToPending(); err != nil {
		p.logger.Errorf("Failed to reset in-flight entries: %v", err)
	} else if n > 0 {
		p.logger.Infof("Returned %d unfinished entries to pending", n)
	}

	for _, fd := range p.registry.All() {
		cutoff := time.Now().UTC().AddDate(0, 0, -fd.CleanupDays)
		n, err := p.repo.DeleteOldPosted(fd.SbotName, fd.Url, cutoff)
		if err != nil {
			p.logger.Errorf("Failed to prune posted entries of %s: %v", fd.Url, err)
			continue
		}
		if n > 0 {
			p.logger.Infof("Pruned %d posted entries of %s", n, fd.Url)
		}
	}

	p.connMgr.CloseAll()
	p.logger.Info("Poster stopped")
}

// itemLink is the canonical link of an item; a media:content URL, when
// present, takes precedence over the item's own link.
func itemLink(itm *gofeed.Item) string {
	if media, ok := itm.Extensions["media"]; ok {
		for _, e := range media["content"] {
			if u := e.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return itm.Link
}
