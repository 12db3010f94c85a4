package logic

import (
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"ssb_courier/shared"
)

// IFeedWatcher polls every configured feed on its own schedule and hands
// fresh items to the registry.
type IFeedWatcher interface {
	Start()
	Stop()
}

type feedState struct {
	fd     *FeedDescriptor
	client *http.Client
	seen   map[string]struct{}
	first  bool
}

type feedWatcher struct {
	cfg       *shared.Config
	logger    shared.ILogger
	userAgent shared.IUserAgent
	registry  IFeedRegistry
	metrics   IMetrics
	stop      chan struct{}
	wg        sync.WaitGroup
}

func NewFeedWatcher(
	cfg *shared.Config,
	logger shared.ILogger,
	userAgent shared.IUserAgent,
	registry IFeedRegistry,
	metrics IMetrics,
) IFeedWatcher {
	return &feedWatcher{
		cfg:       cfg,
		logger:    logger,
		userAgent: userAgent,
		registry:  registry,
		metrics:   metrics,
		stop:      make(chan struct{}),
	}
}

func (fw *feedWatcher) Start() {
	descriptors := fw.registry.All()
	fw.logger.Infof("Starting feed watcher; %d feed(s)", len(descriptors))
	for _, fd := range descriptors {
		client, err := newProxiedClient(fd.Proxy, feedClientTimeout)
		if err != nil {
			fw.logger.Errorf("Not watching %s: %v", fd.Url, err)
			continue
		}
		fs := &feedState{
			fd:     fd,
			client: client,
			seen:   make(map[string]struct{}),
			first:  true,
		}
		fw.wg.Add(1)
		go fw.watch(fs)
	}
}

func (fw *feedWatcher) Stop() {
	close(fw.stop)
	fw.wg.Wait()
	fw.logger.Info("Feed watcher stopped")
}

func (fw *feedWatcher) watch(fs *feedState) {
	defer fw.wg.Done()
	for {
		fw.fetchOnce(fs)
		select {
		case <-fw.stop:
			return
		case <-time.After(fs.fd.Refresh):
		}
	}
}

func (fw *feedWatcher) fetchOnce(fs *feedState) {

	feed, err := fw.fetchFeed(fs)
	if err != nil {
		fw.logger.Warnf("Failed to fetch %s: %v", fs.fd.Url, err)
		fw.metrics.FeedFetched("failed")
		return
	}
	fw.metrics.FeedFetched("ok")

	skipSilently := fs.first && fw.cfg.Rss.SkipFirstLoad
	fs.first = false
	for _, itm := range feed.Items {
		key := itm.GUID
		if key == "" {
			key = itm.Link
		}
		if key == "" {
			continue
		}
		if _, known := fs.seen[key]; known {
			continue
		}
		fs.seen[key] = struct{}{}
		if skipSilently {
			continue
		}
		fw.registry.HandleNewItem(fs.fd, itm)
	}
}

func (fw *feedWatcher) fetchFeed(fs *feedState) (*gofeed.Feed, error) {
	req, err := http.NewRequest(http.MethodGet, fs.fd.Url, nil)
	if err != nil {
		return nil, err
	}
	fw.userAgent.AddUserAgent(req)
	resp, err := fs.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &gofeed.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return gofeed.NewParser().Parse(resp.Body)
}
