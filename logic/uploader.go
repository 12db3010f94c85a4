package logic

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"ssb_courier/pub"
	"ssb_courier/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_uploader.go -package mocks ssb_courier/logic IBlobUploader

const (
	uploadWorkersPerFeed = 5
	downloadAttempts     = 5
)

type IBlobUploader interface {
	// ResolveAll downloads every URL and streams it to the connection's blob
	// store. It returns one result per URL, failed ones included, once all
	// jobs have settled.
	ResolveAll(conn pub.IConnection, fd *FeedDescriptor, urls []string) []*ImageResult
	Shutdown()
}

// ImageResult is the outcome of one image resolution; exactly one of Image
// and Err is set.
type ImageResult struct {
	Url   string
	Image *ResolvedImage
	Err   error
}

type uploadJob struct {
	conn   pub.IConnection
	fd     *FeedDescriptor
	url    string
	result chan<- *ImageResult
}

type feedPool struct {
	jobs    chan *uploadJob
	workers sync.WaitGroup
	// senders counts ResolveAll calls currently feeding the channel, so
	// Shutdown never closes it with a send in flight.
	senders sync.WaitGroup
}

type blobUploader struct {
	cfg       *shared.Config
	logger    shared.ILogger
	userAgent shared.IUserAgent
	metrics   IMetrics
	mu        sync.Mutex
	pools     map[string]*feedPool
	closed    bool
}

func NewBlobUploader(
	cfg *shared.Config,
	logger shared.ILogger,
	userAgent shared.IUserAgent,
	metrics IMetrics,
) IBlobUploader {
	return &blobUploader{
		cfg:       cfg,
		logger:    logger,
		userAgent: userAgent,
		metrics:   metrics,
		pools:     make(map[string]*feedPool),
	}
}

func (bu *blobUploader) ResolveAll(conn pub.IConnection, fd *FeedDescriptor, urls []string) []*ImageResult {

	if len(urls) == 0 {
		return nil
	}
	pool := bu.getPool(fd)
	if pool == nil {
		res := make([]*ImageResult, 0, len(urls))
		for _, u := range urls {
			res = append(res, &ImageResult{Url: u, Err: fmt.Errorf("uploader is shut down")})
		}
		return res
	}
	defer pool.senders.Done()

	results := make(chan *ImageResult, len(urls))
	for _, u := range urls {
		pool.jobs <- &uploadJob{conn: conn, fd: fd, url: u, result: results}
	}
	res := make([]*ImageResult, 0, len(urls))
	for range urls {
		res = append(res, <-results)
	}
	return res
}

// getPool returns the worker pool for the feed, spinning it up on first use.
// Pools are keyed by feed URL so one slow feed cannot starve the others.
func (bu *blobUploader) getPool(fd *FeedDescriptor) *feedPool {

	bu.mu.Lock()
	defer bu.mu.Unlock()

	if bu.closed {
		return nil
	}
	if pool, ok := bu.pools[fd.Url]; ok {
		pool.senders.Add(1)
		return pool
	}
	pool := &feedPool{jobs: make(chan *uploadJob)}
	pool.workers.Add(uploadWorkersPerFeed)
	for i := 0; i < uploadWorkersPerFeed; i++ {
		go bu.work(pool)
	}
	pool.senders.Add(1)
	bu.pools[fd.Url] = pool
	return pool
}

func (bu *blobUploader) work(pool *feedPool) {
	defer pool.workers.Done()
	for job := range pool.jobs {
		img, err := bu.resolveOne(job)
		if err != nil {
			job.result <- &ImageResult{Url: job.url, Err: err}
			continue
		}
		bu.metrics.BlobUploaded(img.Size)
		job.result <- &ImageResult{Url: job.url, Image: img}
	}
}

func (bu *blobUploader) resolveOne(job *uploadJob) (*ResolvedImage, error) {

	client, err := newProxiedClient(job.fd.Proxy, blobClientTimeout)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= downloadAttempts; attempt++ {
		img, err := bu.fetchAndStore(client, job)
		if err == nil {
			return img, nil
		}
		lastErr = err
		bu.logger.Debugf("Image download attempt %d/%d failed: %s: %v",
			attempt, downloadAttempts, job.url, err)
	}
	return nil, lastErr
}

func (bu *blobUploader) fetchAndStore(client *http.Client, job *uploadJob) (*ResolvedImage, error) {

	req, err := http.NewRequest(http.MethodGet, job.url, nil)
	if err != nil {
		return nil, err
	}
	bu.userAgent.AddUserAgent(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got status %d for %s", resp.StatusCode, job.url)
	}

	cr := &countingReader{r: resp.Body}
	hash, err := job.conn.BlobAdd(cr)
	if err != nil {
		return nil, err
	}
	return &ResolvedImage{
		Url:         job.url,
		Hash:        hash,
		Size:        cr.n,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (bu *blobUploader) Shutdown() {

	bu.mu.Lock()
	if bu.closed {
		bu.mu.Unlock()
		return
	}
	bu.closed = true
	pools := bu.pools
	bu.pools = make(map[string]*feedPool)
	bu.mu.Unlock()

	for _, pool := range pools {
		pool.senders.Wait()
		close(pool.jobs)
		pool.workers.Wait()
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
