package logic

import (
	"github.com/prometheus/client_golang/prometheus"

	"ssb_courier/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_metrics.go -package mocks ssb_courier/logic IMetrics

type IMetrics interface {
	ServiceStarted()
	FeedFetched(label string)
	EntryIngested()
	EntryPosted()
	EntryRetried()
	EntryDropped()
	BlobUploaded(byteSize int64)
	PendingEntries(count int)
	// PostsInFlight moves the in-flight gauge by delta (+1 / -1).
	PostsInFlight(delta int)
}

type metrics struct {
	cfg             *shared.Config
	serviceStarted  prometheus.Counter
	feedsFetched    *prometheus.CounterVec
	entriesIngested prometheus.Counter
	entriesPosted   prometheus.Counter
	entriesRetried  prometheus.Counter
	entriesDropped  prometheus.Counter
	blobsUploaded   prometheus.Counter
	blobBytes       prometheus.Counter
	pendingEntries  prometheus.Gauge
	postsInFlight   prometheus.Gauge
}

func NewMetrics(cfg *shared.Config) IMetrics {

	res := metrics{}
	res.cfg = cfg

	res.serviceStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_started",
		Help: "Service has started up",
	})
	prometheus.Register(res.serviceStarted)

	res.feedsFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feeds_fetched",
		Help: "Number of feed fetch rounds, by outcome",
	}, []string{"label"})
	prometheus.Register(res.feedsFetched)

	res.entriesIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entries_ingested",
		Help: "Number of new feed entries saved for posting",
	})
	prometheus.Register(res.entriesIngested)

	res.entriesPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entries_posted",
		Help: "Number of entries published to an sbot",
	})
	prometheus.Register(res.entriesPosted)

	res.entriesRetried = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entries_retried",
		Help: "Number of posting attempts returned to pending",
	})
	prometheus.Register(res.entriesRetried)

	res.entriesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entries_dropped",
		Help: "Number of entries dropped for missing feed configuration",
	})
	prometheus.Register(res.entriesDropped)

	res.blobsUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blobs_uploaded",
		Help: "Number of images stored as blobs",
	})
	prometheus.Register(res.blobsUploaded)

	res.blobBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blob_bytes_total",
		Help: "Total bytes of image data stored as blobs",
	})
	prometheus.Register(res.blobBytes)

	res.pendingEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pending_entries",
		Help: "Entries waiting to be posted",
	})
	prometheus.Register(res.pendingEntries)

	res.postsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "posts_in_flight",
		Help: "Posting workers currently busy",
	})
	prometheus.Register(res.postsInFlight)

	return &res
}

func (m *metrics) ServiceStarted() {
	m.serviceStarted.Add(1)
}

func (m *metrics) FeedFetched(label string) {
	m.feedsFetched.WithLabelValues(label).Add(1)
}

func (m *metrics) EntryIngested() {
	m.entriesIngested.Add(1)
}

func (m *metrics) EntryPosted() {
	m.entriesPosted.Add(1)
}

func (m *metrics) EntryRetried() {
	m.entriesRetried.Add(1)
}

func (m *metrics) EntryDropped() {
	m.entriesDropped.Add(1)
}

func (m *metrics) BlobUploaded(byteSize int64) {
	m.blobsUploaded.Add(1)
	m.blobBytes.Add(float64(byteSize))
}

func (m *metrics) PendingEntries(count int) {
	m.pendingEntries.Set(float64(count))
}

func (m *metrics) PostsInFlight(delta int) {
	m.postsInFlight.Add(float64(delta))
}
