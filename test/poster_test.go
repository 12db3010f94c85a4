package test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"ssb_courier/dal"
	"ssb_courier/logic"
	"ssb_courier/pub"
	"ssb_courier/shared"
	"ssb_courier/test/mocks"
)

type posterHarness struct {
	cfg          *shared.Config
	mockLogger   *mocks.MockILogger
	mockRepo     *mocks.MockIRepo
	mockConnMgr  *mocks.MockIConnManager
	mockConn     *mocks.MockIConnection
	mockUploader *mocks.MockIBlobUploader
	mockMetrics  *mocks.MockIMetrics
	mockTexts    *mocks.MockITexts
}

func setupPosterTest(t *testing.T) (*gomock.Controller, *posterHarness, logic.IPoster) {

	ctrl := gomock.NewController(t)

	h := &posterHarness{
		cfg: &shared.Config{
			MaxMessageBytes:    8192,
			MessageMarginBytes: 200,
			Sbots: map[string]*shared.SbotConfig{
				testSbot: {
					BridgeUrl: "http://localhost:8008",
					Feeds: []*shared.FeedConfig{
						{Url: testFeed, RefreshSec: 60, CleanupDays: 7},
					},
				},
			},
		},
		mockLogger:   mocks.NewMockILogger(ctrl),
		mockRepo:     mocks.NewMockIRepo(ctrl),
		mockConnMgr:  mocks.NewMockIConnManager(ctrl),
		mockConn:     mocks.NewMockIConnection(ctrl),
		mockUploader: mocks.NewMockIBlobUploader(ctrl),
		mockMetrics:  mocks.NewMockIMetrics(ctrl),
		mockTexts:    mocks.NewMockITexts(ctrl),
	}

	setupDummyLogger(h.mockLogger)
	setupDummyMetrics(h.mockMetrics)
	h.mockTexts.EXPECT().Get(gomock.Any()).Return(testTemplate).AnyTimes()
	h.mockRepo.EXPECT().ResetPostingToPending().Return(int64(0), nil).AnyTimes()
	h.mockRepo.EXPECT().GetStatusCounts().Return(&dal.StatusCounts{}, nil).AnyTimes()
	h.mockConnMgr.EXPECT().Prewarm(gomock.Any()).AnyTimes()

	registry := logic.NewFeedRegistry(h.cfg, h.mockLogger, h.mockRepo, h.mockMetrics)
	composer := logic.NewComposer(h.mockLogger)
	poster := logic.NewPoster(h.cfg, h.mockLogger, h.mockRepo, registry, composer,
		h.mockUploader, h.mockConnMgr, h.mockMetrics, h.mockTexts)

	return ctrl, h, poster
}

func makeStoredEntry(id int64, feedUrl, title, desc string) *dal.Entry {
	itm := gofeed.Item{
		Title:       title,
		Description: desc,
		Link:        "https://example.com/post1",
		GUID:        fmt.Sprintf("guid-%d", id),
	}
	itemJson, _ := json.Marshal(&itm)
	return &dal.Entry{
		Id:          id,
		SbotName:    testSbot,
		FeedUrl:     feedUrl,
		Guid:        itm.GUID,
		Title:       title,
		PublishedAt: time.Now().UTC(),
		ItemJson:    string(itemJson),
		Status:      dal.StatusPending,
	}
}

func expectBatchOnce(h *posterHarness, entries ...*dal.Entry) {
	h.mockRepo.EXPECT().GetPendingEntries(gomock.Any()).Return(entries, nil).Times(1)
	h.mockRepo.EXPECT().GetPendingEntries(gomock.Any()).Return(nil, nil).AnyTimes()
}

func waitDone(t *testing.T, done chan struct{}) {
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the poster")
	}
}

func shutdownPoster(h *posterHarness, poster logic.IPoster) {
	h.mockUploader.EXPECT().Shutdown()
	h.mockRepo.EXPECT().DeleteOldPosted(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), nil).AnyTimes()
	h.mockConnMgr.EXPECT().CloseAll()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	poster.Shutdown(ctx)
}

func TestPoster_HappyPath(t *testing.T) {
	ctrl, h, poster := setupPosterTest(t)
	defer ctrl.Finish()

	entry := makeStoredEntry(7, testFeed, "My first post", "<p>Hello world</p>")
	done := make(chan struct{})

	expectBatchOnce(h, entry)
	h.mockRepo.EXPECT().MarkPosting(gomock.Cond(checkIdSlice(7))).Return(nil)
	h.mockConnMgr.EXPECT().Get(testSbot).Return(h.mockConn, nil)
	h.mockUploader.EXPECT().ResolveAll(h.mockConn, gomock.Any(), gomock.Any()).Return(nil)
	h.mockConn.EXPECT().Publish(gomock.Any()).DoAndReturn(
		func(msg *pub.PostMessage) (*pub.PublishReceipt, error) {
			assert.Equal(t, "post", msg.Type)
			assert.Contains(t, msg.Text, "My first post")
			assert.Contains(t, msg.Text, "Hello world")
			assert.Contains(t, msg.Text, "https://example.com/post1")
			return &pub.PublishReceipt{Key: "%abc.sha256", Sequence: 1}, nil
		})
	h.mockRepo.EXPECT().MarkPosted(gomock.Cond(checkIdSlice(7))).DoAndReturn(
		func(ids []int64) error {
			close(done)
			return nil
		})

	poster.Run()
	waitDone(t, done)
	shutdownPoster(h, poster)
}

func TestPoster_PublishFailureRetries(t *testing.T) {
	ctrl, h, poster := setupPosterTest(t)
	defer ctrl.Finish()

	entry := makeStoredEntry(7, testFeed, "My first post", "<p>Hello world</p>")
	done := make(chan struct{})

	expectBatchOnce(h, entry)
	h.mockRepo.EXPECT().MarkPosting(gomock.Cond(checkIdSlice(7))).Return(nil)
	h.mockConnMgr.EXPECT().Get(testSbot).Return(h.mockConn, nil)
	h.mockUploader.EXPECT().ResolveAll(h.mockConn, gomock.Any(), gomock.Any()).Return(nil)
	h.mockConn.EXPECT().Publish(gomock.Any()).Return(nil, fmt.Errorf("sbot is down"))
	h.mockRepo.EXPECT().MarkPending(gomock.Cond(checkIdSlice(7))).DoAndReturn(
		func(ids []int64) error {
			close(done)
			return nil
		})

	poster.Run()
	waitDone(t, done)
	shutdownPoster(h, poster)
}

func TestPoster_MissingFeedDropsEntry(t *testing.T) {
	ctrl, h, poster := setupPosterTest(t)
	defer ctrl.Finish()

	entry := makeStoredEntry(7, "https://gone.example.com/feed.xml", "Orphan", "<p>Hi</p>")
	done := make(chan struct{})

	expectBatchOnce(h, entry)
	h.mockRepo.EXPECT().MarkPosting(gomock.Cond(checkIdSlice(7))).Return(nil)
	h.mockRepo.EXPECT().DeleteEntry(int64(7)).DoAndReturn(
		func(id int64) error {
			close(done)
			return nil
		})

	poster.Run()
	waitDone(t, done)
	shutdownPoster(h, poster)
}

func TestPoster_LongEntrySplitWithImages(t *testing.T) {
	ctrl, h, poster := setupPosterTest(t)
	defer ctrl.Finish()

	// Budget small enough to force a multi-part post
	h.cfg.MaxMessageBytes = 2500
	h.cfg.MessageMarginBytes = 200

	var paras []string
	for i := 0; i < 3; i++ {
		paras = append(paras, fmt.Sprintf("<p>%02d %s</p>", i, strings.Repeat("word ", 200)))
	}
	desc := strings.Join(paras, "") +
		`<p><img src="http://pics.example.com/good.png">` +
		`<img src="http://pics.example.com/bad.png"></p>`
	entry := makeStoredEntry(7, testFeed, "Long story", desc)
	done := make(chan struct{})

	expectBatchOnce(h, entry)
	h.mockRepo.EXPECT().MarkPosting(gomock.Cond(checkIdSlice(7))).Return(nil)
	h.mockConnMgr.EXPECT().Get(testSbot).Return(h.mockConn, nil)
	h.mockUploader.EXPECT().ResolveAll(h.mockConn, gomock.Any(), gomock.Any()).Return(
		[]*logic.ImageResult{
			{Url: "http://pics.example.com/good.png", Image: &logic.ResolvedImage{
				Url:         "http://pics.example.com/good.png",
				Hash:        "&goodhash.sha256",
				Size:        4242,
				ContentType: "image/png",
			}},
			{Url: "http://pics.example.com/bad.png", Err: fmt.Errorf("download failed")},
		})

	var mu sync.Mutex
	var published []*pub.PostMessage
	h.mockConn.EXPECT().Publish(gomock.Any()).DoAndReturn(
		func(msg *pub.PostMessage) (*pub.PublishReceipt, error) {
			mu.Lock()
			published = append(published, msg)
			mu.Unlock()
			return &pub.PublishReceipt{Key: "%abc.sha256", Sequence: 1}, nil
		}).AnyTimes()
	h.mockRepo.EXPECT().MarkPosted(gomock.Cond(checkIdSlice(7))).DoAndReturn(
		func(ids []int64) error {
			close(done)
			return nil
		})

	poster.Run()
	waitDone(t, done)
	shutdownPoster(h, poster)

	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, len(published), 1)

	// Countdown numbering: highest part number first
	assert.Contains(t, published[0].Text, fmt.Sprintf("Long story (%d)", len(published)))
	assert.Contains(t, published[len(published)-1].Text, "Long story (1)")

	sawGoodImage := false
	for _, msg := range published {
		if strings.Contains(msg.Text, "&goodhash.sha256") {
			sawGoodImage = true
		}
		assert.NotContains(t, msg.Text, "bad.png")
		// A blob mention travels only with the part that references it
		for _, mention := range msg.Mentions {
			if mention.Type != "" {
				assert.Contains(t, msg.Text, mention.Link)
			}
		}
	}
	assert.True(t, sawGoodImage)
}
