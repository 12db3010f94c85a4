package test

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"ssb_courier/dal"
	"ssb_courier/logic"
	"ssb_courier/shared"
	"ssb_courier/test/mocks"
)

func setupRegistryTest(t *testing.T) (*gomock.Controller, *mocks.MockIRepo, logic.IFeedRegistry) {

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	mockRepo := mocks.NewMockIRepo(ctrl)
	mockMetrics := mocks.NewMockIMetrics(ctrl)
	setupDummyLogger(mockLogger)
	setupDummyMetrics(mockMetrics)

	cfg := &shared.Config{
		Sbots: map[string]*shared.SbotConfig{
			testSbot: {
				BridgeUrl: "http://localhost:8008",
				Feeds: []*shared.FeedConfig{
					{Url: testFeed, RefreshSec: 120, CleanupDays: 7, Channels: "news"},
				},
			},
		},
	}
	registry := logic.NewFeedRegistry(cfg, mockLogger, mockRepo, mockMetrics)
	return ctrl, mockRepo, registry
}

func TestRegistry_Lookup(t *testing.T) {
	ctrl, _, registry := setupRegistryTest(t)
	defer ctrl.Finish()

	fd := registry.Lookup(testFeed)
	assert.NotNil(t, fd)
	assert.Equal(t, testSbot, fd.SbotName)
	assert.Equal(t, 120*time.Second, fd.Refresh)
	assert.Equal(t, "news", fd.Channels)

	assert.Nil(t, registry.Lookup("https://gone.example.com/feed.xml"))
	assert.Equal(t, 1, len(registry.All()))
}

func TestRegistry_HandleNewItem(t *testing.T) {
	ctrl, mockRepo, registry := setupRegistryTest(t)
	defer ctrl.Finish()

	published := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	itm := gofeed.Item{
		Title:           "Big <b>news</b> today",
		Description:     "<p>Something happened</p>",
		Link:            "https://example.com/post1",
		GUID:            "guid-1",
		PublishedParsed: &published,
	}

	checkEntry := func(x any) bool {
		entry, ok := x.(*dal.Entry)
		if !ok {
			return false
		}
		return entry.SbotName == testSbot &&
			entry.FeedUrl == testFeed &&
			entry.Guid == "guid-1" &&
			entry.Title == "Big news today" &&
			entry.PublishedAt.Equal(published) &&
			entry.Status == dal.StatusPending
	}
	mockRepo.EXPECT().AddEntryIfNew(gomock.Cond(checkEntry)).Return(true, nil)

	registry.HandleNewItem(registry.Lookup(testFeed), &itm)
}

func TestRegistry_HandleNewItem_GuidFallsBackToLink(t *testing.T) {
	ctrl, mockRepo, registry := setupRegistryTest(t)
	defer ctrl.Finish()

	itm := gofeed.Item{
		Title:       "No guid",
		Description: "<p>Body</p>",
		Link:        "https://example.com/post2",
	}

	checkEntry := func(x any) bool {
		entry, ok := x.(*dal.Entry)
		return ok && entry.Guid == "https://example.com/post2" && entry.GuidHash != 0
	}
	mockRepo.EXPECT().AddEntryIfNew(gomock.Cond(checkEntry)).Return(false, nil)

	registry.HandleNewItem(registry.Lookup(testFeed), &itm)
}
