package test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"ssb_courier/dal"
	"ssb_courier/shared"
	"ssb_courier/test/mocks"
)

const testSbot = "main-bot"
const testFeed = "https://example.com/feed.xml"

func setupRepoTest(t *testing.T) (*gomock.Controller, dal.IRepo) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	setupDummyLogger(mockLogger)
	cfg := &shared.Config{DbFile: filepath.Join(t.TempDir(), "courier.db")}
	repo := dal.NewRepo(cfg, mockLogger)
	repo.InitUpdateDb()
	return ctrl, repo
}

func makeEntry(guidHash int64, publishedAt time.Time) *dal.Entry {
	return &dal.Entry{
		SbotName:    testSbot,
		FeedUrl:     testFeed,
		Guid:        fmt.Sprintf("guid-%d", guidHash),
		GuidHash:    guidHash,
		Title:       fmt.Sprintf("Title %d", guidHash),
		PublishedAt: publishedAt,
		ItemJson:    "{}",
		InsertedAt:  time.Now().UTC(),
		Status:      dal.StatusPending,
	}
}

func TestRepo_AddEntryIfNew_Idempotent(t *testing.T) {
	ctrl, repo := setupRepoTest(t)
	defer ctrl.Finish()
	defer repo.Close()

	isNew, err := repo.AddEntryIfNew(makeEntry(1, time.Now().UTC()))
	assert.NoError(t, err)
	assert.True(t, isNew)

	// Same identity again: silently ignored
	isNew, err = repo.AddEntryIfNew(makeEntry(1, time.Now().UTC()))
	assert.NoError(t, err)
	assert.False(t, isNew)

	counts, err := repo.GetStatusCounts()
	assert.NoError(t, err)
	assert.Equal(t, 1, counts.Pending)
}

func TestRepo_GetPendingEntries_OldestFirst(t *testing.T) {
	ctrl, repo := setupRepoTest(t)
	defer ctrl.Finish()
	defer repo.Close()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of chronological order
	for _, i := range []int{7, 2, 11, 0, 5, 9, 1, 10, 3, 8, 4, 6} {
		_, err := repo.AddEntryIfNew(makeEntry(int64(i), base.Add(time.Duration(i)*time.Hour)))
		assert.NoError(t, err)
	}

	batch, err := repo.GetPendingEntries(10)
	assert.NoError(t, err)
	assert.Equal(t, 10, len(batch))
	for i, e := range batch {
		assert.Equal(t, int64(i), e.GuidHash)
		if i > 0 {
			assert.True(t, !e.PublishedAt.Before(batch[i-1].PublishedAt))
		}
	}
}

func TestRepo_StatusTransitions(t *testing.T) {
	ctrl, repo := setupRepoTest(t)
	defer ctrl.Finish()
	defer repo.Close()

	_, err := repo.AddEntryIfNew(makeEntry(1, time.Now().UTC()))
	assert.NoError(t, err)
	batch, err := repo.GetPendingEntries(10)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(batch))
	id := batch[0].Id

	assert.NoError(t, repo.MarkPosting([]int64{id}))
	batch, err = repo.GetPendingEntries(10)
	assert.NoError(t, err)
	assert.Empty(t, batch)

	assert.NoError(t, repo.MarkPosted([]int64{id}))
	counts, err := repo.GetStatusCounts()
	assert.NoError(t, err)
	assert.Equal(t, 0, counts.Pending)
	assert.Equal(t, 0, counts.Posting)
	assert.Equal(t, 1, counts.Posted)
}

func TestRepo_ResetPostingToPending(t *testing.T) {
	ctrl, repo := setupRepoTest(t)
	defer ctrl.Finish()
	defer repo.Close()

	var ids []int64
	for i := int64(1); i <= 3; i++ {
		_, err := repo.AddEntryIfNew(makeEntry(i, time.Now().UTC()))
		assert.NoError(t, err)
	}
	batch, err := repo.GetPendingEntries(10)
	assert.NoError(t, err)
	for _, e := range batch {
		ids = append(ids, e.Id)
	}
	assert.NoError(t, repo.MarkPosting(ids[:2]))
	assert.NoError(t, repo.MarkPosted(ids[2:]))

	// Interrupted run: in-flight entries come back, posted ones stay put
	n, err := repo.ResetPostingToPending()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	counts, err := repo.GetStatusCounts()
	assert.NoError(t, err)
	assert.Equal(t, 2, counts.Pending)
	assert.Equal(t, 0, counts.Posting)
	assert.Equal(t, 1, counts.Posted)
}

func TestRepo_DeleteOldPosted(t *testing.T) {
	ctrl, repo := setupRepoTest(t)
	defer ctrl.Finish()
	defer repo.Close()

	now := time.Now().UTC()
	old := now.AddDate(0, 0, -30)
	_, err := repo.AddEntryIfNew(makeEntry(1, old))
	assert.NoError(t, err)
	_, err = repo.AddEntryIfNew(makeEntry(2, now))
	assert.NoError(t, err)
	_, err = repo.AddEntryIfNew(makeEntry(3, old))
	assert.NoError(t, err)

	batch, err := repo.GetPendingEntries(10)
	assert.NoError(t, err)
	// Entries 1 and 2 are done; 3 is still pending and must survive cleanup
	assert.NoError(t, repo.MarkPosted([]int64{batch[0].Id, batch[2].Id}))

	n, err := repo.DeleteOldPosted(testSbot, testFeed, now.AddDate(0, 0, -7))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	counts, err := repo.GetStatusCounts()
	assert.NoError(t, err)
	assert.Equal(t, 1, counts.Pending)
	assert.Equal(t, 1, counts.Posted)
}

func TestRepo_DeleteEntry(t *testing.T) {
	ctrl, repo := setupRepoTest(t)
	defer ctrl.Finish()
	defer repo.Close()

	_, err := repo.AddEntryIfNew(makeEntry(1, time.Now().UTC()))
	assert.NoError(t, err)
	batch, err := repo.GetPendingEntries(10)
	assert.NoError(t, err)
	assert.NoError(t, repo.DeleteEntry(batch[0].Id))

	counts, err := repo.GetStatusCounts()
	assert.NoError(t, err)
	assert.Equal(t, 0, counts.Pending+counts.Posting+counts.Posted)
}
