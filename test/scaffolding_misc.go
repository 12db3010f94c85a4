package test

import (
	"go.uber.org/mock/gomock"
	"ssb_courier/test/mocks"
)

func setupDummyLogger(mockLogger *mocks.MockILogger) {
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Printf(gomock.Any(), gomock.Any()).AnyTimes()
}

func setupDummyMetrics(mockMetrics *mocks.MockIMetrics) {
	mockMetrics.EXPECT().ServiceStarted().AnyTimes()
	mockMetrics.EXPECT().FeedFetched(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().EntryIngested().AnyTimes()
	mockMetrics.EXPECT().EntryPosted().AnyTimes()
	mockMetrics.EXPECT().EntryRetried().AnyTimes()
	mockMetrics.EXPECT().EntryDropped().AnyTimes()
	mockMetrics.EXPECT().BlobUploaded(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().PendingEntries(gomock.Any()).AnyTimes()
	mockMetrics.EXPECT().PostsInFlight(gomock.Any()).AnyTimes()
}

func checkIdSlice(ids ...int64) func(x any) bool {
	res := func(x any) bool {
		slice, ok := x.([]int64)
		if !ok {
			return false
		}
		if len(slice) != len(ids) {
			return false
		}
		for i := 0; i < len(slice); i++ {
			if slice[i] != ids[i] {
				return false
			}
		}
		return true
	}
	return res
}
