package githubapi

import (
	"context"
	"time"
)

var ClassifyStatusForTest = classifyStatus

func (x *RetryTransport) SetSleepForTest(f func(ctx context.Context, d time.Duration) error) {
	x.sleep = f
}

func (x *RetryTransport) SetNowForTest(f func() time.Time) {
	x.now = f
}
