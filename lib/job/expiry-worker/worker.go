package expiryworker

import (
	"context"
	"time"

	jobhandler "hire-backend/lib/job"
	baseworker "hire-backend/lib/utils/base-worker"
	"hire-backend/lib/utils/helpers"
)

func StartWorker(ctx context.Context, interval time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("JobExpiryWorker", 15*time.Second, interval),
		jobs:     jobhandler.Instance,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	jobs jobhandler.Provider
}

func (i impl) handle(ctx context.Context) {
	if helpers.IsContextDone(ctx) {
		return
	}
	closed, err := i.jobs.ExpireJobs(time.Now())
	if err != nil {
		i.GetLogger().WithError(err).Error("expired jobs closing failed")
		return
	}
	if closed != 0 {
		i.GetLogger().WithField("closed", closed).Info("expired jobs closed")
	}
}
