package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

// BaseImpl is embedded by background workers; it owns the schedule and panic recovery.
type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run calls jobFunc after firstRunDelay and then every runInterval until ctx is done.
// A panicking iteration is logged and the loop goes on.
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	logger := i.GetLogger()
	logger.WithField("interval", i.runInterval.String()).Info("worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-timer.C:
			started := time.Now()
			i.runOnce(ctx, jobFunc)
			logger.WithField("took", time.Since(started).String()).Debug("worker iteration finished")
			timer.Reset(i.runInterval)
		}
	}
}

func (i BaseImpl) runOnce(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("worker iteration panic: %v", r)
		}
	}()
	jobFunc(ctx)
}
