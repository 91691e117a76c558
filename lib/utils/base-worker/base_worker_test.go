package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`keeps running after a panic and stops with the context`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int32
		done := make(chan struct{})
		worker := NewInstance("test", time.Millisecond, time.Millisecond)
		go func() {
			worker.Run(ctx, func(ctx context.Context) {
				if calls.Add(1) == 1 {
					panic("boom")
				}
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}
	})
}
