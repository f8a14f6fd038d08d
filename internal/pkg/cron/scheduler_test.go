package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsJobOnStart(t *testing.T) {
	s := NewScheduler(discardLogger())

	ran := make(chan struct{}, 1)
	s.AddJob("sweep", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run at startup")
	}
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	s := NewScheduler(discardLogger())

	started := make(chan struct{})
	done := false
	s.AddJob("slow-sweep", time.Hour, func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		done = true
		return nil
	})

	s.Start()
	<-started
	s.Stop()

	assert.True(t, done, "Stop returned before the in-flight job finished")
}
