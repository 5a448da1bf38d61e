// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/pkg/lock"
	"github.com/robfig/cron/v3"
)

const sweepLockKey = "cron:lock:expire_pending_donations"

// ExpirySweepJob runs the expiry sweep on a cron schedule. A distributed lock keeps
// concurrent instances from sweeping at the same time.
type ExpirySweepJob struct {
	cron    *cron.Cron
	sweeper portssvc.ExpirySweepSvc
	locker  lock.DistributedLock
	lockTTL time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

// NewExpirySweepJob registers the sweep on schedule. timeout bounds a single run and the lock
// is held for the same duration.
func NewExpirySweepJob(schedule string, sweeper portssvc.ExpirySweepSvc, locker lock.DistributedLock, timeout time.Duration, logger *slog.Logger) (*ExpirySweepJob, error) {
	job := &ExpirySweepJob{
		cron:    cron.New(),
		sweeper: sweeper,
		locker:  locker,
		lockTTL: timeout,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := job.cron.AddFunc(schedule, job.Run); err != nil {
		return nil, err
	}
	return job, nil
}

func (j *ExpirySweepJob) Start() {
	j.cron.Start()
	j.logger.Info("Expiry sweep scheduler started")
}

// Stop waits for a running sweep to finish or ctx to end.
func (j *ExpirySweepJob) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		j.logger.Warn("Expiry sweep still running at shutdown")
	}
	j.logger.Info("Expiry sweep scheduler stopped")
}

// Run performs one sweep if this instance wins the lock.
func (j *ExpirySweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	locked, err := j.locker.Acquire(ctx, sweepLockKey, j.lockTTL)
	if err != nil {
		j.logger.Error("Failed to acquire expiry sweep lock", slog.String("error", err.Error()))
		return
	}
	if !locked {
		j.logger.Debug("Expiry sweep already running elsewhere, skipping")
		return
	}
	defer func() {
		if err := j.locker.Release(context.Background(), sweepLockKey); err != nil {
			j.logger.Warn("Failed to release expiry sweep lock", slog.String("error", err.Error()))
		}
	}()

	expired, err := j.sweeper.ExpireStale(ctx)
	if err != nil {
		j.logger.Error("Expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	j.logger.Info("Expiry sweep finished", slog.Int("expired", expired))
}
