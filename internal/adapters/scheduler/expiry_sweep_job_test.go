package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/donation_payment_app/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) ExpireStale(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockLock struct {
	mock.Mock
}

func (m *MockLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLock) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_SweepsWhenLockAcquired(t *testing.T) {
	sweeper, locker := new(MockSweeper), new(MockLock)
	locker.On("Acquire", mock.Anything, sweepLockKey, time.Minute).Return(true, nil).Once()
	locker.On("Release", mock.Anything, sweepLockKey).Return(nil).Once()
	sweeper.On("ExpireStale", mock.Anything).Return(3, nil).Once()

	job, err := NewExpirySweepJob("@every 10m", sweeper, locker, time.Minute, discardLogger())
	require.NoError(t, err)
	job.Run()

	sweeper.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestRun_SkipsWhenLockHeld(t *testing.T) {
	sweeper, locker := new(MockSweeper), new(MockLock)
	locker.On("Acquire", mock.Anything, sweepLockKey, time.Minute).Return(false, nil).Once()

	job, err := NewExpirySweepJob("@every 10m", sweeper, locker, time.Minute, discardLogger())
	require.NoError(t, err)
	job.Run()

	sweeper.AssertNotCalled(t, "ExpireStale", mock.Anything)
	locker.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestRun_ReleasesLockOnSweepError(t *testing.T) {
	sweeper, locker := new(MockSweeper), new(MockLock)
	locker.On("Acquire", mock.Anything, sweepLockKey, time.Minute).Return(true, nil).Once()
	locker.On("Release", mock.Anything, sweepLockKey).Return(nil).Once()
	sweeper.On("ExpireStale", mock.Anything).Return(0, assert.AnError).Once()

	job, err := NewExpirySweepJob("@every 10m", sweeper, locker, time.Minute, discardLogger())
	require.NoError(t, err)
	job.Run()

	locker.AssertExpectations(t)
}

func TestRun_NoopLock(t *testing.T) {
	sweeper := new(MockSweeper)
	sweeper.On("ExpireStale", mock.Anything).Return(0, nil).Once()

	job, err := NewExpirySweepJob("@every 10m", sweeper, lock.NoopLock{}, time.Minute, discardLogger())
	require.NoError(t, err)
	job.Run()

	sweeper.AssertExpectations(t)
}

func TestNewExpirySweepJob_InvalidSchedule(t *testing.T) {
	_, err := NewExpirySweepJob("not a schedule", new(MockSweeper), lock.NoopLock{}, time.Minute, discardLogger())
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	job, err := NewExpirySweepJob("@every 10m", new(MockSweeper), lock.NoopLock{}, time.Minute, discardLogger())
	require.NoError(t, err)

	job.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
}
