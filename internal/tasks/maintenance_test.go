package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	removed int64
	err     error
	calls   int
	done    chan struct{}
}

func (f *fakeSweeper) DeleteDanglingLinks() (int64, error) {
	f.calls++
	if f.done != nil {
		f.done <- struct{}{}
	}
	return f.removed, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	removed []int64
	errs    []error
}

func (f *fakeRecorder) LogSweep(removed int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, removed)
	f.errs = append(f.errs, err)
}

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, f.err
}

func TestRunLinkSweep(t *testing.T) {
	t.Run("records success", func(t *testing.T) {
		sweeper := &fakeSweeper{removed: 3}
		recorder := &fakeRecorder{}

		removed, err := RunLinkSweep(sweeper, recorder)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)
		assert.Equal(t, []int64{3}, recorder.removed)
		assert.Nil(t, recorder.errs[0])
	})

	t.Run("records failure", func(t *testing.T) {
		sweeper := &fakeSweeper{err: errors.New("locked")}
		recorder := &fakeRecorder{}

		_, err := RunLinkSweep(sweeper, recorder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
		assert.Error(t, recorder.errs[0])
	})

	t.Run("nil recorder", func(t *testing.T) {
		_, err := RunLinkSweep(&fakeSweeper{}, nil)
		assert.NoError(t, err)
	})

	t.Run("nil sweeper", func(t *testing.T) {
		_, err := RunLinkSweep(nil, nil)
		assert.Error(t, err)
	})
}

func TestSweepLinksProcessor(t *testing.T) {
	sweeper := &fakeSweeper{removed: 1}
	process := SweepLinksProcessor(sweeper, nil)

	require.NoError(t, process(context.Background(), SweepLinksTask{}))
	assert.Equal(t, 1, sweeper.calls)
}

func TestSweepLinksTaskConfig(t *testing.T) {
	cfg := SweepLinksTask{}.Config()

	assert.Equal(t, "sweep_dangling_links", cfg.Name)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.NotNil(t, cfg.Retention)
}

func TestRunAuditCleanup(t *testing.T) {
	t.Run("uses given retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 5}
		deleted, err := RunAuditCleanup(cleaner, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(5), deleted)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("defaults non-positive retention", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		_, err := RunAuditCleanup(cleaner, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultAuditRetentionDays*24*time.Hour, cleaner.retention)
	})

	t.Run("processor wraps errors", func(t *testing.T) {
		process := CleanupAuditEventsProcessor(&fakeCleaner{err: errors.New("boom")})
		err := process(context.Background(), CleanupAuditEventsTask{RetentionDays: 1})
		assert.ErrorContains(t, err, "cleanup audit events")
	})

	t.Run("nil cleaner", func(t *testing.T) {
		_, err := RunAuditCleanup(nil, 1)
		assert.Error(t, err)
	})
}
