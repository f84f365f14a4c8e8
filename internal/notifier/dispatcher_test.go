// internal/notifier/dispatcher_test.go
package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/common/observability"
	"dygs-jobs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []Message
	err      error
	delay    time.Duration
}

func (r *recordingNotifier) Channel() string { return "line" }

func (r *recordingNotifier) Notify(ctx context.Context, msg Message) error {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return r.err
}

type resultCollector struct {
	mu      sync.Mutex
	results []models.Notification
}

func (c *resultCollector) add(n models.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, n)
}

func newTestDispatcher(t *testing.T, n Notifier, timeout time.Duration) (*Dispatcher, *resultCollector) {
	t.Helper()
	collector := &resultCollector{}
	d := NewDispatcher(n, timeout, logger.NewTestLogger(t), observability.Nop())
	d.OnResult = collector.add
	return d, collector
}

func TestDispatcher_Sent(t *testing.T) {
	rec := &recordingNotifier{}
	d, collector := newTestDispatcher(t, rec, time.Second)

	d.Dispatch(createTestApplication())
	require.NoError(t, d.Wait(context.Background()))

	require.Len(t, rec.messages, 1)
	require.Len(t, collector.results, 1)
	assert.Equal(t, models.NotificationSent, collector.results[0].Status)
	assert.Equal(t, "DYGS-1741944600000-k3j5h2m9q", collector.results[0].ApplicationID)
	assert.NotEmpty(t, collector.results[0].ID)
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("line down")}
	d, collector := newTestDispatcher(t, rec, time.Second)

	assert.NotPanics(t, func() { d.Dispatch(createTestApplication()) })
	require.NoError(t, d.Wait(context.Background()))

	require.Len(t, collector.results, 1)
	assert.Equal(t, models.NotificationFailed, collector.results[0].Status)
	assert.Contains(t, collector.results[0].Error, "line down")
}

func TestDispatcher_DoesNotBlockCaller(t *testing.T) {
	rec := &recordingNotifier{delay: 200 * time.Millisecond}
	d, _ := newTestDispatcher(t, rec, time.Second)

	start := time.Now()
	d.Dispatch(createTestApplication())
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	require.NoError(t, d.Wait(context.Background()))
	assert.Len(t, rec.messages, 1)
}

func TestDispatcher_Timeout(t *testing.T) {
	rec := &recordingNotifier{delay: time.Second}
	d, collector := newTestDispatcher(t, rec, 20*time.Millisecond)

	d.Dispatch(createTestApplication())
	require.NoError(t, d.Wait(context.Background()))

	require.Len(t, collector.results, 1)
	assert.Equal(t, models.NotificationFailed, collector.results[0].Status)
}

func TestDispatcher_WaitHonoursContext(t *testing.T) {
	rec := &recordingNotifier{delay: 500 * time.Millisecond}
	d, _ := newTestDispatcher(t, rec, time.Second)
	d.Dispatch(createTestApplication())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	require.NoError(t, d.Wait(context.Background()))
}

func TestDispatcher_Disabled(t *testing.T) {
	d, collector := newTestDispatcher(t, nil, time.Second)
	assert.Equal(t, "none", d.Channel())

	d.Dispatch(createTestApplication())
	require.NoError(t, d.Wait(context.Background()))

	require.Len(t, collector.results, 1)
	assert.Equal(t, models.NotificationDisabled, collector.results[0].Status)
}

func TestNew(t *testing.T) {
	n, err := New(context.Background(), config.NotificationConfig{Channel: config.ChannelNone})
	require.NoError(t, err)
	assert.Equal(t, "none", n.Channel())

	cfg := config.NotificationConfig{Channel: config.ChannelLINE, Timeout: 1000}
	cfg.LINE.ChannelAccessToken = "token"
	cfg.LINE.GroupID = "C-group"
	n, err = New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "line", n.Channel())

	_, err = New(context.Background(), config.NotificationConfig{Channel: "pager"})
	assert.Error(t, err)
}
