// internal/notifier/dispatcher.go
package notifier

import (
	"context"
	"sync"
	"time"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/common/metrics"
	"dygs-jobs/internal/common/observability"
	"dygs-jobs/internal/models"

	"github.com/google/uuid"
)

// Dispatcher sends notifications in the background so a slow or failing
// channel never affects the submission response.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   logger.Logger
	obs      *observability.Observability
	wg       sync.WaitGroup

	// OnResult, when set, receives the outcome of every dispatch.
	OnResult func(models.Notification)
}

func NewDispatcher(n Notifier, timeout time.Duration, log logger.Logger, obs *observability.Observability) *Dispatcher {
	if n == nil {
		n = Noop{}
	}
	return &Dispatcher{
		notifier: n,
		timeout:  timeout,
		logger:   log.WithFields(map[string]interface{}{"channel": n.Channel()}),
		obs:      obs,
	}
}

func (d *Dispatcher) Channel() string { return d.notifier.Channel() }

// Dispatch builds the message now and delivers it on its own goroutine.
// It never blocks on the channel and never reports failure to the caller.
func (d *Dispatcher) Dispatch(app *models.Application) {
	msg := BuildMessage(app)

	if _, disabled := d.notifier.(Noop); disabled {
		d.finish(models.Notification{
			ID:            uuid.NewString(),
			ApplicationID: msg.ApplicationID,
			Channel:       d.notifier.Channel(),
			Status:        models.NotificationDisabled,
			SentAt:        time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	d.wg.Add(1)
	metrics.NotificationsInFlight.Inc()
	go func() {
		defer d.wg.Done()
		defer metrics.NotificationsInFlight.Dec()
		d.finish(d.deliver(msg))
	}()
}

func (d *Dispatcher) deliver(msg Message) models.Notification {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	err := d.notifier.Notify(ctx, msg)

	result := models.Notification{
		ID:            uuid.NewString(),
		ApplicationID: msg.ApplicationID,
		Channel:       d.notifier.Channel(),
		Status:        models.NotificationSent,
		SentAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		result.Status = models.NotificationFailed
		result.Error = err.Error()
	}
	d.obs.RecordNotification(ctx, time.Since(start), result.Channel, result.Status)
	return result
}

func (d *Dispatcher) finish(result models.Notification) {
	metrics.Notifications.WithLabelValues(result.Channel, result.Status).Inc()

	fields := map[string]interface{}{
		"applicationId":  result.ApplicationID,
		"notificationId": result.ID,
		"status":         result.Status,
	}
	switch result.Status {
	case models.NotificationFailed:
		fields["error"] = result.Error
		d.logger.Error("notification failed", fields)
	case models.NotificationSent:
		d.logger.Info("notification sent", fields)
	default:
		d.logger.Debug("notification skipped", fields)
	}

	if d.OnResult != nil {
		d.OnResult(result)
	}
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
