package notify

import (
	"log/slog"
	"sync"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
)

type job struct {
	phoneNumber string
	message     string
}

// Dispatcher is a bounded fire-and-forget queue in front of a Notifier.
// Enqueue never blocks the session response: a full queue drops the
// message with a log line. Delivery failures are logged and discarded;
// they never surface to the USSD caller and never roll back a recorded
// transaction.
type Dispatcher struct {
	notifier interfaces.Notifier
	jobs     chan job
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(notifier interfaces.Notifier, logger *slog.Logger, queueSize, workers int) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		jobs:     make(chan job, queueSize),
		logger:   logger,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := d.notifier.Notify(j.phoneNumber, j.message); err != nil {
			d.logger.Error("sms delivery failed", "to", j.phoneNumber, "error", err)
		}
	}
}

// Enqueue hands a message to the worker pool.
func (d *Dispatcher) Enqueue(phoneNumber, message string) {
	select {
	case d.jobs <- job{phoneNumber: phoneNumber, message: message}:
	default:
		d.logger.Warn("notification queue full, dropping message", "to", phoneNumber)
	}
}

// Close stops the workers once the queued messages have drained.
func (d *Dispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
}
