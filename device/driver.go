// Package device simulates an asynchronous I/O device: submitted request
// descriptors enter a bounded FIFO and a single background worker drains
// them, sleeping in proportion to the request size to model transfer time.
package device

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/kernsim/internal/clock"
	"github.com/viant/kernsim/internal/idgen"
	"github.com/viant/kernsim/logging"
	"github.com/viant/kernsim/service/event"
	"github.com/viant/kernsim/service/messaging"
	memqueue "github.com/viant/kernsim/service/messaging/memory"
	"github.com/viant/kernsim/tracing"
)

// DefaultThroughput is the simulated transfer rate in bytes per millisecond.
const DefaultThroughput = 1024

// ErrQueueFull is returned by Submit when the request queue is at capacity.
var ErrQueueFull = errors.New("device: request queue full")

// ErrAlreadyStarted is returned by Start when the worker is already running.
var ErrAlreadyStarted = errors.New("device: worker already started")

// Config represents driver configuration.
type Config struct {
	// QueueCapacity bounds the number of pending requests.
	QueueCapacity int `json:"queueCapacity" yaml:"queueCapacity"`
	// Throughput is the simulated transfer rate in bytes per millisecond.
	Throughput uint64 `json:"throughput" yaml:"throughput"`
}

// DefaultConfig returns the default driver configuration.
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		Throughput:    DefaultThroughput,
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("device.queueCapacity must be > 0")
	}
	if c.Throughput == 0 {
		return fmt.Errorf("device.throughput must be > 0")
	}
	return nil
}

// Driver accepts I/O descriptors into a bounded FIFO and drains them with a
// single background worker. Pending requests are discarded on Stop.
type Driver struct {
	config Config
	queue  messaging.Queue[Request]
	logger *logging.Logger
	events *event.Publisher[Completion]

	status    atomic.Int32
	processed atomic.Uint64
	running   atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New creates a driver in the ready state; the worker is not started yet.
func New(options ...Option) (*Driver, error) {
	d := &Driver{config: DefaultConfig()}
	for _, option := range options {
		option(d)
	}
	if err := d.config.Validate(); err != nil {
		return nil, err
	}
	if d.logger == nil {
		d.logger = logging.Default()
	}
	if d.queue == nil {
		d.queue = memqueue.NewQueue[Request](memqueue.Config{Capacity: d.config.QueueCapacity})
	}
	d.status.Store(int32(StatusReady))
	return d, nil
}

// Submit enqueues a request tagged with the current timestamp and wakes the
// worker. A full queue rejects with ErrQueueFull. The returned id identifies
// the request in completion events.
func (d *Driver) Submit(ctx context.Context, operation string, size uint64) (string, error) {
	request := Request{
		ID:          idgen.New(),
		Operation:   operation,
		Size:        size,
		SubmittedAt: clock.Now(),
	}
	if err := d.queue.Publish(ctx, &request); err != nil {
		if errors.Is(err, messaging.ErrFull) {
			return "", ErrQueueFull
		}
		return "", err
	}
	return request.ID, nil
}

// Start launches the background worker.
func (d *Driver) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.wg.Add(1)
	go d.run(ctx)
	return nil
}

// run drains the queue until the context is cancelled.
func (d *Driver) run(ctx context.Context) {
	defer d.wg.Done()
	for {
		if d.queue.Size() == 0 {
			d.status.Store(int32(StatusReady))
		}
		request, err := d.queue.Consume(ctx)
		if err != nil {
			// cooperative shutdown; pending requests are discarded
			d.status.Store(int32(StatusReady))
			return
		}
		d.status.Store(int32(StatusBusy))
		d.process(ctx, request)
	}
}

// process simulates the I/O transfer and publishes a completion event.
func (d *Driver) process(ctx context.Context, request *Request) {
	_, span := tracing.StartSpan(ctx, "device.process", "CONSUMER")
	span.WithAttributes(map[string]string{
		"request.id":        request.ID,
		"request.operation": request.Operation,
		"request.size":      strconv.FormatUint(request.Size, 10),
	})

	time.Sleep(time.Duration(request.Size/d.config.Throughput) * time.Millisecond)

	completedAt := clock.Now()
	d.processed.Add(1)
	if d.events != nil {
		completion := Completion{
			Request:     *request,
			CompletedAt: completedAt,
			Elapsed:     completedAt.Sub(request.SubmittedAt),
		}
		if err := d.events.Publish(ctx, event.NewEvent(completion)); err != nil {
			d.logger.Debugf("dropping completion event for request %s: %v", request.ID, err)
		}
	}
	tracing.EndSpan(span, nil)
}

// Stop cancels the worker and waits for it to exit. It is idempotent;
// requests still queued when it is called complete never.
func (d *Driver) Stop() {
	if !d.running.CompareAndSwap(true, false) {
		return
	}
	d.cancel()
	d.wg.Wait()
}

// Status may be read without the queue lock; the scalar is atomic.
func (d *Driver) Status() Status {
	return Status(d.status.Load())
}

// QueueSize returns the number of pending requests.
func (d *Driver) QueueSize() int {
	return d.queue.Size()
}

// QueueCapacity returns the fixed request queue capacity.
func (d *Driver) QueueCapacity() int {
	return d.queue.Capacity()
}

// Processed returns the number of requests drained so far.
func (d *Driver) Processed() uint64 {
	return d.processed.Load()
}

// Stats is a point-in-time snapshot of the driver state.
type Stats struct {
	Status        Status `json:"status"`
	QueueSize     int    `json:"queueSize"`
	QueueCapacity int    `json:"queueCapacity"`
	Processed     uint64 `json:"processed"`
}

// Stats captures the current driver counters.
func (d *Driver) Stats() Stats {
	return Stats{
		Status:        d.Status(),
		QueueSize:     d.queue.Size(),
		QueueCapacity: d.queue.Capacity(),
		Processed:     d.processed.Load(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Device Driver Stats:\nStatus: %s\nQueue Size: %d/%d\nProcessed: %d",
		s.Status, s.QueueSize, s.QueueCapacity, s.Processed)
}
