package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/api/metrics"
	"github.com/fitpass/gym-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes checkpoint scan uploads to a fixed set of workers using
// consistent hashing on the subject, so two scans by the same member are
// always processed in upload order.
type Dispatcher struct {
	workers   []chan ports.ScanEvent
	processor ports.ScanProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
func NewDispatcher(numWorkers int, processor ports.ScanProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.ScanEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ScanEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a scan to the worker responsible for its subject. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.ScanEvent) {
	i := d.shardIndex(event)
	d.workers[i] <- event
	metrics.ScanQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple scans preserving per-member ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.ScanEvent) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

func (d *Dispatcher) shardIndex(event ports.ScanEvent) int {
	subject := event.MemberID
	if subject == "" {
		subject = event.Token
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ScanEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.processor.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("site", event.Site).
					Int("worker_id", id).
					Msg("scan processing failed")
			}
			metrics.ScanQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
